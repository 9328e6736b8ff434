// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package funcspec describes callables structurally so that a command
// line grammar can be synthesized from them.
//
// A [Function] carries a name, a docstring, ordered [Parameter] values
// (each with a calling-convention [Kind], a typedesc.Type, and an
// optional default), and a return type. Functions are produced by an
// [Extractor]; [ManifestExtractor] reads JSONC or YAML manifests:
//
//	{
//	  "name": "tools",
//	  "functions": [
//	    {
//	      "name": "multiply",
//	      "doc": "Multiply two integers.",
//	      "parameters": [
//	        {"name": "x", "type": "int"},
//	        {"name": "y", "type": "int", "kind": "keyword_only", "default": 2},
//	      ],
//	      "returns": "int",
//	    },
//	  ],
//	  "variables": {"answer": 42},
//	}
//
// Manifests are checked against a JSON Schema before decoding, so
// misspelled keys fail loudly instead of being ignored.
//
// [InputSchema] exports a function's parameters as JSON Schema.
package funcspec
