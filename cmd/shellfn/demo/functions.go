// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"math"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bureau-foundation/shellfn/lib/coerce"
	"github.com/bureau-foundation/shellfn/lib/invoke"
)

func multiply(_ context.Context, args *invoke.Arguments) (any, error) {
	return args.Int("x") * args.Int("y"), nil
}

func greet(_ context.Context, args *invoke.Arguments) (any, error) {
	greeting := "Hello, " + args.String("name") + args.String("punctuation")
	if args.Bool("shout") {
		greeting = strings.ToUpper(greeting)
	}
	return greeting, nil
}

func fileExists(_ context.Context, args *invoke.Arguments) (any, error) {
	info, err := os.Stat(args.String("path"))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return nil, err
	}
	return info.Mode().IsRegular(), nil
}

// grep yields matching lines lazily, so output appears while input is
// still arriving on a pipe.
func grep(ctx context.Context, args *invoke.Arguments) (any, error) {
	pattern, ok := args.Value("pattern").(*regexp.Regexp)
	if !ok {
		return nil, fmt.Errorf("pattern is not a compiled regular expression")
	}
	invert := args.Bool("invert")
	files := args.Streams("files")
	prefix := len(files) > 1

	return invoke.FromSeq(func(yield func(any, error) bool) {
		for _, file := range files {
			for line, err := range lines(ctx, file) {
				if err != nil {
					yield(nil, err)
					return
				}
				if pattern.MatchString(line) == invert {
					continue
				}
				if prefix {
					line = file.Name() + ":" + line
				}
				if !yield(line, nil) {
					return
				}
			}
		}
	}), nil
}

func head(ctx context.Context, args *invoke.Arguments) (any, error) {
	limit := args.Int("lines")
	if limit < 0 {
		return nil, fmt.Errorf("lines must not be negative, got %d", limit)
	}
	file := args.Stream("file")

	return invoke.FromSeq(func(yield func(any, error) bool) {
		var count int64
		for line, err := range lines(ctx, file) {
			if count >= limit {
				return
			}
			if !yield(line, err) || err != nil {
				return
			}
			count++
		}
	}), nil
}

// lines reads stream line by line, stopping with ctx's error if the
// context ends first.
func lines(ctx context.Context, stream *coerce.Stream) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(stream)
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", fmt.Errorf("reading %s: %w", stream.Name(), err))
		}
	}
}

func parseHTML(text string) (any, error) {
	return html.Parse(strings.NewReader(text))
}

func pageTitle(_ context.Context, args *invoke.Arguments) (any, error) {
	page, ok := args.Value("page").(*html.Node)
	if !ok {
		return nil, fmt.Errorf("page is not a parsed HTML document")
	}
	for node := range page.Descendants() {
		if node.Type == html.ElementNode && node.DataAtom == atom.Title {
			var text strings.Builder
			for child := range node.ChildNodes() {
				if child.Type == html.TextNode {
					text.WriteString(child.Data)
				}
			}
			return strings.Join(strings.Fields(text.String()), " "), nil
		}
	}
	return nil, nil
}

func stats(_ context.Context, args *invoke.Arguments) (any, error) {
	var values []float64
	for _, value := range args.List("values") {
		number, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("value %v is not a number", value)
		}
		values = append(values, number)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no values to summarize")
	}

	sum := 0.0
	for _, value := range values {
		sum += value
	}
	mean := sum / float64(len(values))
	variance := 0.0
	for _, value := range values {
		variance += (value - mean) * (value - mean)
	}
	return map[string]any{
		"count":  float64(len(values)),
		"sum":    sum,
		"mean":   mean,
		"min":    slices.Min(values),
		"max":    slices.Max(values),
		"stddev": math.Sqrt(variance / float64(len(values))),
	}, nil
}

func weekday(_ context.Context, args *invoke.Arguments) (any, error) {
	day, ok := args.Value("day").(coerce.Date)
	if !ok {
		return nil, fmt.Errorf("day is not a date")
	}
	return day.In(time.UTC).Weekday().String(), nil
}

func request(_ context.Context, args *invoke.Arguments) (any, error) {
	target, ok := args.Value("url").(*url.URL)
	if !ok {
		return nil, fmt.Errorf("url is not a parsed URL")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\nHost: %s", args.String("method"), target.RequestURI(), target.Host)

	headers, _ := args.Value("headers").(map[string]any)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s: %v", name, headers[name])
	}
	if timeout, ok := args.Value("timeout").(float64); ok {
		fmt.Fprintf(&b, "\n(timeout %gs)", timeout)
	}
	return b.String(), nil
}

func newIDs(_ context.Context, args *invoke.Arguments) (any, error) {
	count := args.Int("count")
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	return invoke.FromSeq(func(yield func(any, error) bool) {
		for range count {
			if !yield(uuid.New(), nil) {
				return
			}
		}
	}), nil
}

func kinds(_ context.Context, args *invoke.Arguments) (any, error) {
	bound := make(map[string]any, len(args.Names()))
	for _, name := range args.Names() {
		bound[name] = args.Value(name)
	}
	return bound, nil
}
