package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdinSource is the source name used for text read from standard input.
const StdinSource = "-"

// MaxInputSize caps how much text a single source may contribute (32 MiB).
const MaxInputSize = 32 << 20

// Input is the raw text of one pasted source.
type Input struct {
	// Source is the file path, or StdinSource.
	Source string

	// Text is the decoded content.
	Text string
}

// ReadInputs reads every path in order. The path "-" reads stdin.
// Files saved with a UTF-8 or UTF-16 byte order mark are decoded
// accordingly; everything else is treated as UTF-8.
func ReadInputs(ctx context.Context, paths []string, stdin io.Reader) ([]Input, error) {
	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if path == StdinSource {
			text, err := ReadText(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			inputs = append(inputs, Input{Source: StdinSource, Text: text})
			continue
		}

		text, err := readFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Source: path, Text: text})
	}
	return inputs, nil
}

// ReadText decodes r into a string, honouring a leading byte order mark.
func ReadText(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(io.LimitReader(transform.NewReader(r, dec), MaxInputSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxInputSize {
		return "", fmt.Errorf("input exceeds %d bytes", MaxInputSize)
	}
	return string(data), nil
}

// Combine joins the text of several inputs, for layout detection over
// all of them at once. Parsing goes through ExtractInputs instead.
func Combine(inputs []Input) string {
	texts := make([]string, len(inputs))
	for i, in := range inputs {
		texts[i] = in.Text
	}
	return strings.Join(texts, "\n")
}

// Sources lists the source names of inputs.
func Sources(inputs []Input) []string {
	names := make([]string, len(inputs))
	for i, in := range inputs {
		names[i] = in.Source
	}
	return names
}

func readFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", fmt.Errorf("opening input %s: %w", path, err)
	}
	defer f.Close()

	text, err := ReadText(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}
