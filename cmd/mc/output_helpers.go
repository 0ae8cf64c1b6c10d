package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	internalstrings "github.com/amonks/mindcache/internal/strings"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// readText returns value, or all of stdin when value is "-".
func readText(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}

	input, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read text from stdin: %w", err)
	}
	return strings.TrimSuffix(internalstrings.NormalizeNewlines(string(input)), "\n"), nil
}
