package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
)

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// readContentFromStdin returns value unchanged unless it is "-", in which
// case the content is read from reader without its final newline.
func readContentFromStdin(value string, reader io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	content := strings.TrimSuffix(string(input), "\n")
	content = strings.TrimSuffix(content, "\r")
	return content, nil
}
