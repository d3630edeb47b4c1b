package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format int

const (
	JSON Format = iota
	YAML
)

// FormatOf picks the decoder from the file extension, defaulting to JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

func Load[T any](path string) (T, error) {
	var result T

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Decode[T](f, FormatOf(path))
}

func Decode[T any](r io.Reader, format Format) (T, error) {
	var result T

	body, err := io.ReadAll(r)
	if err != nil {
		return result, fmt.Errorf("failed to read body: %w", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return result, fmt.Errorf("empty document")
	}

	switch format {
	case YAML:
		err = yaml.Unmarshal(body, &result)
		if err != nil {
			return result, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	default:
		err = json.Unmarshal(body, &result)
		if err != nil {
			return result, fmt.Errorf("failed to unmarshal json: %w", err)
		}
	}

	return result, nil
}
