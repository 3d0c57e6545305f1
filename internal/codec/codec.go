// Package codec reads and writes configuration documents in YAML or TOML,
// chosen by file extension. Decoding is strict: unknown keys are errors.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits documents to 1MB.
var MaxInputSize = 1 << 20

// Sentinel errors for decoding.
var (
	ErrNilData        = errors.New("codec: nil or empty data")
	ErrNilDestination = errors.New("codec: nil destination pointer")
	ErrInputTooLarge  = errors.New("codec: input exceeds maximum size")
	ErrUnknownFormat  = errors.New("codec: unknown document format")
	ErrUnknownField   = errors.New("codec: unknown field")
)

// Format is a supported document syntax.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Extensions lists the recognized file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".toml"}

// FormatFor returns the format of a file from its extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q (want .yaml, .yml or .toml)", ErrUnknownFormat, path)
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects keys v has no field for.
// Fields absent from data keep their current value, so v can be pre-filled
// with defaults.
func UnmarshalStrict(f Format, data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}

	switch f {
	case YAML:
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("codec: yaml: %w", err)
		}
		return nil
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
		if err != nil {
			return fmt.Errorf("codec: toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", "))
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Marshal encodes v in the given format.
func Marshal(f Format, v any) ([]byte, error) {
	switch f {
	case YAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: yaml: %w", err)
		}
		return out, nil
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("codec: toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
