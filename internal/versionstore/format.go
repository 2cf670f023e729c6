package versionstore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format reads and writes the version value inside one kind of document.
// Write returns the complete new document; writing the value already stored
// yields the same bytes every time.
type Format interface {
	Name() string
	Read(data []byte, path []string) (string, error)
	Write(data []byte, path []string, value string) ([]byte, error)
}

// codec converts between document bytes and the generic Value tree.
type codec interface {
	decode(data []byte) (Value, error)
	encode(v Value) ([]byte, error)
}

// hierarchical is a Format for nested key/value documents. The document is
// decoded, the path walked, and the tree re-serialized canonically.
type hierarchical struct {
	name  string
	codec codec
}

func (h hierarchical) Name() string { return h.name }

func (h hierarchical) Read(data []byte, path []string) (string, error) {
	doc, err := h.codec.decode(data)
	if err != nil {
		return "", fmt.Errorf("parsing %s document: %w", h.name, err)
	}
	return doc.Lookup(path)
}

func (h hierarchical) Write(data []byte, path []string, value string) ([]byte, error) {
	doc, err := h.codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", h.name, err)
	}
	updated, err := doc.Replace(path, value)
	if err != nil {
		return nil, err
	}
	out, err := h.codec.encode(updated)
	if err != nil {
		return nil, fmt.Errorf("encoding %s document: %w", h.name, err)
	}
	return out, nil
}

// JSON returns the format for JSON documents such as package.json.
func JSON() Format { return hierarchical{name: "json", codec: jsonCodec{}} }

// YAML returns the format for YAML documents such as pubspec.yaml.
func YAML() Format { return hierarchical{name: "yaml", codec: yamlCodec{}} }

// TOML returns the format for TOML documents such as Cargo.toml.
func TOML() Format { return hierarchical{name: "toml", codec: tomlCodec{}} }

// FlatText returns the format for line-oriented key = "value" files.
func FlatText() Format { return flatText{} }

// formats maps file extensions to their document format.
var formats = map[string]func() Format{
	".json":   JSON,
	".yaml":   YAML,
	".yml":    YAML,
	".toml":   TOML,
	".gradle": FlatText,
	".kts":    FlatText,
	".py":     FlatText,
}

// ForFile returns the Format for a version file based on its extension.
func ForFile(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	newFormat, ok := formats[ext]
	if !ok {
		return nil, &UnsupportedFormatError{File: path, Extension: ext}
	}
	return newFormat(), nil
}

// SupportedExtensions lists the extensions ForFile accepts.
func SupportedExtensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml", ".gradle", ".kts", ".py"}
}
