package versionstore

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// flatText handles documents such as build.gradle or __init__.py where the
// version sits on a line of the form: key = "value". Only a single top-level
// key is addressable and every byte outside the value is preserved.
type flatText struct{}

func (flatText) Name() string { return "flat text" }

func (f flatText) Read(data []byte, path []string) (string, error) {
	loc, err := f.locate(data, path)
	if err != nil {
		return "", err
	}
	return string(data[loc[2]:loc[3]]), nil
}

func (f flatText) Write(data []byte, path []string, value string) ([]byte, error) {
	loc, err := f.locate(data, path)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(data) + len(value))
	out.Write(data[:loc[2]])
	out.WriteString(value)
	out.Write(data[loc[3]:])
	return out.Bytes(), nil
}

// locate returns the submatch index of the value for the single key in path.
// Index 2 and 3 bound the quoted value.
func (flatText) locate(data []byte, path []string) ([]int, error) {
	if len(path) != 1 {
		return nil, &PathError{
			Path:    path,
			Message: fmt.Sprintf("flat text files support a single top-level key, got path %q", strings.Join(path, ".")),
		}
	}

	pattern := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(path[0]) + `[ \t]*=[ \t]*"([^"\n]*)"`)
	loc := pattern.FindSubmatchIndex(data)
	if loc == nil {
		return nil, &PathError{Path: path, Segment: 0, Missing: true}
	}
	return loc, nil
}
