package versionstore

import (
	"errors"
	"fmt"
	"strings"
)

// PathError reports a property path that cannot be resolved to a string
// leaf. It is a configuration problem and aborts the run before any write.
type PathError struct {
	File     string
	Path     []string
	Segment  int
	Missing  bool
	Expected Kind
	Actual   Kind
	Message  string
}

func (e *PathError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}

	if e.Message != "" {
		b.WriteString(e.Message)
		return b.String()
	}

	fmt.Fprintf(&b, "version path %q: ", strings.Join(e.Path, "."))
	seg := ""
	if e.Segment >= 0 && e.Segment < len(e.Path) {
		seg = e.Path[e.Segment]
	}
	if e.Missing {
		fmt.Fprintf(&b, "segment %q not found", seg)
		return b.String()
	}
	fmt.Fprintf(&b, "segment %q: expected %s, got %s", seg, e.Expected, e.Actual)
	return b.String()
}

// UnsupportedFormatError is returned for version files whose extension has
// no registered format.
type UnsupportedFormatError struct {
	File      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("%s: unsupported format %q", e.File, ext)
}

// IsPathError returns true if err is or wraps a PathError.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}

// IsUnsupportedFormat returns true if err is or wraps an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var ue *UnsupportedFormatError
	return errors.As(err, &ue)
}
