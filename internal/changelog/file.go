package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// Heading returns the release heading placed above a changelog entry.
func Heading(tag string, date time.Time) string {
	return fmt.Sprintf("## %s (%s)", tag, date.Format("2006-01-02"))
}

// Entry joins the release heading and the cleaned changelog body.
func Entry(tag string, date time.Time, body string) string {
	body = Clean(body)
	if body == "" {
		return Heading(tag, date) + "\n"
	}
	return Heading(tag, date) + "\n\n" + body + "\n"
}

// Prepend writes entry above the existing content of the changelog file at
// path, creating the file if it does not exist. An entry whose heading is
// already at the top of the file is not written again. When keep is positive
// only the newest keep release entries are retained.
func Prepend(path, entry string, keep int) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading changelog file: %w", err)
	}

	heading, _, _ := strings.Cut(entry, "\n")
	if strings.HasPrefix(string(existing), heading+"\n") {
		return nil
	}

	content := entry
	if len(existing) > 0 {
		content = entry + "\n" + string(existing)
	}
	content = truncateReleases(content, keep)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}

// truncateReleases drops every release entry after the first keep headings.
func truncateReleases(content string, keep int) string {
	if keep <= 0 {
		return content
	}
	seen := 0
	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			if seen == keep {
				return strings.TrimRight(content[:offset], "\n") + "\n"
			}
			seen++
		}
		offset += len(line)
	}
	return content
}
