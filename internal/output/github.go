package output

import (
	"fmt"
	"os"

	"github.com/sethvargo/go-githubactions"
)

// Field is a single named step output.
type Field struct {
	Name  string
	Value string
}

// outputFileEnv names the file GitHub Actions reads step outputs from.
const outputFileEnv = "GITHUB_OUTPUT"

// AppendStepOutputs appends fields to the step output file at path using the
// Actions file command format, so multi-line values such as the changelog
// survive intact.
func AppendStepOutputs(path string, fields []Field) (err error) {
	// SetOutput panics on I/O errors; open the file first to report them.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening step output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("opening step output file: %w", err)
	}

	action := githubactions.New(githubactions.WithGetenv(func(key string) string {
		if key == outputFileEnv {
			return path
		}
		return os.Getenv(key)
	}))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("writing step outputs: %v", r)
		}
	}()
	for _, field := range fields {
		action.SetOutput(field.Name, field.Value)
	}
	return nil
}
