package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(cause, Persistence, "check the file"))

	cliErr := AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, Persistence, cliErr.Category)
	assert.Equal(t, "boom", cliErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Wrap(nil, Runtime))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want string
	}{
		"message only": {
			err:  NewRuntimeError("something failed"),
			want: "Error [Runtime Error]: something failed\n",
		},
		"with remediation": {
			err:  InvalidInput("minor_bump_interval", "must be a positive integer"),
			want: "Error [Configuration Error]: invalid minor_bump_interval: must be a positive integer\n\nTo fix this:\n  • Set minor_bump_interval in .tagsmith.yml, the INPUT_MINOR_BUMP_INTERVAL environment variable or the matching flag\n",
		},
		"with usage": {
			err:  &CLIError{Category: Argument, Message: "unexpected argument", Usage: "tagsmith next"},
			want: "Error [Argument Error]: unexpected argument\n\nUsage: tagsmith next\n",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatErrorPlain(tt.err))
		})
	}
}

func TestFprintError_PlainErrorIsRuntime(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	FprintError(&buf, stderrors.New("disk full"))
	assert.Contains(t, buf.String(), "Runtime Error")
	assert.Contains(t, buf.String(), "disk full")
}

func TestCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Git Error", SideEffect.String())
	assert.Equal(t, "Error", ErrorCategory(99).String())
}
