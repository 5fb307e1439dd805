package errs

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMatchesByKind(t *testing.T) {
	err := TaskNotFound(42)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NotErrorIs(t, err, ErrNotRunning)

	wrapped := fmt.Errorf("delete: %w", err)
	assert.ErrorIs(t, wrapped, ErrTaskNotFound)
	assert.Equal(t, KindTaskNotFound, KindOf(wrapped))
}

func TestWrapKeepsCause(t *testing.T) {
	err := Persistence(io.ErrUnexpectedEOF, "read", "/tmp/current.json")

	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.ErrorIs(t, err, ErrPersistenceFailure)
	assert.Equal(t, "failed to read /tmp/current.json: unexpected EOF", err.Error())
	assert.Equal(t, "/tmp/current.json", err.Context()["path"])
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	base := New(KindInvalidInput, "bad")
	withCtx := base.With("field", "name")

	assert.Nil(t, base.Context())
	assert.Equal(t, "name", withCtx.Context()["field"])
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitGeneral},
		{"not found", TaskNotFound(1), ExitNotFound},
		{"name not found", TaskNameNotFound("x"), ExitNotFound},
		{"already running", AlreadyRunning(1), ExitStateConflict},
		{"not running", NotRunning(1), ExitStateConflict},
		{"duration", InvalidDuration("1x", "unknown unit"), ExitInvalidInput},
		{"input", New(KindInvalidInput, "empty name"), ExitInvalidInput},
		{"declined", ErrConfirmationDeclined, ExitDeclined},
		{"persistence", Persistence(io.EOF, "write", "f"), ExitPersistence},
		{"config", New(KindConfig, "bad format"), ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
