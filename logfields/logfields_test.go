package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, KeyTaskID, TaskID(3).Key)
	assert.Equal(t, int64(3), TaskID(3).Value.Int64())
	assert.Equal(t, "archive", TaskType("archive").Value.String())
	assert.Equal(t, int64(90), Seconds(90).Value.Int64())
}

func TestErrorNil(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
