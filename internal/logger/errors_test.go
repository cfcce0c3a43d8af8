package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteFailed(t *testing.T) {
	var buf bytes.Buffer

	prev := droppedEvents
	droppedEvents = &buf
	t.Cleanup(func() { droppedEvents = prev })

	WriteFailed(errors.New("no space left on device"))

	assert.Equal(t, "bakery: log event dropped: no space left on device\n", buf.String())
}
