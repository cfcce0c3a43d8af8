package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Init rejects a config without the names stamped on every event.
var (
	ErrAppNameIsEmpty     = errors.New("log: appName must be set")
	ErrServiceNameIsEmpty = errors.New("log: serviceName must be set")
)

// droppedEvents receives the events no writer accepted.
var droppedEvents io.Writer = os.Stderr

// WriteFailed is installed as zerolog.ErrorHandler. It fires when an event
// could not be written, e.g. a rolling file on a full disk.
func WriteFailed(err error) {
	_, _ = fmt.Fprintf(droppedEvents, "bakery: log event dropped: %v\n", err)
}
