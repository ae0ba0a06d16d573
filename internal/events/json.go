package events

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// JSONMode reports whether events should be written as JSON lines to out:
// always when forced, otherwise whenever out is not a terminal.
func JSONMode(force bool, out *os.File) bool {
	return force || out == nil || !term.IsTerminal(int(out.Fd()))
}

// JSONEmitter writes one JSON object per event, newline delimited.
type JSONEmitter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{w: w}
}

// Emit writes e. After the first write error every later call returns it.
func (j *JSONEmitter) Emit(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	if _, err := j.w.Write(append(line, '\n')); err != nil {
		j.err = err
	}
	return j.err
}

// Handler subscribes the emitter to a bus.
func (j *JSONEmitter) Handler() Handler {
	return func(e Event) { _ = j.Emit(e) }
}
