package tui

import (
	"bytes"
	"strings"
	"sync"
)

// LogMsg is emitted when a log line should be appended to the log pane.
type LogMsg struct {
	Line string
}

// LogWriter is an io.Writer that streams complete lines into the program.
// Lines are forwarded from a goroutine so a slow program never blocks the
// logger; when the queue is full lines are dropped.
type LogWriter struct {
	program Sender

	mu      sync.Mutex
	buffer  bytes.Buffer
	maxLine int
	lines   chan string
	closed  bool
	done    chan struct{}
}

// NewLogWriter creates a LogWriter that sends log lines into program.
func NewLogWriter(program Sender) *LogWriter {
	w := &LogWriter{
		program: program,
		maxLine: 500,
		lines:   make(chan string, 200),
		done:    make(chan struct{}),
	}
	go w.forward()
	return w
}

func (w *LogWriter) forward() {
	defer close(w.done)
	for line := range w.lines {
		w.program.Send(LogMsg{Line: line})
	}
}

// Write implements io.Writer, splitting output into lines.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.buffer.Write(p)
	for {
		line, err := w.buffer.ReadString('\n')
		if err != nil {
			// partial line: keep it for the next write
			w.buffer.Reset()
			w.buffer.WriteString(line)
			break
		}
		w.sendLine(line)
	}
	return len(p), nil
}

// Close flushes a trailing partial line and stops forwarding.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	if w.buffer.Len() > 0 {
		w.sendLine(w.buffer.String())
		w.buffer.Reset()
	}
	w.closed = true
	close(w.lines)
	w.mu.Unlock()

	<-w.done
	return nil
}

func (w *LogWriter) sendLine(line string) {
	if w.closed {
		return
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	if w.maxLine > 0 && len(line) > w.maxLine {
		line = line[:w.maxLine] + "..."
	}
	select {
	case w.lines <- line:
	default:
	}
}
