package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// filteredField marks entries rejected by FilterHook
const filteredField = "_filtered"

// AsyncHook buffers entries and writes them from a single goroutine so slow
// disks never block a Load or Save.
type AsyncHook struct {
	writers    []io.Writer
	entries    chan *logrus.Entry
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	bufferSize int
}

// NewAsyncHookWithWriters creates an async hook writing to every writer.
// bufferSize <= 0 uses 1000 entries.
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers:    writers,
		entries:    make(chan *logrus.Entry, bufferSize),
		bufferSize: bufferSize,
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels returns every level
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire queues the entry. When the queue is full the entry is dropped.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	if filtered, ok := entry.Data[filteredField].(bool); ok && filtered {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// after Close, write synchronously
		data, err := format(entry)
		if err != nil {
			return err
		}
		for _, writer := range h.writers {
			_, _ = writer.Write(data)
		}
		return nil
	}

	// entries are formatted later, so hand over a copy; Dup keeps only the fields
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message
	dup.Caller = entry.Caller
	select {
	case h.entries <- dup:
	default:
	}
	return nil
}

func format(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// processEntries writes queued entries; a panic in a formatter never kills the goroutine
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] recovered: %v\n", r)
					debug.PrintStack()
				}
			}()

			data, err := format(entry)
			if err != nil {
				return
			}
			for _, writer := range h.writers {
				if _, err := writer.Write(data); err != nil {
					continue
				}
			}
		}()
	}
}

// Close stops accepting entries and waits until the queue is drained
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
