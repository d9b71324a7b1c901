package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// AsyncHook đẩy log entries vào hàng đợi và ghi ra writers trong một goroutine riêng.
// Khi hàng đợi đầy, entry bị bỏ và được đếm vào Dropped.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewAsyncHook tạo một async hook mới với nhiều writers
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	h := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block: entry được copy rồi đưa vào channel
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		// Hook đã đóng, ghi trực tiếp
		h.write(entry)
		return nil
	}

	// Dup không copy Level, Message, Caller
	e := entry.Dup()
	e.Level, e.Message, e.Caller = entry.Level, entry.Message, entry.Caller

	select {
	case h.entries <- e:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// Dropped trả về số entry bị bỏ do hàng đợi đầy
func (h *AsyncHook) Dropped() int64 {
	return h.dropped.Load()
}

func (h *AsyncHook) run() {
	defer h.wg.Done()
	for entry := range h.entries {
		h.write(entry)
	}
}

// write format entry và ghi vào tất cả writers; panic ở writer không được làm sập server
func (h *AsyncHook) write(entry *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER PANIC] %v\n", r)
		}
	}()

	var data []byte
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		b, err := entry.Logger.Formatter.Format(entry)
		if err != nil {
			return
		}
		data = b
	} else {
		line, err := entry.String()
		if err != nil {
			return
		}
		data = []byte(line)
	}

	for _, w := range h.writers {
		_, _ = w.Write(data)
	}
}

// Close đóng hook và đợi tất cả entries được ghi xong
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
