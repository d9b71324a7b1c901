package logger

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(hook *AsyncHook) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.AddHook(hook)
	return l
}

func TestAsyncHookWritesAllEntriesOnClose(t *testing.T) {
	out := &syncBuffer{}
	hook := NewAsyncHook([]io.Writer{out}, 16)
	l := newTestLogger(hook)

	for i := 0; i < 10; i++ {
		l.WithField("n", i).Info("entry")
	}
	require.NoError(t, hook.Close())

	lines := strings.Count(out.String(), "msg=entry")
	assert.Equal(t, 10-int(hook.Dropped()), lines, "số dòng ghi ra phải bằng số entry không bị bỏ")
}

func TestAsyncHookKeepsLevelAndMessage(t *testing.T) {
	out := &syncBuffer{}
	hook := NewAsyncHook([]io.Writer{out}, 16)
	l := newTestLogger(hook)

	l.WithField("tenant_id", "T1").Warn("item book mutation rejected")
	require.NoError(t, hook.Close())

	line := out.String()
	assert.Contains(t, line, "level=warning")
	assert.Contains(t, line, `msg="item book mutation rejected"`)
	assert.Contains(t, line, "tenant_id=T1")
	assert.NotContains(t, line, "level=panic")
}

func TestAsyncHookWritesDirectlyAfterClose(t *testing.T) {
	out := &syncBuffer{}
	hook := NewAsyncHook([]io.Writer{out}, 1)
	require.NoError(t, hook.Close())
	require.NoError(t, hook.Close(), "Close lần hai không được lỗi")

	newTestLogger(hook).Warn("after close")

	assert.Contains(t, out.String(), "after close")
}

func TestWithContextAddsTenantAndRequest(t *testing.T) {
	require.NoError(t, Init(&LogConfig{Level: "debug", Format: "text", Output: "stdout", BufferSize: 10}))
	t.Cleanup(Shutdown)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-a")
	entry := WithContext(ctx)

	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "tenant-a", entry.Data["tenant_id"])
}
