package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSettledWaitsForQuietPeriod(t *testing.T) {
	w := &Watcher{pending: make(map[string]time.Time), debounceDur: time.Second}
	now := time.Now()
	w.pending["b.png"] = now.Add(-2 * time.Second)
	w.pending["a.png"] = now.Add(-500 * time.Millisecond)

	assert.Nil(t, w.settled(now))
	assert.Equal(t, []string{"a.png", "b.png"}, w.settled(now.Add(time.Second)))
	assert.Nil(t, w.settled(now.Add(time.Hour)))
}

func TestHandleEventFiltersExtensions(t *testing.T) {
	w := &Watcher{pending: make(map[string]time.Time), extensions: []string{".png"}}
	w.logger = nopLogger()

	w.handleEvent(fsnotify.Event{Name: "oak_albedo.PNG", Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: "oak_rough.png", Op: fsnotify.Chmod})

	assert.Len(t, w.pending, 1)
	assert.Contains(t, w.pending, "oak_albedo.PNG")
}

func TestRunReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	got := make(chan []string, 1)

	w, err := New(dir, Options{Extensions: []string{".png"}, Debounce: 50 * time.Millisecond},
		func(_ context.Context, paths []string) {
			select {
			case got <- paths:
			default:
			}
		})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stone_normal.png"), []byte("x"), 0o600))

	select {
	case paths := <-got:
		assert.Equal(t, []string{filepath.Join(dir, "stone_normal.png")}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestNewMissingFolder(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), Options{}, func(context.Context, []string) {})
	assert.Error(t, err)
}

func nopLogger() *zap.Logger { return zap.NewNop() }
