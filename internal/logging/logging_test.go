package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactHandler(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("level, time, message and attrs", func(t *testing.T) {
		buf.Reset()
		log.Info("exported canvas", "format", "png", "path", "/tmp/a b.png", "count", 3)
		assert.Regexp(t,
			regexp.MustCompile(`^\[INFO\]  \d\d:\d\d:\d\d exported canvas \| format=png path="/tmp/a b.png" count=3\n$`),
			buf.String())
	})

	t.Run("errors are quoted", func(t *testing.T) {
		buf.Reset()
		log.Warn("export failed", "error", errors.New("disk full"))
		assert.Contains(t, buf.String(), `[WARN]  `)
		assert.Contains(t, buf.String(), `| error="disk full"`)
	})

	t.Run("no attrs means no separator", func(t *testing.T) {
		buf.Reset()
		log.Debug("quitting")
		assert.NotContains(t, buf.String(), "|")
		assert.Contains(t, buf.String(), "[DEBUG] ")
	})

	t.Run("with attrs and groups", func(t *testing.T) {
		buf.Reset()
		log.With("view", "sketch").WithGroup("pad").Info("mounted", "width", 10)
		assert.Contains(t, buf.String(), "| view=sketch pad.width=10")
	})

	t.Run("levels below the minimum are dropped", func(t *testing.T) {
		var quiet bytes.Buffer
		l := slog.New(NewCompactHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}))
		l.Info("hidden")
		l.Error("shown")
		assert.NotContains(t, quiet.String(), "hidden")
		assert.Contains(t, quiet.String(), "[ERROR] ")
	})
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, slog.LevelInfo)
	t.Cleanup(func() { Setup(&bytes.Buffer{}, slog.LevelError) })

	Debug("dropped")
	Info("kept", "n", 1)
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept | n=1")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "folio.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("line\n")
	assert.NoError(t, err)
	assert.FileExists(t, path)
}
