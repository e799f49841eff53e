package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Console(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info level hides debug", false, false},
		{"debug level", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Options{Debug: tt.debug, Console: &buf})

			log.Debugw("probe", "k", 1)
			log.Infow("started", "port", 8080)
			Sync(log)

			out := buf.String()
			assert.Contains(t, out, "INFO")
			assert.Contains(t, out, "started")
			assert.Contains(t, out, "port")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("probe")))
		})
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.log")
	log := New(Options{File: path})

	log.Warnw("wall hit", "x", 1)
	Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "wall hit")
}
