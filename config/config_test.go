package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// parse runs a command with the config flags and returns what Load saw
func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()
	var (
		cfg     Config
		loadErr error
	)
	cmd := &cli.Command{
		Name:  "maze",
		Flags: Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, loadErr = Load(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"maze"}, args...)))
	return cfg, loadErr
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoad_FlagsAndEnv(t *testing.T) {
	t.Setenv("MAZE_PORT", "9191")
	t.Setenv("MAZE_DEBUG", "true")
	t.Setenv("MAZE_SESSION_TTL", "15m")

	cfg, err := parse(t, "--host", "0.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9191, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)

	// Flags win over the environment
	cfg, err = parse(t, "--port", "7000")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: 80}, false},
		{"port too large", Config{Port: 70000}, true},
		{"negative ttl", Config{SessionTTL: -time.Second}, true},
		{"ngrok without token", Config{NgrokEnabled: true}, true},
		{"ngrok with token", Config{NgrokEnabled: true, NgrokAuthToken: "tok"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("MAZE_TEST_DOTENV=hello\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MAZE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "hello", os.Getenv("MAZE_TEST_DOTENV"))
}
