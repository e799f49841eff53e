// Package config gathers runtime settings from a .env file, environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

// Flag names
const (
	FlagHost        = "host"
	FlagPort        = "port"
	FlagLogFile     = "log-file"
	FlagDebug       = "debug"
	FlagNgrok       = "ngrok"
	FlagNgrokAuth   = "ngrok-auth"
	FlagNgrokDomain = "ngrok-domain"
	FlagSessionTTL  = "session-ttl"
)

// Defaults
const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultSessionTTL = 2 * time.Hour
)

// Config holds the settings shared by all commands
type Config struct {
	Host    string
	Port    int
	LogFile string
	Debug   bool

	NgrokEnabled   bool
	NgrokAuthToken string
	NgrokDomain    string

	// SessionTTL is the idle time after which a session is dropped; 0 keeps
	// sessions forever
	SessionTTL time.Duration
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are not an error. It must run before the command line is parsed so that
// flag env sources see the values.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Flags returns the global flags understood by Load
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagHost,
			Value:   DefaultHost,
			Usage:   "HTTP server host",
			Sources: cli.EnvVars("MAZE_HOST"),
		},
		&cli.IntFlag{
			Name:    FlagPort,
			Value:   DefaultPort,
			Usage:   "HTTP server port",
			Sources: cli.EnvVars("MAZE_PORT"),
		},
		&cli.StringFlag{
			Name:    FlagLogFile,
			Usage:   "write logs to a rolling file instead of stderr",
			Sources: cli.EnvVars("MAZE_LOG_FILE"),
		},
		&cli.BoolFlag{
			Name:    FlagDebug,
			Usage:   "enable debug logging",
			Sources: cli.EnvVars("MAZE_DEBUG"),
		},
		&cli.BoolFlag{
			Name:    FlagNgrok,
			Usage:   "expose the server through an ngrok tunnel",
			Sources: cli.EnvVars("NGROK_ENABLED"),
		},
		&cli.StringFlag{
			Name:    FlagNgrokAuth,
			Usage:   "ngrok auth token",
			Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
		},
		&cli.StringFlag{
			Name:    FlagNgrokDomain,
			Usage:   "custom ngrok domain",
			Sources: cli.EnvVars("NGROK_DOMAIN"),
		},
		&cli.DurationFlag{
			Name:    FlagSessionTTL,
			Value:   DefaultSessionTTL,
			Usage:   "drop sessions idle for longer than this (0 disables)",
			Sources: cli.EnvVars("MAZE_SESSION_TTL"),
		},
	}
}

// Load reads the flags of cmd into a Config
func Load(cmd *cli.Command) (Config, error) {
	cfg := Config{
		Host:           cmd.String(FlagHost),
		Port:           int(cmd.Int(FlagPort)),
		LogFile:        cmd.String(FlagLogFile),
		Debug:          cmd.Bool(FlagDebug),
		NgrokEnabled:   cmd.Bool(FlagNgrok),
		NgrokAuthToken: cmd.String(FlagNgrokAuth),
		NgrokDomain:    cmd.String(FlagNgrokDomain),
		SessionTTL:     cmd.Duration(FlagSessionTTL),
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative, got %s", c.SessionTTL)
	}
	if c.NgrokEnabled && c.NgrokAuthToken == "" {
		return errors.New("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
	}
	return nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BaseURL is the URL local clients use to reach the server
func (c Config) BaseURL() string {
	return "http://" + c.Addr()
}
