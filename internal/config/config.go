package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/focustree/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
	Mouse   bool
}

const (
	envLayout     = "FOCUSTREE_LAYOUT"
	envWatch      = "FOCUSTREE_WATCH"
	envDebounce   = "FOCUSTREE_DEBOUNCE"
	envWidth      = "FOCUSTREE_WIDTH"
	envHeight     = "FOCUSTREE_HEIGHT"
	envShowFooter = "FOCUSTREE_FOOTER"
	envMouse      = "FOCUSTREE_MOUSE"
	envVerbose    = "FOCUSTREE_VERBOSE"
	envTrace      = "FOCUSTREE_TRACE"
	envLogFile    = "FOCUSTREE_LOG_FILE"
)

const defaultDebounce = 250 * time.Millisecond

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("focustree", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	layoutPath := fs.String("layout", envOrDefault(env, envLayout, ""), "path to a TOML layout file (empty uses the built-in layout)")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the layout file when it changes")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, defaultDebounce), "minimum interval between layout reloads")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key help footer")
	mouse := fs.Bool("mouse", envOrBool(env, envMouse, true), "enable mouse clicks")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *debounce < 0 {
		return Config{}, fmt.Errorf("debounce must be >= 0 (got %s)", *debounce)
	}

	cfg := Config{
		App: app.Config{
			LayoutPath: *layoutPath,
			Watch:      *watch,
			Debounce:   *debounce,
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Mouse:      *mouse,
			Verbose:    *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Watch:   *watch,
			Mouse:   *mouse,
		},
		Flags: map[string]string{
			"layout":   *layoutPath,
			"watch":    strconv.FormatBool(*watch),
			"debounce": debounce.String(),
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"mouse":    strconv.FormatBool(*mouse),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures options that depend on each other are consistent.
func Validate(cfg Config) error {
	if cfg.App.Watch && strings.TrimSpace(cfg.App.LayoutPath) == "" {
		return fmt.Errorf("--watch requires --layout")
	}
	return nil
}
