package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tgienger/taskdash/internal/clock"
	"github.com/tgienger/taskdash/internal/config"
	"github.com/tgienger/taskdash/internal/models"
	"github.com/tgienger/taskdash/internal/store"
	"github.com/tgienger/taskdash/internal/ui/styles"
)

// session is everything a command needs: config, logger, clock and a
// freshly seeded store
type session struct {
	cfg    config.Config
	logger *slog.Logger
	clock  clock.Clock
	store  *store.Store
	closer io.Closer
}

func (s *session) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// loadConfig reads the config from the --config path or the default location
func loadConfig(opts *RootOptions) (config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "failed to locate config", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

// newSession builds a session. Logs go to logOut unless the config names a
// log file, which the TUI relies on since it owns the terminal.
func newSession(opts *RootOptions, logOut io.Writer) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	if err := styles.Use(cfg.Theme); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid theme", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid log level", err)
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}

	s := &session{cfg: cfg}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open log file", err)
		}
		logOut = f
		s.closer = f
	}
	s.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	s.clock, err = resolveClock(opts, cfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	storeOpts := []store.Option{store.WithLogger(s.logger)}
	if cfg.SeedEnabled() {
		storeOpts = append(storeOpts, store.WithTasks(store.Seed()))
	}
	s.store = store.New(storeOpts...)

	s.logger.Debug("session ready",
		"theme", cfg.Theme,
		"today", s.clock.Today().String(),
		"tasks", s.store.Len(),
	)
	return s, nil
}

// resolveClock picks --today, then the config's today, then the system clock
func resolveClock(opts *RootOptions, cfg config.Config) (clock.Clock, error) {
	if opts.Today != "" {
		day, err := models.ParseDate(opts.Today)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid --today %q", opts.Today), err)
		}
		return clock.Fixed(day), nil
	}
	if day, ok := cfg.TodayOverride(); ok {
		return clock.Fixed(day), nil
	}
	return clock.System{}, nil
}
