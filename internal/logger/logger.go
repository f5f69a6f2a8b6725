package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lshigami/lawdesk/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init installs a human readable console logger as the global zerolog logger.
// It is safe to call before the config is loaded.
func Init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = zerolog.New(consoleWriter()).With().Timestamp().Logger()
}

// Configure applies the loaded log settings: level and a rotating log file
// next to the console output.
func Configure(cfg *config.Config) error {
	SetLevel(cfg.Log.Level)

	if cfg.Log.File == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return err
	}
	file := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(consoleWriter(), file)).
		With().Timestamp().Caller().Logger()

	config.OnReload(func(c *config.Config) { SetLevel(c.Log.Level) })
	return nil
}

// SetLevel changes the global level. Unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if lvl != zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(lvl)
		log.Info().Str("level", lvl.String()).Msg("Log level set")
	}
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
}
