// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var initOnce sync.Once

// Options controls where and how verbosely the service logs.
type Options struct {
	Level      string // zerolog level name: debug, info, warn, error
	Console    bool
	FilePath   string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
}

// Init configures the global zerolog logger. Safe to call more than once;
// only the first call takes effect.
func Init(opts Options) {
	initOnce.Do(func() {
		level, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}

		var writers []io.Writer
		if opts.Console {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.Kitchen,
			})
		}
		if opts.FilePath != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.FilePath,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				Compress:   true,
			})
		}
		if len(writers) == 0 {
			writers = append(writers, os.Stdout)
		}

		log.Logger = zerolog.New(io.MultiWriter(writers...)).
			With().Timestamp().Logger().Level(level)
	})
}
