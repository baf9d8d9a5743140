// Package logger is the structured logging surface every collaborator in
// the cluster is handed: a small, level-gated wrapper over logrus writing
// to stdout and/or a file, built from config.Options.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"

	logcfg "github.com/nabbar/cybercache/logger/config"
	logent "github.com/nabbar/cybercache/logger/entry"
	loglvl "github.com/nabbar/cybercache/logger/level"
)

// Logger is handed to every component that can report an event worth
// recording: reactor wait failures, protocol errors, eviction sweeps,
// admin commands.
type Logger interface {
	// SetLevel changes the minimum level entries are written at.
	SetLevel(lvl loglvl.Level)
	// GetLevel returns the current minimum level.
	GetLevel() loglvl.Level
	// Entry starts a new log record at lvl. Call Log on the result to
	// write it.
	Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry
	// Close releases the underlying file, if one was opened.
	Close() error
}

type lgr struct {
	log  *logrus.Logger
	lvl  loglvl.Level
	file *os.File
}

// New returns a Logger writing to stdout at InfoLevel.
func New(_ context.Context) Logger {
	l := logrus.New()
	l.SetOutput(colorable.NewColorableStdout())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	n := &lgr{log: l}
	n.SetLevel(loglvl.InfoLevel)

	return n
}

// NewFrom builds a Logger from opt. When other carries a prior Logger,
// its level is used as the default, then overridden by opt if given. A
// nil opt logs to stdout, at that prior level or else at InfoLevel.
func NewFrom(_ context.Context, opt *logcfg.Options, other ...any) (Logger, error) {
	lvl := loglvl.InfoLevel

	for _, o := range other {
		if g, ok := o.(Logger); ok && g != nil {
			lvl = g.GetLevel()
		}
	}

	if opt != nil {
		lvl = opt.ParsedLevel()
	}

	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(lvl.Logrus())

	var (
		file    *os.File
		writers []io.Writer
	)

	if opt == nil || opt.Stdout || opt.FilePath == "" {
		writers = append(writers, colorable.NewColorableStdout())
	}

	if opt != nil && opt.FilePath != "" {
		f, err := os.OpenFile(opt.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: opening log file %q: %w", opt.FilePath, err)
		}
		file = f
		writers = append(writers, f)
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	n := &lgr{log: l, file: file}
	n.lvl = lvl

	return n, nil
}

func (l *lgr) SetLevel(lvl loglvl.Level) {
	l.lvl = lvl
	l.log.SetLevel(lvl.Logrus())
}

func (l *lgr) GetLevel() loglvl.Level {
	return l.lvl
}

func (l *lgr) Entry(lvl loglvl.Level, message string, args ...interface{}) logent.Entry {
	msg := message
	if len(args) > 0 {
		msg = fmt.Sprintf(message, args...)
	}
	return logent.New(l.log, lvl, msg)
}

func (l *lgr) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
