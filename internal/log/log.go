// Package log provides context-aware logging for git-workty.
//
// Diagnostics for the user go to the logger's writer (stderr). Debug events
// and executed commands are additionally recorded through zap when a log
// file is configured; the file is rotated by lumberjack.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

// FileConfig describes the rotated debug log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Option configures a Logger.
type Option func(*Logger)

// WithFile records debug events as JSON lines in a rotated file.
// An empty path disables the file.
func WithFile(cfg FileConfig) Option {
	return func(l *Logger) {
		if cfg.Path == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			fmt.Fprintf(l.out, "warning: log file disabled: %v\n", err)
			return
		}
		if cfg.MaxSizeMB == 0 {
			cfg.MaxSizeMB = 10
		}
		if cfg.MaxBackups == 0 {
			cfg.MaxBackups = 3
		}
		if cfg.MaxAgeDays == 0 {
			cfg.MaxAgeDays = 14
		}
		w := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = "ts"
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), zapcore.DebugLevel)
		l.zl = zap.New(core).Sugar()
		l.file = w
	}
}

// Logger provides output and verbose command logging.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	zl      *zap.SugaredLogger
	file    io.Closer
}

// New creates a new logger. Quiet suppresses everything written to out,
// including verbose output.
func New(out io.Writer, verbose, quiet bool, opts ...Option) *Logger {
	l := &Logger{out: out, verbose: verbose, quiet: quiet, zl: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return New(io.Discard, false, false)
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Command logs an external command execution. The returned func is called
// with the elapsed time once the command finished.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	return func(d time.Duration) {
		l.zl.Debugw("exec", "dir", dir, "cmd", line, "duration", d)
		if !l.IsVerbose() {
			return
		}
		if dir != "" {
			fmt.Fprintf(l.out, "[%s] $ %s (%s)\n", dir, line, d.Round(time.Millisecond))
			return
		}
		fmt.Fprintf(l.out, "$ %s (%s)\n", line, d.Round(time.Millisecond))
	}
}

// Debug logs msg with key/value pairs. It prints to the writer in verbose
// mode and always reaches the log file when one is configured.
// A trailing key without value is dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	l.zl.Debugw(msg, keyvals...)
	if !l.IsVerbose() {
		return
	}
	var b strings.Builder
	b.WriteString("debug: ")
	b.WriteString(msg)
	for i := 0; i < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	b.WriteByte('\n')
	io.WriteString(l.out, b.String())
}

// IsVerbose returns true if verbose mode is enabled and not silenced by quiet.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}

// Close flushes the debug log and releases the log file.
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
