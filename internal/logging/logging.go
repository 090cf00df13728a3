package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the rotating log file written inside Options.Dir.
const FileName = "bagcalc.log"

// Options configures Init.
type Options struct {
	Verbose bool
	// Dir holds the rotating log file. Empty disables the file sink.
	Dir string
	// Console defaults to os.Stderr. stdout is never used; the MCP stdio
	// transport owns it.
	Console *os.File
}

// Init replaces the global logger with a console sink and, when opts.Dir is
// set, a rotating file sink. The returned close func flushes the file.
func Init(opts Options) (func() error, error) {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	isTerminal := isatty.IsTerminal(console.Fd()) || isatty.IsCygwinTerminal(console.Fd())
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}}

	closeFn := func() error { return nil }
	if opts.Dir != "" {
		if err := ensureWritable(opts.Dir); err != nil {
			return nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, FileName),
			MaxSize:    16, // megabytes
			MaxBackups: 32,
			MaxAge:     365, // days
			Compress:   true,
		}
		writers = append(writers, fileWriter)
		closeFn = fileWriter.Close
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger()
	return closeFn, nil
}

func ensureWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log directory %q: %w", dir, err)
	}
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("log directory %q is not writable: %w", dir, err)
	}
	return os.Remove(testFile)
}
