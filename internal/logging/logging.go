// Package logging configures the global zerolog logger with two sinks: a
// console writer on stderr and a size-rotated file managed by lumberjack.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "ttc-transform.log"

// Init wires up the global logger. Runs before config.Load, so it loads the
// binary-relative .env itself to pick up LOGS_FOLDER.
func Init(verbose bool) {
	if exeDir, ok := executableDir(); ok {
		_ = godotenv.Load(filepath.Join(exeDir, ".env"))
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !stderrIsTerminal(),
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(resolveLogDir(), logFileName),
		MaxSize:    16, // megabytes
		MaxBackups: 16,
		MaxAge:     90, // days
		Compress:   true,
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, file)).
		With().
		Timestamp().
		Logger()
}

// resolveLogDir picks the log directory (LOGS_FOLDER, else logs/ next to the
// binary) and verifies it is writable before lumberjack touches it.
func resolveLogDir() string {
	dir := os.Getenv("LOGS_FOLDER")
	if dir == "" {
		dir = "logs"
		if exeDir, ok := executableDir(); ok {
			dir = filepath.Join(exeDir, "logs")
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create log directory %q: %v\n", dir, err)
		os.Exit(1)
	}
	probe := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: log directory %q is not writable: %v\n", dir, err)
		os.Exit(1)
	}
	_ = os.Remove(probe)

	return dir
}

func executableDir() (string, bool) {
	exePath, err := os.Executable()
	if err != nil {
		return "", false
	}
	return filepath.Dir(exePath), true
}

func stderrIsTerminal() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
