package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	LogFile       string
	LogLevel      string
	LogFormatJSON bool
}

// Setup points the standard logrus logger at a rotating file. The terminal
// belongs to the TUI, so with no file configured logs are discarded.
// The returned closer flushes the file.
func Setup(params SetupParams) (io.Closer, error) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFile == "" {
		logrus.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}

	if !strings.HasSuffix(params.LogFile, ".log") {
		params.LogFile += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFile), 0o755); err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   params.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  false,
		Compress:   true,
	}
	logrus.SetOutput(lj)
	return lj, nil
}

func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
