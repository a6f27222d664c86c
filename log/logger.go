package log

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

type Logger = *logrus.Logger

type Fields = logrus.Fields

const (
	// default log level
	defaultLogLevel = logrus.InfoLevel

	// log file name
	globalLogFileName = "global.log"
	// default log directory
	logDir = "nodelogs"
	// default log file params
	defaultLogMaxSize    = 100 // maximum file size before rotation, in MB
	defaultLogMaxBackups = 3   // maximum number of old log files to keep
	defaultLogMaxAge     = 28  // maximum number of days to retain old log files
)

var (
	// Global is the logger used by the application
	Global Logger

	// default logfile path
	defaultLogFilePath = "./" + logDir + "/" + globalLogFileName
)

func init() {
	Global = createStandardLogger(defaultLogFilePath, defaultLogLevel.String(), true)
}

// SetGlobalLogger redirects the global logger to logFilename (and stdout) at
// the given level. An empty filename keeps the default path.
func SetGlobalLogger(logFilename string, logLevel string) {
	if logFilename == "" {
		logFilename = defaultLogFilePath
	}
	Configure(Global,
		WithOutput(io.MultiWriter(rotatingFile(logFilename), os.Stdout)),
		WithLevel(logLevel),
	)
}

// NewLogger creates a logger writing only to logFilename.
func NewLogger(logFilename string, logLevel string) Logger {
	if logFilename == "" {
		logFilename = defaultLogFilePath
	}
	logger := createStandardLogger(logFilename, logLevel, false)
	logger.WithFields(Fields{
		"path":  logFilename,
		"level": logLevel,
	}).Info("Logger started")
	return logger
}

// NewNullLogger returns a logger discarding everything, used by tests and by
// engines created without an explicit logger.
func NewNullLogger() Logger {
	logger := logrus.New()
	Configure(logger, WithNullLogger())
	return logger
}

func rotatingFile(logFilename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   logFilename,
		MaxSize:    defaultLogMaxSize,
		MaxBackups: defaultLogMaxBackups,
		MaxAge:     defaultLogMaxAge,
	}
}

func createStandardLogger(logFilename string, logLevel string, stdOut bool) Logger {
	logger := logrus.New()
	var output io.Writer = rotatingFile(logFilename)
	if stdOut {
		output = io.MultiWriter(output, os.Stdout)
	}

	Configure(logger,
		WithOutput(output),
		WithFormatter(&logrus.TextFormatter{
			ForceColors:     true,
			PadLevelText:    true,
			FullTimestamp:   true,
			TimestampFormat: "01-02|15:04:05.000",
		}),
		WithLevel(logLevel),
	)
	return logger
}

func WithField(key string, val interface{}) *logrus.Entry {
	return Global.WithField(key, val)
}

func WithFields(fields Fields) *logrus.Entry {
	return Global.WithFields(fields)
}
