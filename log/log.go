package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Level logrus.Level

const (
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
)

type Fields = logrus.Fields

var Logger *logrus.Logger

var textFormatter = &logrus.TextFormatter{
	DisableLevelTruncation: true,
	PadLevelText:           true,
	TimestampFormat:        "2006/01/02 15:04:05",
	FullTimestamp:          true,
}

func init() {
	Logger = logrus.New()
	Logger.Formatter = textFormatter
}

// ParseLevel accepts the logrus level names from "fatal" to "debug".
func ParseLevel(name string) (Level, error) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, err
	}
	if level > logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	return Level(level), nil
}

func SetLevel(level Level) {
	Logger.SetLevel(logrus.Level(level))
}

// SetJSON switches between the console text format and one JSON object per line.
func SetJSON(on bool) {
	if on {
		Logger.Formatter = &logrus.JSONFormatter{}
	} else {
		Logger.Formatter = textFormatter
	}
}

// Writer pipes each line written to it into the log at the given level.
// The caller closes it.
func Writer(level Level) *io.PipeWriter {
	return Logger.WriterLevel(logrus.Level(level))
}

func WithFields(fields Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

func Log(level Level, args ...any) {
	Logger.Logln(logrus.Level(level), args...)
}

func Debugf(fmt string, args ...any) {
	Logger.Debugf(fmt, args...)
}
func Debug(args ...any) {
	Logger.Debugln(args...)
}

func Infof(fmt string, args ...any) {
	Logger.Infof(fmt, args...)
}
func Info(args ...any) {
	Logger.Infoln(args...)
}

func Errorf(fmt string, args ...any) {
	Logger.Errorf(fmt, args...)
}

func Fatal(args ...any) {
	Logger.Fatalln(args...)
}
