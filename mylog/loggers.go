package mylog

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
)

const logFileName = "gxwallet.log"

func convertLevel(level string) logrus.Level {
	switch level {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// NewFileRotateHooker writes every level to a daily rotated file under path,
// keeping age days of history.
func NewFileRotateHooker(path string, age uint32) (logrus.Hook, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, err
	}
	base := filepath.Join(path, logFileName)
	writer, err := rotatelogs.New(
		base+".%Y%m%d",
		rotatelogs.WithLinkName(base),
		rotatelogs.WithMaxAge(time.Duration(age)*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}
	return lfshook.NewHook(lfshook.WriterMap{
		logrus.PanicLevel: writer,
		logrus.FatalLevel: writer,
		logrus.ErrorLevel: writer,
		logrus.WarnLevel:  writer,
		logrus.InfoLevel:  writer,
		logrus.DebugLevel: writer,
	}, &logrus.JSONFormatter{}), nil
}

// Init loggers. An empty path logs to stdout only.
func Init(path string, level string, age uint32) *logrus.Logger {
	clog := logrus.New()
	clog.Out = os.Stdout
	clog.Formatter = &logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	}
	clog.Level = convertLevel(level)

	if path != "" {
		hook, err := NewFileRotateHooker(path, age)
		if err != nil {
			clog.WithError(err).Warn("file logging disabled")
		} else {
			clog.Hooks.Add(hook)
		}
	}
	return clog
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}
