package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger writes one JSON object per line tagged with the service name,
// the action being performed and the request id it belongs to.
type Logger struct {
	service string
	entry   *logrus.Entry
}

func New(service, level string) *Logger {
	return NewWithOutput(service, level, os.Stdout)
}

func NewWithOutput(service, level string, out io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	hostname, _ := os.Hostname()
	return &Logger{
		service: service,
		entry:   base.WithFields(logrus.Fields{"service": service, "hostname": hostname}),
	}
}

func (l *Logger) Info(requestID, action, message string) {
	l.with(requestID, action).Info(message)
}

func (l *Logger) Debug(requestID, action, message string) {
	l.with(requestID, action).Debug(message)
}

func (l *Logger) Warn(requestID, action, message string) {
	l.with(requestID, action).Warn(message)
}

func (l *Logger) Error(requestID, action, message string, err error) {
	e := l.with(requestID, action)
	if err != nil {
		e = e.WithField("error", err.Error())
	}
	e.Error(message)
}

// WithFields returns a logrus entry carrying extra structured fields.
func (l *Logger) WithFields(requestID, action string, fields map[string]interface{}) *logrus.Entry {
	return l.with(requestID, action).WithFields(logrus.Fields(fields))
}

func (l *Logger) with(requestID, action string) *logrus.Entry {
	return l.entry.WithFields(logrus.Fields{"action": action, "request_id": requestID})
}
