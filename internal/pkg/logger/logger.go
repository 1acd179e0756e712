// Package logger builds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const EnvProduction = "production"

// New returns a JSON logger at info level for production. Any other
// environment gets the text formatter at debug level. A non-empty level
// overrides the environment default.
func New(output io.Writer, env, level string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(output)
	l.SetFormatter(new(logrus.JSONFormatter))
	l.SetLevel(logrus.InfoLevel)

	if !strings.EqualFold(env, EnvProduction) {
		l.SetLevel(logrus.DebugLevel)
		l.SetFormatter(new(logrus.TextFormatter))
	}

	if level = strings.TrimSpace(level); level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		l.SetLevel(parsed)
	}

	return l, nil
}
