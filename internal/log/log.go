// Package log builds the single *logrus.Logger every other package
// receives a *logrus.Entry from (spec §7: fatal vs. swallowed errors
// are a log-level distinction, not a different mechanism).
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// New builds the root logger: text formatter, debug level when either
// debug is true (the -debug flag) or FC_DEBUG is set truthy in the
// environment, info level otherwise. Grounded on the
// *logrus.Logger-injected-into-every-component shape of
// DimaJoyti-AIOS's window manager (WithFields-per-event logging).
func New(debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetOutput(os.Stderr)

	if !debug {
		if v, ok := os.LookupEnv("FC_DEBUG"); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				debug = b
			}
		}
	}
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
