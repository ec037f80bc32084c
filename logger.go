package slump

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = discardLogger()

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogger sets the logger used for progress messages and structural warnings.
// Output is discarded until this is called.
func SetLogger(l logrus.FieldLogger) {
	logger = l
}
