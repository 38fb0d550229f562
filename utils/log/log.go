package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	// JSON output in prod for log collection, plain text otherwise for better
	// readability during development.
	if IsProdEnv() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if level, err := logrus.ParseLevel(os.Getenv("TSLAMOOD_LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}

	Log = logger.WithFields(
		logrus.Fields{"service": "tslamood", "is_development": !IsProdEnv()},
	)
}

// utils imports this package, so the env check lives here.
func IsProdEnv() bool {
	return os.Getenv("TSLAMOOD_ENV") == "prod"
}
