package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LevelEnv is the environment variable read at startup to pick the log level.
const LevelEnv = "RXSIG_LOG_LEVEL"

// DefaultLogger is the base logger every subsystem derives its logger from.
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	logger.SetLevel(levelFromEnv(os.Getenv(LevelEnv)))

	return logger
}

func levelFromEnv(v string) logrus.Level {
	if v == "" {
		return logrus.InfoLevel
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(v))
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

// SetLogLevel changes the level of DefaultLogger.
func SetLogLevel(level logrus.Level) {
	DefaultLogger.SetLevel(level)
}
