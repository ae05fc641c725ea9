package playground

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogLevel changes the playground log level.
func SetLogLevel(level logrus.Level) {
	log.Level = level
}

// GetLogLevel gets the playground log level.
func GetLogLevel() logrus.Level {
	return log.Level
}
