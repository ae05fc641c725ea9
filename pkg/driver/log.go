package driver

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogLevel changes the driver log level.
func SetLogLevel(level logrus.Level) {
	log.Level = level
}

// GetLogLevel gets the driver log level.
func GetLogLevel() logrus.Level {
	return log.Level
}

// SetLogLevelString changes the driver log level from its name.
func SetLogLevelString(level string) error {
	ll, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	log.Level = ll
	return nil // OK
}
