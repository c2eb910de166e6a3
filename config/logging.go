package config

import (
	"os"

	"github.com/ReconfigureIO/logruzio"
	"github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger for a tool run. Logs
// go to stderr so that tables written to stdout stay clean.
func SetupLogging(version string, conf *Config, verbose bool) error {
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(conf.Flow.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if conf.Flow.LogzioToken == "" {
		return nil
	}

	ctx := logrus.Fields{
		"Environment": conf.Flow.Env,
		"Version":     version,
		"Application": conf.ProgramName,
	}
	hook, err := logruzio.New(conf.Flow.LogzioToken, conf.ProgramName, ctx)
	if err != nil {
		return err
	}
	logrus.AddHook(hook)
	return nil
}
