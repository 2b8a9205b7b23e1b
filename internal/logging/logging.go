package logging

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Log is the global Logrus logger instance for the application.
var Log *logrus.Logger

func init() {
	// Initialize the logger instance and its basic formatter/output
	// This runs once when the package is imported.
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: false,
	})
	// Default level before configuration
	Log.SetLevel(logrus.InfoLevel)
}

// Configure sets up the Logrus logger's level based on Viper's configuration
// and the command's flags. It takes the *cobra.Command to inspect flag changes.
func Configure(cmd *cobra.Command) {
	// Viper reads the 'log-level' key, respecting the precedence order:
	// flag > env var > config file > default
	levelStr := viper.GetString("log-level")

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		Log.Warnf("Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		Log.SetLevel(logrus.InfoLevel)
		return
	}
	Log.SetLevel(level)

	source := getLogLevelSource(cmd)
	Log.Debugf("Logrus level set to: %s (source: %s)", level.String(), source)
}

// getLogLevelSource determines whether the log level came from a flag,
// environment variable, config file, or default.
func getLogLevelSource(cmd *cobra.Command) string {
	if flag := cmd.PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		return "flag"
	}
	if os.Getenv("ARGO_HELM_LOG_LEVEL") != "" {
		return "environment variable"
	}
	if viper.ConfigFileUsed() != "" && viper.IsSet("log-level") {
		return "config file"
	}
	return "default"
}
