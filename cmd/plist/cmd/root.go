package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:          "plist",
	Short:        "Persistent list driver",
	Long:         "Exercise the persistent list: walk the construction scenario or stress teardown on long shared chains.",
	SilenceUsage: true,
}

var log = logrus.New()

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/plist/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PLIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("loaded config")
	}

	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		log.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "plist")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "plist")
	}
	return ".plist"
}
