package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("log.level", "info")
}

// readConfig binds persistent flags and BACKUPER_* environment variables
// into viper. Flags take precedence over environment values.
func readConfig(fs *pflag.FlagSet) {
	if err := viper.BindPFlags(fs); err != nil {
		slog.Warn("failed to bind flags", "err", err)
	}

	viper.SetEnvPrefix("BACKUPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}
