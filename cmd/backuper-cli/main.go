package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirmackk/backuper-cli/clientcli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	serverURL   string
	timeoutSecs int
	looseTLS    bool
	debug       bool
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "backuper-cli",
	Version: version,
	Short:   "Client for the backuper archive server",
	Long: `backuper-cli talks to a backuper archive server: an erasure-coded
remote backup store. Files are submitted under an archive name, retrieved
by that name, and their shard health can be queried and repaired.

Connection settings come from, in order of precedence:
  profile file (~/.backuper/config.yaml) < environment (BACKUPER_*) < flags`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		readConfig(cmd.Root().PersistentFlags())
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "profile file (default: ~/.backuper/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "profile name (env: BACKUPER_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server-url", "s", "", "archive server URL (default: localhost:44987, env: BACKUPER_SERVER_URL)")
	rootCmd.PersistentFlags().IntVarP(&timeoutSecs, "timeout", "t", 0, "seconds before the operation times out (default: 5)")
	rootCmd.PersistentFlags().BoolVarP(&looseTLS, "loose-tls", "k", false, "disable strict TLS certificate verification")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(retrieveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var rep *reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// buildConfig resolves the client config: profile file first, then
// environment and flags through viper (flags win).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	configPath := getConfigPath()
	name := viper.GetString("profile")

	if configPath != "" {
		profileCfg, err := loadProfileConfig(configPath, name)
		if err != nil {
			return nil, err
		}
		if profileCfg != nil {
			configs = append(configs, profileCfg)
		}
	}

	configs = append(configs, &clientcli.Config{
		ServerURL: viper.GetString("server-url"),
		Timeout:   time.Duration(viper.GetInt("timeout")) * time.Second,
		LooseTLS:  viper.GetBool("loose-tls"),
	})

	return clientcli.MergeConfig(configs...), nil
}

// loadProfileConfig reads the named profile from the profile file. A
// missing file is only an error when the user pointed at one explicitly;
// an unknown profile name is always an error.
func loadProfileConfig(path, name string) (*clientcli.Config, error) {
	cf, err := clientcli.LoadConfigFile(path)
	if err != nil {
		if cfgFile != "" {
			return nil, err
		}
		return nil, nil
	}

	p, err := cf.GetProfile(name)
	if err != nil {
		if name != "" || !errors.Is(err, clientcli.ErrNoProfiles) {
			return nil, err
		}
		return nil, nil
	}

	return clientcli.ConfigFromProfile(p), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}

// reportedError marks an error already rendered to stderr, so main does
// not print it a second time.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// reportError renders err to stderr before it propagates out of RunE.
func reportError(err error) error {
	_ = getFormatter().FormatError(os.Stderr, err)
	return &reportedError{err: err}
}
