package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/reithediver/lol-smurfguard-sub000/config"
)

// EnvPrefix prefixes every environment override, e.g. SMURFGUARD_RIOT_API_KEY
const EnvPrefix = "SMURFGUARD"

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "smurfguard",
		Short:         "Rate-limited, cached access to the Riot Games API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("config", "config.yaml", "config file")
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (overrides config)")
	root.PersistentFlags().String("api-key", "", "Riot API key (overrides api_key_file, env "+EnvPrefix+"_RIOT_API_KEY)")

	root.AddCommand(newServeCmd(), newFetchMatchesCmd(), newLimitsCmd())
	return root
}

// newViper binds the root persistent flags and SMURFGUARD_* environment variables
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("riot_api_key", flags.Lookup("api-key"))
	return v
}

// resolveConfig loads the YAML config when present, falls back to defaults otherwise,
// then applies flag and environment overrides
func resolveConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")

	var cfg *config.Config
	_, err := os.Stat(path)
	switch {
	case err == nil:
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Default()
		cfg.APIKey, err = config.LoadAPIKey(cfg.Riot.APIKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load api key: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if key := strings.TrimSpace(v.GetString("riot_api_key")); key != "" {
		cfg.APIKey = key
	}
	if level := v.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// session is what every subcommand needs before doing work
type session struct {
	config *config.Config
	logger *zap.Logger
}

func loadRuntime(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(newViper(cmd))
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &session{config: cfg, logger: logger}, nil
}
