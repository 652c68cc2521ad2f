package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-textpad/pkg/service"
	"github.com/mattsolo1/grove-textpad/pkg/storage"
)

var cfgFile string

// Settings is the decoded configuration.
type Settings struct {
	StateDir    string `mapstructure:"state_dir"`
	Backend     string `mapstructure:"backend"`
	LogLevel    string `mapstructure:"log_level"`
	BackupCount int    `mapstructure:"backup_count"`
}

// StorageOptions returns the backend selection described by s.
func (s Settings) StorageOptions() storage.Options {
	return storage.Options{
		Kind:        s.Backend,
		Dir:         s.StateDir,
		BackupCount: s.BackupCount,
	}
}

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "textpad")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TEXTPAD")
	viper.AutomaticEnv()

	home, _ := os.UserHomeDir()
	viper.SetDefault("state_dir", filepath.Join(home, ".local", "share", "textpad"))
	viper.SetDefault("backend", storage.KindSQLite)
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("backup_count", 5)

	// A missing config file is normal.
	_ = viper.ReadInConfig()
}

// Load decodes the current viper state.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// NewLogger builds the stderr logger at the configured level.
func NewLogger(level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// InitService opens the configured backend and loads the service over it.
func InitService(s Settings, logger logrus.FieldLogger) (*service.Service, error) {
	backend, err := storage.Open(s.StorageOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	svc, err := service.New(&service.Config{}, backend, logger)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	return svc, nil
}

// AddGlobalFlags registers the root flags and binds them to viper keys.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/textpad/config.yaml)")
	flags.String("state-dir", "", "directory holding the persisted state")
	flags.String("backend", "", "storage backend: sqlite, file or memory")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	bind := func(key, flag string) {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
	bind("state_dir", "state-dir")
	bind("backend", "backend")
	bind("log_level", "log-level")
}
