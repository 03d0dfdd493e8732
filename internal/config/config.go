package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the analytics server.
type Config struct {
	Addr      string `mapstructure:"addr"`
	DBPath    string `mapstructure:"db_path"`
	JWTSecret string `mapstructure:"jwt_secret"`
	LogLevel  string `mapstructure:"log_level"`
}

func Default() *Config {
	return &Config{
		Addr:     ":8080",
		DBPath:   "surveyguy.db",
		LogLevel: "info",
	}
}

// Load reads the optional YAML config file and applies SURVEYGUY_* env
// overrides (SURVEYGUY_ADDR, SURVEYGUY_DB_PATH, SURVEYGUY_JWT_SECRET,
// SURVEYGUY_LOG_LEVEL). Env wins over file, file wins over defaults. An
// empty path skips file loading.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("jwt_secret", cfg.JWTSecret)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix("SURVEYGUY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
