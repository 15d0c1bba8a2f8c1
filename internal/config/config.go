// Package config предоставляет структуры и функции для загрузки конфига клиента.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек клиента.
type Config struct {
	Env        string `yaml:"env" env:"VISIONFLOW_ENV" env-default:"local"`
	APIBaseURL string `yaml:"api_base_url" env:"VISIONFLOW_API_URL" env-default:"http://localhost:8000/api"`
	StateDir   string `yaml:"state_dir" env:"VISIONFLOW_STATE_DIR"`
	HTTPClient `yaml:"http_client"`
}

// HTTPClient структура для настройки исходящих запросов.
type HTTPClient struct {
	Timeout time.Duration `yaml:"timeout" env:"VISIONFLOW_HTTP_TIMEOUT" env-default:"30s"`
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
//
// Путь берётся из CONFIG_PATH; если переменная не задана, конфиг собирается
// из переменных окружения и значений по умолчанию — CLI должен работать
// без обязательного конфиг-файла.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

// Load загружает конфиг из CONFIG_PATH либо из окружения.
func Load() (*Config, error) {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("cannot read environment: %w", err)
		}
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".visionflow")
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"APIBaseURL: %s\n"+
			"StateDir: %s\n"+
			"HTTPClient:\n"+
			"  Timeout: %s\n",
		c.Env,
		c.APIBaseURL,
		c.StateDir,
		c.Timeout,
	)
}
