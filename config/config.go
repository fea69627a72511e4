package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MonitorAddress string `mapstructure:"monitor_address"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type GameConfig struct {
	TurnSeconds     int `mapstructure:"turn_seconds"`
	WordChoices     int `mapstructure:"word_choices"`
	MinRounds       int `mapstructure:"min_rounds"`
	MaxRounds       int `mapstructure:"max_rounds"`
	MaxParticipants int `mapstructure:"max_participants"`
}

// TurnDuration returns the configured turn length, defaulting to 70 seconds.
func (g GameConfig) TurnDuration() time.Duration {
	if g.TurnSeconds <= 0 {
		return 70 * time.Second
	}
	return time.Duration(g.TurnSeconds) * time.Second
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
