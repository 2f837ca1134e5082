package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis     `yaml:"redis"`
	Game       Game      `yaml:"game"`
	WebSocket  WebSocket `yaml:"websocket"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Game struct {
	// EnforceTurns rejects attacks from the player that does not own the turn.
	EnforceTurns   bool `yaml:"enforce-turns" env:"GAME_ENFORCE_TURNS" env-default:"false"`
	HistorySize    int  `yaml:"history-size" env:"GAME_HISTORY_SIZE" env-default:"100"`
	RecorderBuffer int  `yaml:"recorder-buffer" env:"GAME_RECORDER_BUFFER" env-default:"64"`
}

type WebSocket struct {
	ReadTimeout    time.Duration `yaml:"read-timeout" env:"WS_READ_TIMEOUT" env-default:"60s"`
	PingInterval   time.Duration `yaml:"ping-interval" env:"WS_PING_INTERVAL" env-default:"50s"`
	SendBuffer     int           `yaml:"send-buffer" env:"WS_SEND_BUFFER" env-default:"32"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"WS_ALLOWED_ORIGINS" env-separator:","`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
