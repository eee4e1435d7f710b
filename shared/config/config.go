package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel          string        `yaml:"log_level"`
	LogJSON           bool          `yaml:"log_json"`
	HTTPAddr          string        `yaml:"http_addr" validate:"required"`
	PublicBaseURL     string        `yaml:"public_base_url" validate:"required,url"` // prefix for media URLs handed to clients
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	SecureCookies     bool          `yaml:"secure_cookies"` // enables HSTS
	JwtTTL            time.Duration `yaml:"jwt_ttl" validate:"required"`
	MediaPath         string        `yaml:"media_path" validate:"required"`
	MaxUploadSize     int64         `yaml:"max_upload_size" validate:"required,gt=0"`
	RecentBoardsLimit int           `yaml:"recent_boards_limit" validate:"required,gt=0"`
	Redis             Redis         `yaml:"redis"`
}

// Redis is optional. With an empty Addr the change feed stays in-process.
type Redis struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	Pg                Pg     `yaml:"pg"`
	JwtKey            string `yaml:"jwt_key" validate:"required"`
	AdminEmail        string `yaml:"admin_email" validate:"required,email"`
	AdminPasswordHash string `yaml:"admin_password_hash" validate:"required"` // bcrypt
	RedisPassword     string `yaml:"redis_password"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(output); err != nil {
		panic("invalid config " + configPath + ": " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder and panics on
// any missing file or required field.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

// Client is the configuration of the board client.
type Client struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StatePath      string        `yaml:"state_path"` // local durable storage, defaults to the user config dir
	LogLevel       string        `yaml:"log_level"`
	Reconnect      Reconnect     `yaml:"reconnect"`
}

type Reconnect struct {
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	MaxRetries   int           `yaml:"max_retries"`
}

func MustLoadClient(configPath string) *Client {
	var c Client
	mustLoadPath(configPath, &c)
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	return &c
}
