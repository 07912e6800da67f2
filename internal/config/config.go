package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Clinic struct {
		Name         string `yaml:"name" env-default:"DentEase"`
		OperatorName string `yaml:"operator_name" env:"OPERATOR_NAME" env-default:"Dr. Fano"`
		StartOnline  bool   `yaml:"start_online" env-default:"false"`
	} `yaml:"clinic"`
	Auth struct {
		JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:""`
		TokenTTL   time.Duration `yaml:"token_ttl" env-default:"12h"`
		AdminEmail string        `yaml:"admin_email" env:"ADMIN_EMAIL" env-default:""`
		AdminName  string        `yaml:"admin_name" env-default:"Clinic Admin"`
	} `yaml:"auth"`
	Files struct {
		Secret string        `yaml:"secret" env:"FILES_SECRET" env-default:""`
		URLTTL time.Duration `yaml:"url_ttl" env-default:"1h"`
	} `yaml:"files"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"dentease"`
	} `yaml:"mongo"`
	Feed struct {
		RetryDelay time.Duration `yaml:"retry_delay" env-default:"5s"`
	} `yaml:"feed"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	OpenAI struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"OPENAI_API_KEY" env-default:""`
		Model   string `yaml:"model" env-default:"gpt-4o-mini"`
	} `yaml:"openai"`
	Calendar struct {
		Enabled         bool   `yaml:"enabled" env-default:"false"`
		CredentialsFile string `yaml:"credentials_file" env-default:""`
		CalendarID      string `yaml:"calendar_id" env-default:"primary"`
		TimeZone        string `yaml:"time_zone" env-default:"Asia/Manila"`
	} `yaml:"calendar"`
	Sentry struct {
		Dsn string `yaml:"dsn" env:"SENTRY_DSN" env-default:""`
	} `yaml:"sentry"`
	Listen struct {
		BindIP         string        `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port           string        `yaml:"port" env:"PORT" env-default:"9100"`
		AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
		Timeout        time.Duration `yaml:"timeout" env-default:"30s"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

// MustLoad reads the yaml file at path; variables from a .env file next to the
// binary, if present, take part in env overrides.
func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		_ = godotenv.Load()
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
