package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// ProviderConfig - OAuth-настройки одного провайдера. Пустой ClientID
// означает, что провайдер не сконфигурирован и не будет загружен.
type ProviderConfig struct {
	ClientID        string `yaml:"client_id"`
	ClientSecret    string `yaml:"client_secret"`
	BaseURL         string `yaml:"base_url"`
	AuthorizeURL    string `yaml:"authorize_url"`
	AccessTokenURL  string `yaml:"access_token_url"`
	RefreshTokenURL string `yaml:"refresh_token_url"` // только superjob
	RedirectURI     string `yaml:"redirect_uri"`
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN     string `yaml:"url"`
		MaxRows int64  `yaml:"max_rows"` // бюджет строк хостинга, для /status
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		CacheTTL int    `yaml:"cache_ttl"` // сек, кэш /status
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // сек
	} `yaml:"jwt"`

	Jobs struct {
		CleanupPeriod int `yaml:"cleanup_period"` // сек, общий для всех cleanup-*
		RefreshPeriod int `yaml:"refresh_period"`
		PushPeriod    int `yaml:"push_period"`
		NotifyPeriod  int `yaml:"notify_period"`
		AccountGrace  int `yaml:"account_grace"` // сек после expires до удаления
	} `yaml:"jobs"`

	Notifications struct {
		Channels   []string       `yaml:"channels"`
		TTL        int            `yaml:"ttl"`         // сек, срок жизни уведомления
		CodeLength int            `yaml:"code_length"` // длина кода подтверждения
		CodeTTL    map[string]int `yaml:"code_ttl"`    // сек, по каналам
		RatePerSec float64        `yaml:"rate_per_sec"`
	} `yaml:"notifications"`

	Telegram struct {
		Token         string `yaml:"token"`
		APIURL        string `yaml:"api_url"`
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"telegram"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Providers map[string]ProviderConfig `yaml:"providers"`
}

var AppConfig *Config

// LoadConfig читает config.yaml; при заданном DATABASE_URL собирает
// конфигурацию из переменных окружения (режим теста/контейнера).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.applyDefaults()
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 600
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.Telegram.WebhookSecret = os.Getenv("TELEGRAM_WEBHOOK")

	cfg.applyDefaults()
	AppConfig = &cfg
}

// applyDefaults выставляет значения по умолчанию из оригинальной
// конфигурации сервиса: cleanup 24h, refresh 3h, push 30m, notify 60s.
func (c *Config) applyDefaults() {
	if c.Jobs.CleanupPeriod <= 0 {
		c.Jobs.CleanupPeriod = int((24 * time.Hour).Seconds())
	}
	if c.Jobs.RefreshPeriod <= 0 {
		c.Jobs.RefreshPeriod = int((3 * time.Hour).Seconds())
	}
	if c.Jobs.PushPeriod <= 0 {
		c.Jobs.PushPeriod = int((30 * time.Minute).Seconds())
	}
	if c.Jobs.NotifyPeriod <= 0 {
		c.Jobs.NotifyPeriod = 60
	}
	if c.Jobs.AccountGrace <= 0 {
		c.Jobs.AccountGrace = int((30 * 24 * time.Hour).Seconds())
	}
	if c.Notifications.TTL <= 0 {
		c.Notifications.TTL = 15 * 60
	}
	if c.Notifications.CodeLength <= 0 {
		c.Notifications.CodeLength = 8
	}
	if len(c.Notifications.Channels) == 0 {
		c.Notifications.Channels = []string{"telegram"}
	}
	if c.Notifications.CodeTTL == nil {
		c.Notifications.CodeTTL = map[string]int{}
	}
	for _, channel := range c.Notifications.Channels {
		if c.Notifications.CodeTTL[channel] <= 0 {
			c.Notifications.CodeTTL[channel] = 60
		}
	}
	if c.Notifications.RatePerSec <= 0 {
		c.Notifications.RatePerSec = 1
	}
	if c.Database.MaxRows <= 0 {
		c.Database.MaxRows = 10000
	}
	if c.Redis.CacheTTL <= 0 {
		c.Redis.CacheTTL = 300
	}
	if c.Telegram.APIURL == "" {
		c.Telegram.APIURL = "https://api.telegram.org"
	}
}

// CleanupInterval и другие геттеры периодов в time.Duration.
func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Jobs.CleanupPeriod) * time.Second
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Jobs.RefreshPeriod) * time.Second
}

func (c *Config) PushInterval() time.Duration {
	return time.Duration(c.Jobs.PushPeriod) * time.Second
}

func (c *Config) NotifyInterval() time.Duration {
	return time.Duration(c.Jobs.NotifyPeriod) * time.Second
}

func (c *Config) AccountGrace() time.Duration {
	return time.Duration(c.Jobs.AccountGrace) * time.Second
}

func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.Notifications.TTL) * time.Second
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
