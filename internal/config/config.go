package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	LiveEndpoint    = "https://gw.praxisgate.com/cashier/cashier"
	SandboxEndpoint = "https://pci-gw-test.praxispay.com/cashier/cashier"
)

type ServerCfg struct {
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	PublicDir string `mapstructure:"publicDir"`
	// TrustedProxies are the peers whose forwarding headers are believed.
	TrustedProxies []string `mapstructure:"trustedProxies"`
}

type PraxisCfg struct {
	Env                string        `mapstructure:"env"`
	Endpoint           string        `mapstructure:"endpoint"`
	MerchantID         string        `mapstructure:"merchantId"`
	AppKey             string        `mapstructure:"appKey"`
	Secret             string        `mapstructure:"secret"`
	FrontendBase       string        `mapstructure:"frontendBase"`
	Version            string        `mapstructure:"version"`
	Timeout            time.Duration `mapstructure:"timeout"`
	WebhookIPWhitelist []string      `mapstructure:"webhookIpWhitelist"`
}

type OrderCfg struct {
	DefaultCurrency string `mapstructure:"defaultCurrency"`
	DefaultCID      string `mapstructure:"defaultCid"`
	DefaultLocale   string `mapstructure:"defaultLocale"`
}

type HealthCfg struct {
	Strategy  string  `mapstructure:"strategy"` // ewma | decay | sliding
	Threshold float64 `mapstructure:"threshold"`
}

type StoreCfg struct {
	Driver string `mapstructure:"driver"` // memory | redis
}

type RedisCfg struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"keyPrefix"`
}

type RabbitCfg struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type LogCfg struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

type Root struct {
	Server   ServerCfg `mapstructure:"server"`
	Praxis   PraxisCfg `mapstructure:"praxis"`
	Order    OrderCfg  `mapstructure:"order"`
	Health   HealthCfg `mapstructure:"health"`
	Store    StoreCfg  `mapstructure:"store"`
	Redis    RedisCfg  `mapstructure:"redis"`
	RabbitMQ RabbitCfg `mapstructure:"rabbitmq"`
	Log      LogCfg    `mapstructure:"log"`
}

// envBindings maps config keys to the environment variables the deployment sets.
var envBindings = map[string]string{
	"server.port":               "PORT",
	"server.mode":               "GIN_MODE",
	"server.trustedProxies":     "TRUSTED_PROXIES",
	"praxis.env":                "PRAXIS_ENV",
	"praxis.endpoint":           "PRAXIS_ENDPOINT",
	"praxis.merchantId":         "PRAXIS_MERCHANT_ID",
	"praxis.appKey":             "PRAXIS_APP_KEY",
	"praxis.secret":             "PRAXIS_SECRET",
	"praxis.frontendBase":       "FRONTEND_BASE",
	"praxis.webhookIpWhitelist": "PRAXIS_WEBHOOK_IP_WHITELIST",
	"health.strategy":           "HEALTH_STRATEGY",
	"store.driver":              "STORE_DRIVER",
	"redis.addr":                "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"rabbitmq.url":              "RABBITMQ_URL",
	"log.dir":                   "LOG_DIR",
	"log.level":                 "LOG_LEVEL",
}

// Load reads .env, the optional config/config.<env>.yaml profile and the
// environment, in increasing order of precedence.
func Load(env string) (*Root, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile("config/config." + env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		if !isMissingFile(err) {
			return nil, fmt.Errorf("read config file failed: %w", err)
		}
	}
	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s failed: %w", name, err)
		}
	}

	var c Root
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func (c *Root) applyDefaults() {
	// sane defaults
	if strings.TrimSpace(c.Server.Port) == "" {
		c.Server.Port = "3000"
	}
	if c.Server.TrustedProxies == nil {
		c.Server.TrustedProxies = []string{"127.0.0.1", "::1"}
	}
	if c.Server.PublicDir == "" {
		c.Server.PublicDir = "public"
	}
	if c.Praxis.Env == "" {
		c.Praxis.Env = "sandbox"
	}
	if c.Praxis.Endpoint == "" {
		c.Praxis.Endpoint = SandboxEndpoint
		if c.IsLive() {
			c.Praxis.Endpoint = LiveEndpoint
		}
	}
	if c.Praxis.FrontendBase == "" {
		c.Praxis.FrontendBase = "http://localhost:3000"
	}
	c.Praxis.FrontendBase = strings.TrimRight(c.Praxis.FrontendBase, "/")
	if c.Praxis.Version == "" {
		c.Praxis.Version = "1.3"
	}
	if c.Praxis.Timeout <= 0 {
		c.Praxis.Timeout = 15 * time.Second
	}
	if c.Order.DefaultCurrency == "" {
		c.Order.DefaultCurrency = "USD"
	}
	if c.Order.DefaultCID == "" {
		c.Order.DefaultCID = "user_demo"
	}
	if c.Order.DefaultLocale == "" {
		c.Order.DefaultLocale = "ar-QA"
	}
	if c.Health.Strategy == "" {
		c.Health.Strategy = "ewma"
	}
	if c.Health.Threshold <= 0 {
		c.Health.Threshold = 60
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "praxis"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "order_events"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// IsLive reports whether the live gateway is selected.
func (c *Root) IsLive() bool {
	return c.Praxis.Env == "live"
}

func (c *Root) NotificationURL() string {
	return c.Praxis.FrontendBase + "/api/praxis/webhook"
}

func (c *Root) ReturnURL() string {
	return c.Praxis.FrontendBase + "/result.html"
}
