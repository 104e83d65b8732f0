package config

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

const envPrefix = "GEOSHAPES"

var contractAddressExp = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type AppConfig struct {
	API     *APIConfig     `mapstructure:"api"`
	Gin     *GinConfig     `mapstructure:"gin"`
	Log     *LogConfig     `mapstructure:"log"`
	Chain   *ChainConfig   `mapstructure:"chain"`
	Session *SessionConfig `mapstructure:"session"`
}

type APIConfig struct {
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	Environment        string   `mapstructure:"environment"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ChainConfig struct {
	RPCURL          string `mapstructure:"rpc_url"`
	ChainID         int64  `mapstructure:"chain_id"`
	ContractAddress string `mapstructure:"contract_address"`
	// PrivateKey is the hex key of the minting wallet. Without it the service
	// is read-only and connecting fails.
	PrivateKey     string `mapstructure:"private_key"`
	MintPrice      string `mapstructure:"mint_price"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

type SessionConfig struct {
	TokensPollInterval   time.Duration `mapstructure:"tokens_poll_interval"`
	SupplyPollInterval   time.Duration `mapstructure:"supply_poll_interval"`
	ConnectRetryInterval time.Duration `mapstructure:"connect_retry_interval"`
	// AutoConnect connects the wallet once at start-up.
	AutoConnect bool `mapstructure:"auto_connect"`
	// Embedded marks a host that keeps retrying the wallet connection while
	// disconnected.
	Embedded bool `mapstructure:"embedded"`
}

// Loader wraps a viper instance so the same file can be re-read on change.
type Loader struct {
	v *viper.Viper
}

func NewLoader(path string) *Loader {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Loader{v: v}
}

func Load(path string) (*AppConfig, error) {
	return NewLoader(path).Load()
}

func (l *Loader) Load() (*AppConfig, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("l.v.ReadInConfig -> %w", err)
		}
	}

	return l.decode()
}

// Watch calls fn with the re-decoded config every time the file is written.
func (l *Loader) Watch(fn func(*AppConfig, error)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (*AppConfig, error) {
	conf := &AppConfig{}
	if err := l.v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("l.v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:5173"})
	v.SetDefault("api.jwt_signing_key", "")

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("log.level", "info")

	v.SetDefault("chain.rpc_url", "")
	v.SetDefault("chain.chain_id", 0)
	v.SetDefault("chain.contract_address", "0x606FF3848F9585F601B963De94d9969f32D7a97e")
	v.SetDefault("chain.private_key", "")
	v.SetDefault("chain.mint_price", "0.0001")
	v.SetDefault("chain.currency_symbol", "MON")

	v.SetDefault("session.tokens_poll_interval", 10*time.Second)
	v.SetDefault("session.supply_poll_interval", 15*time.Second)
	v.SetDefault("session.connect_retry_interval", 2*time.Second)
	v.SetDefault("session.auto_connect", true)
	v.SetDefault("session.embedded", false)
}

func (c *AppConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Log, validation.Required),
		validation.Field(&c.Chain, validation.Required),
		validation.Field(&c.Session, validation.Required),
	)
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "production")),
		validation.Field(&c.JWTSigningKey, validation.Required, validation.Length(16, 0)),
	)
}

func (c *GinConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Mode, validation.Required, validation.In("debug", "release", "test")),
	)
}

func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

func (c *ChainConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.RPCURL, validation.Required),
		validation.Field(&c.ChainID, validation.Required, validation.Min(int64(1))),
		validation.Field(&c.ContractAddress, validation.Required, validation.Match(contractAddressExp)),
		validation.Field(&c.MintPrice, validation.Required),
		validation.Field(&c.CurrencySymbol, validation.Required),
	)
}

func (c *SessionConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.TokensPollInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.SupplyPollInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.ConnectRetryInterval, validation.Required, validation.Min(100*time.Millisecond)),
	)
}
