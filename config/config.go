package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
	mask              = "******"
)

type redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type session struct {
	TTL          time.Duration `mapstructure:"ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type admin struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	PasswordHash string        `mapstructure:"password_hash"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

type uploads struct {
	Dir       string `mapstructure:"dir"`
	Path      string `mapstructure:"path"`
	PublicURL string `mapstructure:"public_url"`
}

// URLPrefix is the prefix of stored image URLs: public_url when set,
// the local serving path otherwise.
func (u uploads) URLPrefix() string {
	if u.PublicURL != "" {
		return u.PublicURL
	}
	return u.Path
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type brokerSASL struct {
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type broker struct {
	SeedBrokers        []string   `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string   `mapstructure:"schema_registry_urls"`
	OrderEventsTopic   string     `mapstructure:"order_events_topic"`
	OrderTrackingGroup string     `mapstructure:"order_tracking_group"`
	TLS                brokerTLS  `mapstructure:"tls"`
	SASL               brokerSASL `mapstructure:"sasl"`
}

// Enabled reports whether the app should run with the broker.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Redis          redis      `mapstructure:"redis"`
	Session        session    `mapstructure:"session"`
	Admin          admin      `mapstructure:"admin"`
	Uploads        uploads    `mapstructure:"uploads"`
	Broker         broker     `mapstructure:"broker"`
}

var defaults = map[string]any{
	"log_level":                   "info",
	"http_server_addr":            ":8080",
	"sql_db":                      "",
	"redis.addr":                  "localhost:6379",
	"redis.password":              "",
	"redis.db":                    0,
	"session.ttl":                 30 * 24 * time.Hour,
	"session.secure_cookie":       false,
	"admin.username":              "",
	"admin.password":              "",
	"admin.password_hash":         "",
	"admin.token_ttl":             12 * time.Hour,
	"uploads.dir":                 "./uploads",
	"uploads.path":                "/uploads",
	"uploads.public_url":          "",
	"broker.seed_brokers":         []string{},
	"broker.schema_registry_urls": []string{},
	"broker.order_events_topic":   "storefront.order-events",
	"broker.order_tracking_group": "storefront-order-tracker",
	"broker.tls.ca_file":          "",
	"broker.tls.cert_file":        "",
	"broker.tls.key_file":         "",
	"broker.sasl.user":            "",
	"broker.sasl.pass":            "",
}

// Load reads the config file and applies STOREFRONT_* env overrides,
// e.g. STOREFRONT_BROKER_SEED_BROKERS.
func Load() Config {
	cfg, err := read(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func read(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	Redis:
	Addr=%q
	Password=%q
	DB=%d

	Session:
	TTL=%q
	SecureCookie=%t

	Admin:
	Username=%q
	Password=%q
	PasswordHash=%q
	TokenTTL=%q

	Uploads:
	Dir=%q
	Path=%q
	PublicURL=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	OrderEventsTopic=%q
	OrderTrackingGroup=%q
	TLS:
		CAFile=%q
		CertFile=%q
		KeyFile=%q
	SASL:
		User=%q
		Pass=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		redactDSN(c.SQLDB),
		c.Redis.Addr,
		secret(c.Redis.Password),
		c.Redis.DB,
		c.Session.TTL,
		c.Session.SecureCookie,
		c.Admin.Username,
		secret(c.Admin.Password),
		secret(c.Admin.PasswordHash),
		c.Admin.TokenTTL,
		c.Uploads.Dir,
		c.Uploads.Path,
		c.Uploads.PublicURL,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.OrderEventsTopic,
		c.Broker.OrderTrackingGroup,
		c.Broker.TLS.CAFile,
		c.Broker.TLS.CertFile,
		c.Broker.TLS.KeyFile,
		c.Broker.SASL.User,
		secret(c.Broker.SASL.Pass),
	)
}

func secret(s string) string {
	if s == "" {
		return ""
	}
	return mask
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
