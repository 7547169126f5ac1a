package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StorageBadger = "badger"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	Version string        `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Feed    FeedConfig    `yaml:"feed"`
	Refresh RefreshConfig `yaml:"refresh"`
	NATS    NATSConfig    `yaml:"nats"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	Type      string      `yaml:"type"`      // badger | redis | memory
	Directory string      `yaml:"directory"` // for badger
	Redis     RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

type FeedConfig struct {
	// Sources are mirror URLs for the winning-numbers dataset; the client
	// fails over between them.
	Sources     []string        `yaml:"sources"`
	JackpotURL  string          `yaml:"jackpot_url"`
	AppTokenEnv string          `yaml:"app_token_env"` // env var holding the dataset app token
	PageLimit   int             `yaml:"page_limit"`
	Client      ClientConfig    `yaml:"client"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

type ClientConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	BurstSize         int `yaml:"burst_size"`
}

type RefreshConfig struct {
	// PollInterval drives the ticker loop; Schedule, when set, switches to
	// cron (standard 5-field format, optional CRON_TZ= prefix).
	PollInterval time.Duration `yaml:"poll_interval"`
	Schedule     string        `yaml:"schedule"`
	// Overlap is how far before the cached latest draw the fetch window
	// starts, to absorb late feed corrections.
	Overlap time.Duration `yaml:"overlap"`
}

type NATSConfig struct {
	URL           string `yaml:"url"` // empty disables event emission
	SubjectPrefix string `yaml:"subject_prefix"`
}

// Load reads, env-expands, unmarshals, defaults, and validates a config
// file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnv(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${NAME} references with the environment value. Only
// the braced form is expanded; bare $ stays as-is because Socrata query
// parameters ($order, $limit) use it.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRef.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.Type == "" {
		c.Storage.Type = StorageBadger
	}
	if c.Storage.Directory == "" {
		c.Storage.Directory = "data/powerpick"
	}
	if len(c.Feed.Sources) == 0 {
		c.Feed.Sources = []string{"https://data.ny.gov/resource/d6yy-54nr.json"}
	}
	if c.Feed.JackpotURL == "" {
		c.Feed.JackpotURL = "https://www.powerball.com/api/v1/estimates/powerball?_format=json"
	}
	if c.Feed.PageLimit == 0 {
		c.Feed.PageLimit = 2000
	}
	if c.Feed.Client.RequestTimeout == 0 {
		c.Feed.Client.RequestTimeout = 30 * time.Second
	}
	if c.Feed.Client.MaxRetries == 0 {
		c.Feed.Client.MaxRetries = 3
	}
	if c.Feed.Client.RetryDelay == 0 {
		c.Feed.Client.RetryDelay = 1 * time.Second
	}
	if c.Feed.RateLimit.RequestsPerSecond == 0 {
		c.Feed.RateLimit.RequestsPerSecond = 5
	}
	if c.Feed.RateLimit.BurstSize == 0 {
		c.Feed.RateLimit.BurstSize = 10
	}
	if c.Refresh.PollInterval == 0 {
		c.Refresh.PollInterval = 6 * time.Hour
	}
	if c.Refresh.Overlap == 0 {
		c.Refresh.Overlap = 7 * 24 * time.Hour
	}
	if c.NATS.SubjectPrefix == "" {
		c.NATS.SubjectPrefix = "powerpick"
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Storage.Type {
	case StorageBadger, StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required for redis storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	for _, src := range c.Feed.Sources {
		if src == "" {
			return fmt.Errorf("feed.sources contains an empty URL")
		}
	}
	if c.Feed.RateLimit.RequestsPerSecond < 1 {
		return fmt.Errorf("feed.rate_limit.requests_per_second must be >= 1")
	}
	if c.Feed.RateLimit.BurstSize < 1 {
		return fmt.Errorf("feed.rate_limit.burst_size must be >= 1")
	}
	if c.Refresh.PollInterval < time.Minute {
		return fmt.Errorf("refresh.poll_interval %s is below the 1m floor", c.Refresh.PollInterval)
	}
	return nil
}
