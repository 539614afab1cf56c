package config

import "time"

// Default configuration values.
const (
	defaultServiceName      = "adsp-quiz-back"
	defaultServiceVersion   = "1.0.0"
	defaultServicePort      = 8080
	defaultReadTimeoutSec   = 15
	defaultWriteTimeoutSec  = 60
	defaultIdleTimeoutSec   = 120
	defaultShutdownSec      = 10
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "adsp_quiz"
	defaultDBSSLMode        = "disable"
	defaultDBMaxConns       = 25
	defaultDBMaxIdleConns   = 5
	defaultLogLevel         = "info"
	defaultAIModel          = "claude-3-5-haiku-latest"
	defaultAIMaxTokens      = 1024
	defaultAITimeoutSec     = 60
	defaultAIRequestsPerMin = 30
	defaultYoutubeTimeout   = 15
	defaultYoutubeLanguage  = "ko"
)

// Config holds all configuration for the quiz backend.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	AI       AIConfig       `yaml:"ai"`
	Youtube  YoutubeConfig  `yaml:"youtube"`
}

// ServiceConfig holds HTTP server configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"SERVICE_PORT" yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"    yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" yaml:"level"`
	Development bool   `yaml:"development"`
}

// AIConfig holds quiz-generation LLM configuration.
type AIConfig struct {
	APIKey         string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model          string        `env:"AI_MODEL"          yaml:"model"`
	MaxTokens      int           `yaml:"max_tokens"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestsPerMin int           `yaml:"requests_per_minute"`
}

// YoutubeConfig holds transcript fetching configuration.
type YoutubeConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	Language string        `yaml:"language"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setLoggingDefaults(&cfg.Logging)
	setAIDefaults(&cfg.AI)
	setYoutubeDefaults(&cfg.Youtube)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = defaultIdleTimeoutSec * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownSec * time.Second
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
}

func setAIDefaults(a *AIConfig) {
	if a.Model == "" {
		a.Model = defaultAIModel
	}
	if a.MaxTokens == 0 {
		a.MaxTokens = defaultAIMaxTokens
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAITimeoutSec * time.Second
	}
	if a.RequestsPerMin == 0 {
		a.RequestsPerMin = defaultAIRequestsPerMin
	}
}

func setYoutubeDefaults(y *YoutubeConfig) {
	if y.Timeout == 0 {
		y.Timeout = defaultYoutubeTimeout * time.Second
	}
	if y.Language == "" {
		y.Language = defaultYoutubeLanguage
	}
}
