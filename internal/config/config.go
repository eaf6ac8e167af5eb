package config

import (
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogiStat/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		PG         `yaml:"postgres"`
		HTTP       `yaml:"http"`
		GRPC       `yaml:"grpc"`
		Prometheus `yaml:"prometheus"`
		Storage    `yaml:"storage"`
		Kafka      `yaml:"kafka"`
		Upload     `yaml:"upload"`
		Watcher    `yaml:"watcher"`
	}

	App struct {
		Name    string `yaml:"name" env-required:"true"`
		Version string `yaml:"version" env-required:"true"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	PG struct {
		MaxPoolSize int    `env-required:"true" env:"MAX_POOL_SIZE" yaml:"max_pool_size"`
		URL         string `env-required:"true" env:"PG_URL"`
	}

	HTTP struct {
		Port        string   `env-required:"true" yaml:"port" env:"HTTP_PORT"`
		CORSOrigins []string `yaml:"cors_origins" env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000"`
	}

	Prometheus struct {
		Port string `env-required:"true" yaml:"port" env:"PROMETHEUS_PORT"`
	}

	GRPC struct {
		Port string `env-required:"true" yaml:"port" env:"GRPC_PORT"`
	}

	Storage struct {
		Driver          string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"s3"`
		Bucket          string        `yaml:"bucket" env:"AWS_BUCKET_NAME" env-default:"my-log-parser"`
		Region          string        `yaml:"region" env:"AWS_REGION"`
		Endpoint        string        `yaml:"endpoint" env:"AWS_ENDPOINT"`
		AccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
		SecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
		LocalRoot       string        `yaml:"local_root" env:"STORAGE_LOCAL_ROOT" env-default:"data/artifacts"`
		SigningKey      string        `env:"STORAGE_SIGNING_KEY"`
		PublicURL       string        `yaml:"public_url" env:"STORAGE_PUBLIC_URL" env-default:"http://localhost:3001"`
		PresignTTL      time.Duration `yaml:"presign_ttl" env:"STORAGE_PRESIGN_TTL" env-default:"60s"`
		KeyPrefix       string        `yaml:"key_prefix" env:"STORAGE_KEY_PREFIX" env-default:"results/"`
	}

	Kafka struct {
		Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"log-parsed"`
	}

	Upload struct {
		MaxSize           int64    `yaml:"max_size" env:"UPLOAD_MAX_SIZE" env-default:"10485760"`
		StagingDir        string   `yaml:"staging_dir" env:"UPLOAD_STAGING_DIR" env-default:"uploads"`
		ResultsDir        string   `yaml:"results_dir" env:"UPLOAD_RESULTS_DIR" env-default:"results"`
		AllowedExtensions []string `yaml:"allowed_extensions" env:"UPLOAD_ALLOWED_EXTENSIONS" env-default:".log,.txt"`
	}

	Watcher struct {
		Enabled bool          `yaml:"enabled" env:"WATCHER_ENABLED" env-default:"false"`
		Dir     string        `yaml:"dir" env:"WATCHER_DIR" env-default:"inbox"`
		Settle  time.Duration `yaml:"settle" env:"WATCHER_SETTLE" env-default:"500ms"`
	}
)

const (
	DefaultEnvPath    = "infra/.env.dev"
	DefaultConfigPath = "infra/config.yaml"

	StorageDriverS3    = "s3"
	StorageDriverLocal = "local"
)

func New() (*Config, error) {
	envPath := lookupOr("ENV_PATH", DefaultEnvPath)
	if err := godotenv.Load(envPath); err != nil {
		log.WithField("path", envPath).Debugf("Env file is not loaded: %v", err)
	}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = DefaultConfigPath
	}

	return Load(pathToConfig)
}

// Load reads the yaml file at path and then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if err := cleanenv.UpdateEnv(cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

func lookupOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
