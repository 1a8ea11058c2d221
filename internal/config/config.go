package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Projection   Projection   `mapstructure:",squash"`
	Cache        Cache        `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	CacheCleanup CacheCleanup `mapstructure:",squash"`
	RateLimit    RateLimit    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Projection struct {
	MaxYears int `mapstructure:"projection_max_years"`
}

// Driver aceita "memory" ou "redis"
type Cache struct {
	Enabled bool          `mapstructure:"cache_enabled"`
	Driver  string        `mapstructure:"cache_driver"`
	TTL     time.Duration `mapstructure:"cache_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type CacheCleanup struct {
	CronSchedule string `mapstructure:"cache_cleanup_cron"`
	Enabled      bool   `mapstructure:"cache_cleanup_enabled"`
}

type RateLimit struct {
	Enabled  bool          `mapstructure:"rate_limit_enabled"`
	Capacity int           `mapstructure:"rate_limit_capacity"`
	Refill   time.Duration `mapstructure:"rate_limit_refill"`
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 5000)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("PROJECTION_MAX_YEARS", 100) // Limite superior do período de investimento

	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("CACHE_DRIVER", CacheDriverMemory)
	viper.SetDefault("CACHE_TTL", "1h")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("CACHE_CLEANUP_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("CACHE_CLEANUP_ENABLED", true)

	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_CAPACITY", 60) // 60 requisições por janela
	viper.SetDefault("RATE_LIMIT_REFILL", "1m")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Projection.MaxYears <= 0 {
		config.Projection.MaxYears = 100
	}

	if config.Cache.Driver != CacheDriverRedis {
		config.Cache.Driver = CacheDriverMemory
	}

	return config, nil
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
