package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Catalog  Catalog  `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	FactSync FactSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	AutoMigrate  bool   `mapstructure:"database_auto_migrate"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Redis configura o cache opcional de estimativas
type Redis struct {
	Enabled  bool          `mapstructure:"redis_enabled"`
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	TTL      time.Duration `mapstructure:"redis_ttl"`
}

// Catalog aponta para um YAML que substitui o catálogo embutido
type Catalog struct {
	Path string `mapstructure:"catalog_path"`
}

type Meta struct {
	BaseURL           string        `mapstructure:"meta_base_url"`
	URL               string        `mapstructure:"meta_url"`
	Version           string        `mapstructure:"meta_version"`
	AccessToken       string        `mapstructure:"meta_access_token"`
	RequestsPerSecond float64       `mapstructure:"meta_requests_per_second"`
	Timeout           time.Duration `mapstructure:"meta_timeout"`
}

type FactSync struct {
	CronSchedule      string `mapstructure:"fact_sync_cron"`
	LookbackDays      int    `mapstructure:"fact_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"fact_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"fact_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/media_planner?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TTL", "15m")

	viper.SetDefault("CATALOG_PATH", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 2)
	viper.SetDefault("META_TIMEOUT", "30s")

	// Defaults para sincronização de fatos
	viper.SetDefault("FACT_SYNC_CRON", "0 3 * * *")      // Todos os dias às 3h da manhã
	viper.SetDefault("FACT_SYNC_LOOKBACK_DAYS", 7)       // 7 dias para buscar dados
	viper.SetDefault("FACT_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 campanhas em paralelo
	viper.SetDefault("FACT_SYNC_ENABLED", false)         // Habilitar sincronização com o Meta

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
