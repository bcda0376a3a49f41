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
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Meta          Meta          `mapstructure:",squash"`
	Report        Report        `mapstructure:",squash"`
	ReportRefresh ReportRefresh `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Cors          Cors          `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL     string        `mapstructure:"meta_base_url"`
	URL         string        `mapstructure:"-"`
	Version     string        `mapstructure:"meta_version"`
	AccessToken string        `mapstructure:"meta_access_token"`
	PageSize    int           `mapstructure:"meta_page_size"`
	PageDelay   time.Duration `mapstructure:"meta_page_delay"`
	HTTPTimeout time.Duration `mapstructure:"meta_http_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Report struct {
	DefaultCurrency          string        `mapstructure:"report_default_currency"`
	DefaultAttributionWindow string        `mapstructure:"report_default_attribution_window"`
	Timeout                  time.Duration `mapstructure:"report_timeout"`
	SnapshotsEnabled         bool          `mapstructure:"report_snapshots_enabled"`
	SnapshotRetentionDays    int           `mapstructure:"report_snapshot_retention_days"`
}

type ReportRefresh struct {
	CronSchedule        string `mapstructure:"report_refresh_cron"`
	LookbackDays        int    `mapstructure:"report_refresh_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"report_refresh_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"report_refresh_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"report_refresh_enabled"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v15.0")
	viper.SetDefault("META_ACCESS_TOKEN", "")
	viper.SetDefault("META_PAGE_SIZE", 100)
	viper.SetDefault("META_PAGE_DELAY", "250ms") // sleep before every page request
	viper.SetDefault("META_HTTP_TIMEOUT", "60s")

	viper.SetDefault("REPORT_DEFAULT_CURRENCY", "CURRENCY_USD")
	viper.SetDefault("REPORT_DEFAULT_ATTRIBUTION_WINDOW", "default")
	viper.SetDefault("REPORT_TIMEOUT", "5m")
	viper.SetDefault("REPORT_SNAPSHOTS_ENABLED", false)
	viper.SetDefault("REPORT_SNAPSHOT_RETENTION_DAYS", 30)

	viper.SetDefault("REPORT_REFRESH_CRON", "0 3 * * *")        // every day at 3am
	viper.SetDefault("REPORT_REFRESH_LOOKBACK_DAYS", 7)         // days re-fetched per run
	viper.SetDefault("REPORT_REFRESH_REQUEST_DELAY_SECONDS", 2) // pause between schedules
	viper.SetDefault("REPORT_REFRESH_MAX_CONCURRENT_JOBS", 3)   // concurrent schedules
	viper.SetDefault("REPORT_REFRESH_ENABLED", false)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: using variables loaded by godotenv: ", err)
	}

	return Load(viper.GetViper())
}

// Load decodes the settings held by v and fills the derived fields.
func Load(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(config, viper.DecodeHook(
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

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: could not get working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("config: .env loaded from ", location)
			return
		}
	}

	logrus.Debug("config: no .env file found")
}
