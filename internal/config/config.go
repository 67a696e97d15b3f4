package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	PDF       PDFConfig
	Retention RetentionConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type BrowserConfig struct {
	Headless        bool
	LaunchTimeout   time.Duration
	PageLoadTimeout time.Duration
	UserAgent       string
}

type CaptureConfig struct {
	MaxSlides       int
	ViewportWidth   int
	ViewportHeight  int
	RenderDelay     time.Duration
	NavigationDelay time.Duration
	JPEGQuality     int
}

type PDFConfig struct {
	OutputDir  string
	FilePrefix string
}

type RetentionConfig struct {
	SweepInterval time.Duration
	FileMaxAge    time.Duration
	JobMaxAge     time.Duration
}

type RateLimitConfig struct {
	ConvertPerHour int
}

type WorkerConfig struct {
	Concurrency int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("browser.headless", true)
	viper.SetDefault("browser.launch_timeout_ms", 30000)
	viper.SetDefault("browser.page_load_timeout_ms", 60000)
	viper.SetDefault("browser.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	viper.SetDefault("capture.max_slides", 30)
	viper.SetDefault("capture.viewport_width", 1280)
	viper.SetDefault("capture.viewport_height", 720)
	viper.SetDefault("capture.render_delay_ms", 500)
	viper.SetDefault("capture.navigation_delay_ms", 300)
	viper.SetDefault("capture.jpeg_quality", 80)
	viper.SetDefault("pdf.output_dir", filepath.Join(os.TempDir(), "deckfetch"))
	viper.SetDefault("pdf.file_prefix", "deck-")
	viper.SetDefault("retention.sweep_interval_min", 30)
	viper.SetDefault("retention.file_max_age_hours", 2)
	viper.SetDefault("retention.job_max_age_min", 30)
	viper.SetDefault("ratelimit.convert_per_hour", 10)
	viper.SetDefault("worker.concurrency", 2)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
			Env:  viper.GetString("server.env"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Browser: BrowserConfig{
			Headless:        viper.GetBool("browser.headless"),
			LaunchTimeout:   time.Duration(viper.GetInt("browser.launch_timeout_ms")) * time.Millisecond,
			PageLoadTimeout: time.Duration(viper.GetInt("browser.page_load_timeout_ms")) * time.Millisecond,
			UserAgent:       viper.GetString("browser.user_agent"),
		},
		Capture: CaptureConfig{
			MaxSlides:       viper.GetInt("capture.max_slides"),
			ViewportWidth:   viper.GetInt("capture.viewport_width"),
			ViewportHeight:  viper.GetInt("capture.viewport_height"),
			RenderDelay:     time.Duration(viper.GetInt("capture.render_delay_ms")) * time.Millisecond,
			NavigationDelay: time.Duration(viper.GetInt("capture.navigation_delay_ms")) * time.Millisecond,
			JPEGQuality:     viper.GetInt("capture.jpeg_quality"),
		},
		PDF: PDFConfig{
			OutputDir:  viper.GetString("pdf.output_dir"),
			FilePrefix: viper.GetString("pdf.file_prefix"),
		},
		Retention: RetentionConfig{
			SweepInterval: time.Duration(viper.GetInt("retention.sweep_interval_min")) * time.Minute,
			FileMaxAge:    time.Duration(viper.GetInt("retention.file_max_age_hours")) * time.Hour,
			JobMaxAge:     time.Duration(viper.GetInt("retention.job_max_age_min")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			ConvertPerHour: viper.GetInt("ratelimit.convert_per_hour"),
		},
		Worker: WorkerConfig{
			Concurrency: viper.GetInt("worker.concurrency"),
		},
	}

	return cfg, nil
}
