package config

import (
	"TeleCloud/internal/batch"
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultDatabaseDSN = "telegram_cloud.db"
	defaultBaseURL     = "localhost:5000"
)

type Config struct {
	// Storage
	DatabaseDSN string `env:"DATABASE_URI"`

	// Read API
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	ServerURL   string `env:"-"`

	// Bot
	BotToken       string `env:"BOT_TOKEN"`
	GalleryURL     string `env:"GALLERY_URL"`
	MaxFilesToShow int    `env:"MAX_FILES_TO_SHOW" envDefault:"20"`
	MaxFolderName  int    `env:"MAX_FOLDER_NAME" envDefault:"50"`

	// Сборка медиагрупп
	BatchStep          time.Duration `env:"BATCH_STEP" envDefault:"1s"`
	BatchGrace         time.Duration `env:"BATCH_GRACE" envDefault:"2s"`
	BatchWindowPerFile int           `env:"BATCH_WINDOW_PER_FILE" envDefault:"2"`
	BatchMaxWindow     int           `env:"BATCH_MAX_WINDOW" envDefault:"15"`
	BatchConfirmSteps  int           `env:"BATCH_CONFIRM_STEPS" envDefault:"3"`

	LogJSON bool `env:"LOG_JSON"`
	Version bool `env:"-"` // только флаг
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги перекрывают значения из env
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (путь к SQLite или postgres://...)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес Read API в виде host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "использовать https в ServerURL")
	flag.StringVar(&cfg.BotToken, "token", cfg.BotToken, "токен Telegram-бота")
	flag.StringVar(&cfg.GalleryURL, "gallery-url", cfg.GalleryURL, "адрес веб-галереи для /gallery")
	flag.IntVar(&cfg.MaxFilesToShow, "max-files", cfg.MaxFilesToShow, "сколько файлов показывать при просмотре папки")
	flag.IntVar(&cfg.MaxFolderName, "max-folder-name", cfg.MaxFolderName, "максимальная длина имени папки")
	flag.DurationVar(&cfg.BatchStep, "batch-step", cfg.BatchStep, "шаг опроса буфера медиагруппы")
	flag.DurationVar(&cfg.BatchGrace, "batch-grace", cfg.BatchGrace, "пауза перед первой проверкой медиагруппы")
	flag.IntVar(&cfg.BatchWindowPerFile, "batch-window-per-file", cfg.BatchWindowPerFile, "шагов окна на один файл")
	flag.IntVar(&cfg.BatchMaxWindow, "batch-max-window", cfg.BatchMaxWindow, "максимальное окно в шагах")
	flag.IntVar(&cfg.BatchConfirmSteps, "batch-confirm-steps", cfg.BatchConfirmSteps, "сколько спокойных шагов подряд завершают группу")
	flag.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "JSON-логи (production-конфигурация zap)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "показать версию и выйти")

	flag.Parse()

	// Defaults
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDatabaseDSN
	}
	// BaseURL только в виде "address:port" (без схемы и пути), иначе значение по умолчанию
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	def := batch.DefaultPolicy()
	if cfg.MaxFilesToShow <= 0 {
		cfg.MaxFilesToShow = 20
	}
	if cfg.MaxFolderName <= 0 {
		cfg.MaxFolderName = 50
	}
	if cfg.BatchStep <= 0 {
		cfg.BatchStep = def.Step
	}
	if cfg.BatchGrace < 0 {
		cfg.BatchGrace = def.InitialGrace
	}
	if cfg.BatchWindowPerFile <= 0 {
		cfg.BatchWindowPerFile = def.WindowPerFile
	}
	if cfg.BatchMaxWindow <= 0 {
		cfg.BatchMaxWindow = def.MaxWindow
	}
	if cfg.BatchConfirmSteps < 0 {
		cfg.BatchConfirmSteps = def.ConfirmSteps
	}

	return cfg
}

// BatchPolicy собирает тайминги сборки медиагрупп.
func (c *Config) BatchPolicy() batch.Policy {
	return batch.Policy{
		InitialGrace:  c.BatchGrace,
		Step:          c.BatchStep,
		WindowPerFile: c.BatchWindowPerFile,
		MaxWindow:     c.BatchMaxWindow,
		ConfirmSteps:  c.BatchConfirmSteps,
	}
}
