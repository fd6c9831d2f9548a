package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration
type Config struct {
	HTTP struct {
		Host string `yaml:"host" validate:"required"`
		Port int    `yaml:"port" validate:"min=1,max=65535"`
	} `yaml:"http"`

	Database struct {
		Type string `yaml:"type" validate:"oneof=sqlite postgres"`
		Path string `yaml:"path" validate:"required_if=Type sqlite"`
		URL  string `yaml:"url" validate:"required_if=Type postgres"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" validate:"oneof=json console"`
	} `yaml:"logging"`

	Student struct {
		ID   string `yaml:"id" validate:"required"`
		Name string `yaml:"name" validate:"required"`
	} `yaml:"student"`

	Course struct {
		ID        string `yaml:"id" validate:"required"`
		Name      string `yaml:"name" validate:"required"`
		Semesters int    `yaml:"semesters" validate:"min=1"`
	} `yaml:"course"`

	Targets struct {
		GPA        float64 `yaml:"gpa"`
		ModuleDays int     `yaml:"module_days" validate:"min=0"`
	} `yaml:"targets"`

	// SeedFile is an optional .xlsx or .csv list of modules and exams
	SeedFile string `yaml:"seed_file"`

	Scheduler struct {
		Enabled            bool          `yaml:"enabled"`
		AutosaveInterval   time.Duration `yaml:"autosave_interval" validate:"min=0"`
		ReminderInterval   time.Duration `yaml:"reminder_interval" validate:"min=0"`
		ReminderWindowDays int           `yaml:"reminder_window_days" validate:"min=0"`
	} `yaml:"scheduler"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id" validate:"required_with=Token"`
	} `yaml:"telegram"`
}

// Load reads .env, the optional YAML file at path and the environment,
// in increasing order of precedence, and validates the result
func Load(path string) (*Config, error) {
	// A missing .env file is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	setDefaults(cfg)

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults sets default values for the configuration
func setDefaults(cfg *Config) {
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = 5000

	cfg.Database.Type = "sqlite"
	cfg.Database.Path = "student_dashboard.db"

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"

	cfg.Student.ID = "IU123456789"
	cfg.Student.Name = "Lukas Schwarzfeld"

	cfg.Course.ID = "CS-2026"
	cfg.Course.Name = "Cyber Security"
	cfg.Course.Semesters = 6

	cfg.Targets.GPA = 2.5
	cfg.Targets.ModuleDays = 60

	cfg.Scheduler.Enabled = true
	cfg.Scheduler.AutosaveInterval = 10 * time.Minute
	cfg.Scheduler.ReminderInterval = time.Hour
	cfg.Scheduler.ReminderWindowDays = 7
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(cfg *Config) error {
	var err error

	cfg.HTTP.Host = GetEnv("HTTP_HOST", cfg.HTTP.Host)
	if cfg.HTTP.Port, err = GetEnvAsInt("HTTP_PORT", cfg.HTTP.Port); err != nil {
		return err
	}

	cfg.Database.Type = GetEnv("DB_TYPE", cfg.Database.Type)
	cfg.Database.Path = GetEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.URL = GetEnv("DATABASE_URL", cfg.Database.URL)

	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = GetEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.Student.ID = GetEnv("STUDENT_ID", cfg.Student.ID)
	cfg.Student.Name = GetEnv("STUDENT_NAME", cfg.Student.Name)

	cfg.Course.ID = GetEnv("COURSE_ID", cfg.Course.ID)
	cfg.Course.Name = GetEnv("COURSE_NAME", cfg.Course.Name)
	if cfg.Course.Semesters, err = GetEnvAsInt("COURSE_SEMESTERS", cfg.Course.Semesters); err != nil {
		return err
	}

	if cfg.Targets.GPA, err = GetEnvAsFloat("TARGET_GPA", cfg.Targets.GPA); err != nil {
		return err
	}
	if cfg.Targets.ModuleDays, err = GetEnvAsInt("TARGET_MODULE_DAYS", cfg.Targets.ModuleDays); err != nil {
		return err
	}

	cfg.SeedFile = GetEnv("SEED_FILE", cfg.SeedFile)

	if cfg.Scheduler.Enabled, err = GetEnvAsBool("ENABLE_SCHEDULER", cfg.Scheduler.Enabled); err != nil {
		return err
	}
	if cfg.Scheduler.AutosaveInterval, err = GetEnvAsDuration("AUTOSAVE_INTERVAL", cfg.Scheduler.AutosaveInterval); err != nil {
		return err
	}
	if cfg.Scheduler.ReminderInterval, err = GetEnvAsDuration("REMINDER_INTERVAL", cfg.Scheduler.ReminderInterval); err != nil {
		return err
	}
	if cfg.Scheduler.ReminderWindowDays, err = GetEnvAsInt("REMINDER_WINDOW_DAYS", cfg.Scheduler.ReminderWindowDays); err != nil {
		return err
	}

	cfg.Telegram.Token = GetEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.Token)
	if cfg.Telegram.ChatID, err = GetEnvAsInt64("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID); err != nil {
		return err
	}

	return nil
}

// Validate checks the struct tags of the configuration
func Validate(cfg *Config) error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

// DSN returns the data source for the configured database type
func (c *Config) DSN() string {
	if c.Database.Type == "postgres" {
		return c.Database.URL
	}
	return c.Database.Path
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}
