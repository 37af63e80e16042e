// File: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	LocationsFile string `yaml:"locations_file"`
	DatabaseURL   string `yaml:"database_url"` // when set, locations live in Postgres instead of the flat file
}

type RedisConfig struct {
	URL      string `yaml:"url"` // when set, the timings cache lives in Redis
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TimetableConfig struct {
	BaseURL  string `yaml:"base_url"`
	Method   int    `yaml:"method"`   // aladhan calculation method
	Timezone string `yaml:"timezone"` // cron + cache-expiry timezone
}

type ReminderConfig struct {
	AnnouncementChat string `yaml:"announcement_chat"` // destination for Sahur/Berbuka announcements
	Prayers          string `yaml:"prayers"`           // comma-separated allow-list
	DefaultCity      string `yaml:"default_city"`
	DefaultCountry   string `yaml:"default_country"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Admin     AdminConfig     `yaml:"admin"`
	Storage   StorageConfig   `yaml:"storage"`
	Redis     RedisConfig     `yaml:"redis"`
	Timetable TimetableConfig `yaml:"timetable"`
	Reminder  ReminderConfig  `yaml:"reminder"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 4
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port <= 0 {
		cfg.Admin.Port = 8081
	}
	if cfg.Storage.LocationsFile == "" {
		cfg.Storage.LocationsFile = "locations.json"
	}
	if cfg.Timetable.BaseURL == "" {
		cfg.Timetable.BaseURL = "https://api.aladhan.com"
	}
	if cfg.Timetable.Method <= 0 {
		cfg.Timetable.Method = 2
	}
	if cfg.Timetable.Timezone == "" {
		cfg.Timetable.Timezone = "Asia/Jakarta"
	}
	if cfg.Reminder.Prayers == "" {
		cfg.Reminder.Prayers = "Imsak,Fajr,Dhuhr,Asr,Maghrib,Isha"
	}
	if cfg.Reminder.DefaultCity == "" {
		cfg.Reminder.DefaultCity = "Jakarta"
	}
	if cfg.Reminder.DefaultCountry == "" {
		cfg.Reminder.DefaultCountry = "Indonesia"
	}

	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot.token is required in %s", path)
	}
	return &cfg, nil
}
