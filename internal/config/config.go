package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env       string          `yaml:"env" env-default:"development"`
	Server    ServerConfig    `yaml:"http_server"`
	Pg        PgConfig        `yaml:"postgres"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Timeout     time.Duration `yaml:"timeout"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

type PgConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Db       string `yaml:"db"`
}

// SchedulerConfig - when the daily renewal/audit run fires. All "today"
// comparisons are anchored to Timezone so renewals don't slip a day at
// UTC boundaries.
type SchedulerConfig struct {
	// RunAt - local wall-clock time of the daily run, "HH:MM"
	RunAt string `yaml:"run_at"`
	// Timezone - IANA zone name the run and all date comparisons use
	Timezone string `yaml:"timezone"`
}

const (
	defaultRunAt    = "02:00"
	defaultTimezone = "America/Chicago"
)

func resolvePath(cwd, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	if up, ok := findUp(cwd, p, 8); ok {
		return up
	}
	return filepath.Join(cwd, p)
}

func findUp(start, rel string, max int) (string, bool) {
	dir := start
	for i := 0; i <= max; i++ {
		p := filepath.Join(dir, rel)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func LoadConfig() *Config {
	var cfg Config
	cwd, _ := os.Getwd()

	// 1) .env
	envPath := os.Getenv("ENV_FILE")
	if envPath == "" {
		if up, ok := findUp(cwd, ".env/local_pg.env", 8); ok {
			envPath = up
		}
	} else {
		envPath = resolvePath(cwd, envPath)
	}
	if envPath != "" {
		_ = godotenv.Overload(envPath)
	}

	// 2) YAML
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if up, ok := findUp(cwd, "configs/local.yaml", 8); ok {
			path = up
		} else {
			log.Fatal("CONFIG_PATH not set and local.yaml not found")
		}
	} else {
		path = resolvePath(cwd, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}

	if cfg.Scheduler.RunAt == "" {
		cfg.Scheduler.RunAt = defaultRunAt
	}
	if cfg.Scheduler.Timezone == "" {
		cfg.Scheduler.Timezone = defaultTimezone
	}
	return &cfg
}

// Location resolves the scheduler timezone, falling back to UTC when the
// configured name is unknown.
func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
