package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Difficulty string  `yaml:"difficulty" json:"difficulty"`
	Balance    Balance `yaml:"balance" json:"balance"`
	Server     Server  `yaml:"server" json:"server"`
}

// Server configures the HTTP process and where saves go.
type Server struct {
	Addr string `yaml:"addr" json:"addr"`

	// file, sqlite, postgres, redis or memory
	StoreDriver   string `yaml:"store" json:"store"`
	DataDir       string `yaml:"data_dir" json:"data_dir"`
	SQLitePath    string `yaml:"sqlite_path" json:"sqlite_path"`
	PostgresDSN   string `yaml:"postgres_dsn" json:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string `yaml:"redis_password" json:"redis_password"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db"`
	CacheSize     int    `yaml:"cache_size" json:"cache_size"`
	SaveSlot      string `yaml:"save_slot" json:"save_slot"`

	Autosave     bool          `yaml:"autosave" json:"autosave"`
	Realtime     bool          `yaml:"realtime" json:"realtime"`
	TickInterval time.Duration `yaml:"tick_interval" json:"tick_interval"`
}

func (s *Server) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.StoreDriver == "" {
		s.StoreDriver = "file"
	}
	if s.DataDir == "" {
		s.DataDir = "data"
	}
	if s.SQLitePath == "" {
		s.SQLitePath = "data/cardempire.db"
	}
	if s.RedisAddr == "" {
		s.RedisAddr = "localhost:6379"
	}
	if s.CacheSize == 0 {
		s.CacheSize = 16
	}
	if s.SaveSlot == "" {
		s.SaveSlot = "default"
	}
	if s.TickInterval == 0 {
		s.TickInterval = 2 * time.Second
	}
}

// ApplyDefaults fills a zero balance from the difficulty preset and
// defaults every unset server field.
func (c *Config) ApplyDefaults() {
	if c.Balance == (Balance{}) {
		if p, ok := Preset(c.Difficulty); ok {
			c.Balance = p
		} else {
			c.Balance = Default()
		}
	}
	c.Server.ApplyDefaults()
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
