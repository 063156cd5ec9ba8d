package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the deployment-shape settings read from a YAML file. Secrets
// (API key, passwords, DSNs) come from the environment instead.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Store struct {
		// Backend selects the room store: memory, redis or postgres.
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr         string `yaml:"addr"`
			DB           int    `yaml:"db"`
			RoomTTLHours int    `yaml:"room_ttl_hours"`
		} `yaml:"redis"`
	} `yaml:"store"`
	Events struct {
		Enabled       bool   `yaml:"enabled"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"events"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.Port = "8080"
	config.Server.AllowedOrigins = []string{"*"}
	config.Store.Backend = "memory"
	config.Store.Redis.Addr = "localhost:6379"
	config.Store.Redis.RoomTTLHours = 24
	config.Events.SubjectPrefix = "rooms.standings_draft"
	return &config
}

// loadConfig reads the YAML config, falling back to defaults when the file is
// absent. Env vars override the file for containerized deployments.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Store.Backend = getEnv("STORE_BACKEND", config.Store.Backend)
	config.Store.Redis.Addr = getEnv("REDIS_ADDR", config.Store.Redis.Addr)
	config.Store.Redis.DB = getEnvAsInt("REDIS_DB", config.Store.Redis.DB)
	return config, nil
}

func (c *Config) redisRoomTTL() time.Duration {
	return time.Duration(c.Store.Redis.RoomTTLHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
