// Package config reads the process-wide configuration from environment
// variables, optionally seeded from a .env file.
package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	MongoConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetAdminUsername() string
	GetAdminPassword() string
	GetAdminName() string
}

type mainConfig struct {
	EnvVars
	MongoVars
	SessionVars
}

// New loads a .env file when present and returns the env-backed config.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
