package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	portEnvVar = "PORT"
	appNameVar = "APP_NAME"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Go Session Server")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetAdminUsername returns the seed admin login name; empty disables the
// admin bootstrap.
func (EnvVars) GetAdminUsername() string {
	return GetEnv("ADMIN_USERNAME", "")
}

func (EnvVars) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "")
}

func (EnvVars) GetAdminName() string {
	return GetEnv("ADMIN_NAME", "Administrator")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvAsInt reads an environment variable as an integer, falling back to
// the default when unset or unparseable.
func GetEnvAsInt(envVar string, defaultValue int) int {
	valueStr := os.Getenv(envVar)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvAsBool reads an environment variable as a boolean.
func GetEnvAsBool(envVar string, defaultValue bool) bool {
	valueStr := os.Getenv(envVar)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
