package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the inspection service configuration
type Config struct {
	Server     ServerConfig
	Kubernetes KubernetesConfig
	Log        LogConfig
}

// ServerConfig holds the HTTP listeners. Port serves the resource API, AdminPort the namespace API.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	AdminPort    int    `yaml:"adminPort"`
	Host         string `yaml:"host"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
}

// KubernetesConfig holds Kubernetes client configuration
type KubernetesConfig struct {
	ConfigPath string `yaml:"configPath"`
	InCluster  bool   `yaml:"inCluster"`
	// Context overrides the kubeconfig current-context.
	Context string `yaml:"context"`
	// Namespace overrides the namespace taken from the kubeconfig context or service account.
	Namespace string `yaml:"namespace"`
	// FieldManager is recorded on every write the service makes.
	FieldManager     string `yaml:"fieldManager"`
	EnableKubeVirt   bool   `yaml:"enableKubeVirt"`
	EnableAggregator bool   `yaml:"enableAggregator"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"outputPath"`
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			AdminPort:    getEnvAsInt("ADMIN_PORT", 8081),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
		},
		Kubernetes: KubernetesConfig{
			ConfigPath:       getEnv("KUBECONFIG", ""),
			InCluster:        getEnvAsBool("IN_CLUSTER", false),
			Context:          getEnv("KUBE_CONTEXT", ""),
			Namespace:        getEnv("KUBE_NAMESPACE", ""),
			FieldManager:     getEnv("FIELD_MANAGER", "kube-client-ext"),
			EnableKubeVirt:   getEnvAsBool("ENABLE_KUBEVIRT", false),
			EnableAggregator: getEnvAsBool("ENABLE_AGGREGATOR", true),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT_PATH", "stdout"),
		},
	}
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as an integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as a boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validPort(c.Server.Port) {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if !validPort(c.Server.AdminPort) {
		return fmt.Errorf("invalid admin port: %d", c.Server.AdminPort)
	}
	if c.Server.Port == c.Server.AdminPort {
		return fmt.Errorf("server port and admin port must differ: %d", c.Server.Port)
	}

	if c.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}

	if c.Kubernetes.FieldManager == "" {
		return fmt.Errorf("field manager cannot be empty")
	}

	if c.Kubernetes.InCluster && c.Kubernetes.ConfigPath != "" {
		return fmt.Errorf("in-cluster mode and kubeconfig path %q are mutually exclusive", c.Kubernetes.ConfigPath)
	}

	return nil
}

func validPort(port int) bool {
	return port > 0 && port <= 65535
}
