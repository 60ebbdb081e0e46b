package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service. Instances
// feeds the round-robin load balancer; BaseURL is the first instance and
// is what health checks probe.
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	platformInstances := splitInstances(getEnv("PLATFORM_SERVICE_URLS", "http://localhost:8080"))

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"platform": {
				Name:        "labstock-server",
				BaseURL:     platformInstances[0],
				Instances:   platformInstances,
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func splitInstances(urls string) []string {
	parts := strings.Split(urls, ",")
	instances := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	if len(instances) == 0 {
		instances = []string{"http://localhost:8080"}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
