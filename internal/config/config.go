package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every runtime setting for the responder.
type Config struct {
	Server       ServerConfig
	Conversation ConversationConfig
	Dashboard    DashboardConfig
	Transport    TransportConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	conv, err := loadConversationConfig()
	if err != nil {
		return nil, err
	}

	transport, err := loadTransportConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:       server,
		Conversation: conv,
		Dashboard:    loadDashboardConfig(),
		Transport:    transport,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, ":") {
		// Accept ":3000" or "127.0.0.1:3000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ConversationConfig carries the state machine's behavioral switches.
type ConversationConfig struct {
	SessionTimeout      time.Duration
	WelcomeDelay        time.Duration
	StepDelay           time.Duration
	AfterCapture        string
	PropagateSendErrors bool
}

func loadConversationConfig() (ConversationConfig, error) {
	timeoutMinutes, err := parseIntEnv("SESSION_TIMEOUT_MINUTES", 30)
	if err != nil {
		return ConversationConfig{}, err
	}
	if timeoutMinutes < 1 {
		return ConversationConfig{}, fmt.Errorf("SESSION_TIMEOUT_MINUTES must be at least 1, got %d", timeoutMinutes)
	}

	welcomeDelay, err := parseIntEnv("WELCOME_DELAY_MS", 1000)
	if err != nil {
		return ConversationConfig{}, err
	}

	stepDelay, err := parseIntEnv("STEP_DELAY_MS", 500)
	if err != nil {
		return ConversationConfig{}, err
	}

	afterCapture := getEnvOrDefault("AFTER_CAPTURE", "menu")
	switch afterCapture {
	case "menu", "human":
	default:
		return ConversationConfig{}, fmt.Errorf("invalid AFTER_CAPTURE value %q: want menu or human", afterCapture)
	}

	propagate, err := parseBoolEnv("PROPAGATE_SEND_ERRORS", false)
	if err != nil {
		return ConversationConfig{}, err
	}

	return ConversationConfig{
		SessionTimeout:      time.Duration(timeoutMinutes) * time.Minute,
		WelcomeDelay:        time.Duration(welcomeDelay) * time.Millisecond,
		StepDelay:           time.Duration(stepDelay) * time.Millisecond,
		AfterCapture:        afterCapture,
		PropagateSendErrors: propagate,
	}, nil
}

// DashboardConfig gates the operator control surface.
type DashboardConfig struct {
	Token string
}

func loadDashboardConfig() DashboardConfig {
	return DashboardConfig{Token: strings.TrimSpace(os.Getenv("DASHBOARD_TOKEN"))}
}

// TransportConfig describes the chat-network pairing session.
type TransportConfig struct {
	SessionName string
	SessionDir  string
}

func loadTransportConfig() (TransportConfig, error) {
	name := getEnvOrDefault("SESSION_NAME", "concierge-session")
	if strings.ContainsAny(name, "/\\") {
		return TransportConfig{}, fmt.Errorf("invalid SESSION_NAME value %q", name)
	}
	return TransportConfig{
		SessionName: name,
		SessionDir:  getEnvOrDefault("SESSION_DIR", ".auth"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
