// Package config provides centralized runtime configuration for TalkDoc.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDatabase    = "TALKDOC_DATABASE"
	EnvGroqKey     = "GROQ_API_KEY"
	EnvElevenKey   = "ELEVENLABS_API_KEY"
	EnvElevenVoice = "ELEVENLABS_VOICE_ID"
	EnvDeviceURL   = "TALKDOC_DEVICE_URL"
	EnvServerAddr  = "TALKDOC_ADDR"
)

// Config holds all runtime configuration values.
type Config struct {
	// HTTP client configuration (webhook forwarding)
	HTTP HTTPConfig

	// Scheduler configuration
	Scheduler SchedulerConfig

	// Assistant is the chat-completion relay configuration.
	Assistant AssistantConfig

	// Speech is the text-to-speech relay configuration.
	Speech SpeechConfig

	// Device is the dispenser-controller configuration.
	Device DeviceConfig

	// Server is the HTTP relay configuration.
	Server ServerConfig
}

// HTTPConfig holds outbound HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the default HTTP request timeout.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for webhook
	// deliveries. The relays (chat, tts, dispense) never retry.
	MaxRetries int

	// RetryDelays are the delays between webhook retry attempts.
	RetryDelays []time.Duration
}

// SchedulerConfig holds reminder-scheduler configuration.
type SchedulerConfig struct {
	// SleepThreshold is the time gap that indicates the system was
	// sleeping. A minute check after a longer gap is skipped.
	SleepThreshold time.Duration

	// FiredRetention is how long fired-occurrence keys are kept before
	// the five-minute sweep prunes them. Matching only ever consults
	// the current date, so pruning cannot cause a duplicate fire.
	FiredRetention time.Duration
}

// AssistantConfig holds chat-completion service configuration.
type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SpeechConfig holds speech-synthesis service configuration.
type SpeechConfig struct {
	APIKey  string
	VoiceID string
	BaseURL string
}

// DeviceConfig holds dispenser-controller configuration.
type DeviceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ServerConfig holds HTTP relay server configuration.
type ServerConfig struct {
	Addr string
}

// Default service endpoints.
const (
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultChatModel     = "llama-3.1-8b-instant"
	DefaultElevenBaseURL = "https://api.elevenlabs.io"
	DefaultServerAddr    = ":8080"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelays: []time.Duration{
				0,
				5 * time.Second,
				30 * time.Second,
			},
		},
		Scheduler: SchedulerConfig{
			SleepThreshold: time.Hour,
			FiredRetention: 14 * 24 * time.Hour,
		},
		Assistant: AssistantConfig{
			BaseURL: DefaultGroqBaseURL,
			Model:   DefaultChatModel,
		},
		Speech: SpeechConfig{
			BaseURL: DefaultElevenBaseURL,
		},
		Device: DeviceConfig{
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// Load returns the default configuration with environment overrides
// applied. A .env file in the working directory is honored when
// present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Assistant.APIKey = os.Getenv(EnvGroqKey)
	cfg.Speech.APIKey = os.Getenv(EnvElevenKey)
	cfg.Speech.VoiceID = os.Getenv(EnvElevenVoice)

	if v := os.Getenv(EnvDeviceURL); v != "" {
		cfg.Device.BaseURL = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}

	return cfg
}
