// Package config provides environment-backed configuration for go-handcar.
// Flag parsing is done in cmd/handcar; Config is data only.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultPort          = "8080"
	DefaultStaticDir     = "./web"
	DefaultRealtimeURL   = "https://api.openai.com/v1/realtime"
	DefaultRealtimeModel = "gpt-4o-realtime-preview-2024-12-17"
	DefaultVoice         = "alloy"
	DefaultRelayPath     = "/rtc-connect"
	DefaultTick          = 16 * time.Millisecond
	DefaultCanvasWidth   = 600
	DefaultCanvasHeight  = 400
	DefaultLogLevel      = "info"
)

// DefaultInstructions is sent to the assistant when the session is configured.
const DefaultInstructions = "You control a toy car and a pair of hands on screen. " +
	"Use the tools to move or stop the car, change its speed, show fingers, " +
	"do simple additions on your fingers, and reset the hands."

// Config holds all runtime configuration.
type Config struct {
	Port      string
	StaticDir string
	RelayPath string

	// Realtime upstream.
	OpenAIKey     string
	RealtimeURL   string
	RealtimeModel string
	Voice         string
	Instructions  string

	// Simulation.
	Tick         time.Duration
	CanvasWidth  float64
	CanvasHeight float64

	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:          DefaultPort,
		StaticDir:     DefaultStaticDir,
		RelayPath:     DefaultRelayPath,
		RealtimeURL:   DefaultRealtimeURL,
		RealtimeModel: DefaultRealtimeModel,
		Voice:         DefaultVoice,
		Instructions:  DefaultInstructions,
		Tick:          DefaultTick,
		CanvasWidth:   DefaultCanvasWidth,
		CanvasHeight:  DefaultCanvasHeight,
		LogLevel:      DefaultLogLevel,
	}
}

// Load returns Default overridden by environment variables.
func Load() Config {
	c := Default()
	c.Port = getenv("PORT", c.Port)
	c.StaticDir = getenv("STATIC_DIR", c.StaticDir)
	c.RelayPath = getenv("RELAY_PATH", c.RelayPath)
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.RealtimeURL = getenv("REALTIME_URL", c.RealtimeURL)
	c.RealtimeModel = getenv("REALTIME_MODEL", c.RealtimeModel)
	c.Voice = getenv("REALTIME_VOICE", c.Voice)
	c.Instructions = getenv("REALTIME_INSTRUCTIONS", c.Instructions)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)

	if ms, err := strconv.Atoi(os.Getenv("TICK_MS")); err == nil && ms > 0 {
		c.Tick = time.Duration(ms) * time.Millisecond
	}
	if w, err := strconv.ParseFloat(os.Getenv("CANVAS_WIDTH"), 64); err == nil && w > 0 {
		c.CanvasWidth = w
	}
	if h, err := strconv.ParseFloat(os.Getenv("CANVAS_HEIGHT"), 64); err == nil && h > 0 {
		c.CanvasHeight = h
	}
	return c
}

// UpstreamURL returns the realtime SDP endpoint including the model query.
func (c Config) UpstreamURL() string {
	if c.RealtimeModel == "" {
		return c.RealtimeURL
	}
	return c.RealtimeURL + "?model=" + c.RealtimeModel
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
