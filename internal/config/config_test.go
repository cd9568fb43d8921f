package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENAI_API_KEY", "TICK_MS", "CANVAS_WIDTH", "REALTIME_MODEL"} {
		t.Setenv(k, "")
	}

	c := Load()
	if c.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", c.Port, DefaultPort)
	}
	if c.Tick != DefaultTick {
		t.Errorf("Tick = %v, want %v", c.Tick, DefaultTick)
	}
	if c.CanvasWidth != DefaultCanvasWidth {
		t.Errorf("CanvasWidth = %v", c.CanvasWidth)
	}
	if c.OpenAIKey != "" {
		t.Errorf("OpenAIKey = %q, want empty", c.OpenAIKey)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TICK_MS", "33")
	t.Setenv("CANVAS_HEIGHT", "720")
	t.Setenv("RELAY_PATH", "/relay")

	c := Load()
	if c.Port != "9090" {
		t.Errorf("Port = %q", c.Port)
	}
	if c.OpenAIKey != "sk-test" {
		t.Errorf("OpenAIKey = %q", c.OpenAIKey)
	}
	if c.Tick != 33*time.Millisecond {
		t.Errorf("Tick = %v", c.Tick)
	}
	if c.CanvasHeight != 720 {
		t.Errorf("CanvasHeight = %v", c.CanvasHeight)
	}
	if c.RelayPath != "/relay" {
		t.Errorf("RelayPath = %q", c.RelayPath)
	}
}

func TestLoad_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("TICK_MS", "-5")
	t.Setenv("CANVAS_WIDTH", "wide")

	c := Load()
	if c.Tick != DefaultTick {
		t.Errorf("Tick = %v, want default", c.Tick)
	}
	if c.CanvasWidth != DefaultCanvasWidth {
		t.Errorf("CanvasWidth = %v, want default", c.CanvasWidth)
	}
}

func TestUpstreamURL(t *testing.T) {
	c := Default()
	want := DefaultRealtimeURL + "?model=" + DefaultRealtimeModel
	if got := c.UpstreamURL(); got != want {
		t.Errorf("UpstreamURL() = %q, want %q", got, want)
	}

	c.RealtimeModel = ""
	if got := c.UpstreamURL(); got != DefaultRealtimeURL {
		t.Errorf("UpstreamURL() without model = %q", got)
	}
}
