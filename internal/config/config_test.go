package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "RULER_STORE", "FRAME_INTERVAL", "AUTO_SCROLL_MAX_SPEED", "AUTH_DISABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 || cfg.RulerStore != StoreMemory || cfg.FrameInterval != 16*time.Millisecond {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.AutoScrollMaxSpeed != 80 || cfg.AuthDisabled {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	for _, key := range []string{"RULER_STORE", "FRAME_INTERVAL", "AUTO_SCROLL_MAX_SPEED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	type tc struct {
		env     map[string]string
		wantErr bool
	}

	tests := map[string]tc{
		"redis store":    {env: map[string]string{"RULER_STORE": "redis", "FRAME_INTERVAL": "8ms"}},
		"unknown store":  {env: map[string]string{"RULER_STORE": "mongo"}, wantErr: true},
		"bad interval":   {env: map[string]string{"FRAME_INTERVAL": "soon"}, wantErr: true},
		"zero interval":  {env: map[string]string{"FRAME_INTERVAL": "0s"}, wantErr: true},
		"negative speed": {env: map[string]string{"AUTO_SCROLL_MAX_SPEED": "-1"}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Origins(t *testing.T) {
	cfg := Config{AllowedOrigins: " a.test, ,b.test:3000,"}
	got := cfg.Origins()
	if len(got) != 2 || got[0] != "a.test" || got[1] != "b.test:3000" {
		t.Errorf("Origins() = %q", got)
	}
}
