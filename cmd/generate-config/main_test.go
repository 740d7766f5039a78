package main

import (
	"strings"
	"testing"

	"github.com/debemdeboas/chronicler/internal/config"
)

func TestRender(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	testCases := []struct {
		target   string
		expected string
	}{
		{"config.example.yaml", "bundle_compression: zstd"},
		{"-", "name: Chronicler"},
		{"config.example.toml", `bundle_compression = "zstd"`},
	}

	for _, tc := range testCases {
		t.Run(tc.target, func(t *testing.T) {
			out, err := render(cfg, tc.target)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if !strings.Contains(string(out), tc.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tc.expected, out)
			}
		})
	}
}
