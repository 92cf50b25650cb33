package moderation

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow_ValidTokens(t *testing.T) {
	tests := []struct {
		token string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"6h", 6 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1s", time.Second},
		{"0s", 0},
		{"007d", 7 * 24 * time.Hour}, // zero-padded but otherwise valid
		{"30S", 30 * time.Second},
		{"7D", 7 * 24 * time.Hour},
		{"90m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseWindow(tt.token)
			if err != nil {
				t.Fatalf("ParseWindow(%q) failed: %v", tt.token, err)
			}
			if got != tt.want {
				t.Errorf("ParseWindow(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseWindow_InvalidTokens(t *testing.T) {
	tokens := []string{
		"",
		"10",
		"m10",
		"-5s",
		"10 m",
		" 10m",
		"10m ",
		"10w",
		"10mm",
		"1.5h",
		"+5s",
		"5m6h",
		"s",
		"d7",
	}

	for _, token := range tokens {
		t.Run("invalid_"+token, func(t *testing.T) {
			_, err := ParseWindow(token)
			if !errors.Is(err, ErrBadWindow) {
				t.Errorf("ParseWindow(%q) error = %v, want ErrBadWindow", token, err)
			}
		})
	}
}
