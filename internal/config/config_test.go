package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "30s",
			def:      time.Second,
			expected: 30 * time.Second,
		},
		{
			name:     "invalid duration falls back to default",
			key:      "TEST_DURATION_BAD",
			value:    "not_a_duration",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
		{
			name:     "unset falls back to default",
			key:      "TEST_DURATION_UNSET",
			def:      3 * time.Second,
			expected: 3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustDuration(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "10.0.0.0/8", expected: []string{"10.0.0.0/8"}},
		{name: "spaces and quotes", input: ` "10.0.0.1" , '192.168.1.0/24' `, expected: []string{"10.0.0.1", "192.168.1.0/24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("KIX_ADMIN_TOKEN", "secret")
	t.Setenv("KIX_STORE_BACKEND", "postgres")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked on unknown backend")
		}
	}()
	Load()
}

func TestLoadRequiresRedisAddr(t *testing.T) {
	t.Setenv("KIX_ADMIN_TOKEN", "secret")
	t.Setenv("KIX_STORE_BACKEND", "redis")
	if err := os.Unsetenv("KIX_REDIS_ADDR"); err != nil {
		t.Fatalf("failed to unset env var: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without KIX_REDIS_ADDR")
		}
	}()
	Load()
}
