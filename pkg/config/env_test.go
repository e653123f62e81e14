package config

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	if got := GetEnvString("TEST_STRING", "default"); got != "value" {
		t.Errorf("GetEnvString() = %q, want %q", got, "value")
	}
	if got := GetEnvString("TEST_STRING_UNSET", "default"); got != "default" {
		t.Errorf("GetEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	if got := GetEnvInt("TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt() = %d, want 42", got)
	}

	t.Setenv("TEST_INT_BAD", "not-a-number")
	if got := GetEnvInt("TEST_INT_BAD", 7); got != 7 {
		t.Errorf("GetEnvInt() = %d, want default 7", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if !GetEnvBool("TEST_BOOL", false) {
		t.Error("GetEnvBool() = false, want true")
	}

	t.Setenv("TEST_BOOL_BAD", "maybe")
	if GetEnvBool("TEST_BOOL_BAD", false) {
		t.Error("GetEnvBool() = true, want default false")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	if got := GetEnvDuration("TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("GetEnvDuration() = %v, want 90s", got)
	}

	t.Setenv("TEST_DURATION_BAD", "soon")
	if got := GetEnvDuration("TEST_DURATION_BAD", time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration() = %v, want default 1m", got)
	}
}
