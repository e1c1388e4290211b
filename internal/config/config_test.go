package config

import (
	"reflect"
	"testing"
)

// TestParseCSVEnv проверяет разбор списка email из ENV.
func TestParseCSVEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", " Admin@example.com, ,USER@Example.com ")

	got := parseCSVEnv("ADMIN_EMAILS")
	want := []string{"admin@example.com", "user@example.com"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestParseCSVEnvMissing проверяет поведение при отсутствии переменной.
func TestParseCSVEnvMissing(t *testing.T) {
	got := parseCSVEnv("MISSING_ENV")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

// TestParseBoolEnv проверяет разбор булевой переменной.
func TestParseBoolEnv(t *testing.T) {
	t.Setenv("CPI_ALLOW_ESTIMATION", "true")

	got, err := parseBoolEnv("CPI_ALLOW_ESTIMATION", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got {
		t.Fatal("expected true")
	}

	if _, err := parseBoolEnv("CPI_ALLOW_ESTIMATION", false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	t.Setenv("CPI_ALLOW_ESTIMATION", "maybe")
	if _, err := parseBoolEnv("CPI_ALLOW_ESTIMATION", false); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

// TestParseFloatEnv проверяет разбор числовой переменной и значение по умолчанию.
func TestParseFloatEnv(t *testing.T) {
	got, err := parseFloatEnv("MISSING_RATE", 3.0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 3.0 {
		t.Fatalf("expected fallback 3.0, got %f", got)
	}

	t.Setenv("MISSING_RATE", "2.5")
	got, err = parseFloatEnv("MISSING_RATE", 3.0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != 2.5 {
		t.Fatalf("expected 2.5, got %f", got)
	}
}
