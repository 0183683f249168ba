package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("KURVE_TEST_VALUE", "hello")
	if got := GetEnv("KURVE_TEST_VALUE", "fallback"); got != "hello" {
		t.Fatalf("GetEnv = %q, want %q", got, "hello")
	}
	if got := GetEnv("KURVE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"42", 42},
		{"-7", -7},
		{"", 9},
		{"nope", 9},
	}
	for _, tt := range tests {
		t.Setenv("KURVE_TEST_INT", tt.value)
		if got := GetEnvInt("KURVE_TEST_INT", 9); got != tt.want {
			t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
