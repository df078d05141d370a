package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", " , ")
	got := listEnvOrDefault("LIST_TEST", []string{"x"})
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected default for blank list, got %v", got)
	}

	t.Setenv("LIST_TEST", "a,b")
	got = listEnvOrDefault("LIST_TEST", []string{"x"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected parsed list, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "abc")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	t.Setenv("INT_TEST", "42")
	if got := intEnvOrDefault("INT_TEST", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}
