package main

import "testing"

func TestIsWeakSecret(t *testing.T) {
	cases := map[string]bool{
		"short":                        true,
		"user-change-me-in-production": true,
		"aaaaaaaaaaaaaaaa-change-me-bbbbbbbbbbbbbbbbbb": true,
		"Zq8f3LkP0vW2nR7xT5yB1mC4dH6jG9sE":              false,
	}
	for secret, want := range cases {
		if got := isWeakSecret(secret); got != want {
			t.Fatalf("isWeakSecret(%q) want %v got %v", secret, want, got)
		}
	}
}
