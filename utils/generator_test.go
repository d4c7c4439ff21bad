package utils

import (
	"strings"
	"testing"
)

func TestGenerateTempPassword(t *testing.T) {
	password := GenerateTempPassword()
	if len(password) != tempPasswordLength {
		t.Fatalf("expected %d characters, got %d", tempPasswordLength, len(password))
	}
	for _, r := range password {
		if !strings.ContainsRune(passwordBytes, r) {
			t.Fatalf("unexpected character %q in generated password", r)
		}
	}
}
