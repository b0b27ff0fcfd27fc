package bot

import (
	"regexp"
	"testing"
)

func TestGeneratePaymentCode(t *testing.T) {
	codeRe := regexp.MustCompile(`^\d{3}-\d{3}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GeneratePaymentCode()
		if !codeRe.MatchString(code) {
			t.Fatalf("GeneratePaymentCode() = %q, want NNN-NNN format", code)
		}
		seen[code] = true
	}

	// A million possible codes; fifty draws collapsing to one would mean the
	// generator is broken.
	if len(seen) == 1 {
		t.Error("GeneratePaymentCode() returned the same code 50 times")
	}
}
