package bot

import (
	"testing"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

func TestAllowCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		isAdmin bool
		status  string
		want    bool
	}{
		{"admin passes everything", "progress", true, models.SubscriptionExpired, true},
		{"start is public", "start", false, models.SubscriptionNone, true},
		{"help is public", "help", false, models.SubscriptionExpired, true},
		{"subscribe is public", "subscribe", false, models.SubscriptionExpired, true},
		{"cancel is public", "cancel", false, models.SubscriptionExpired, true},
		{"session text needs live subscription", "", false, models.SubscriptionTrial, true},
		{"session text from expired user blocked", "", false, models.SubscriptionExpired, false},
		{"trial user gets gated command", "progress", false, models.SubscriptionTrial, true},
		{"active user gets gated command", "myplan", false, models.SubscriptionActive, true},
		{"expired user blocked", "progress", false, models.SubscriptionExpired, false},
		{"none user blocked", "duel", false, models.SubscriptionNone, false},
		{"unknown status blocked", "tip", false, "weird", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowCommand(tt.command, tt.isAdmin, tt.status)
			if got != tt.want {
				t.Errorf("AllowCommand(%q, %v, %q) = %v, want %v", tt.command, tt.isAdmin, tt.status, got, tt.want)
			}
		})
	}
}
