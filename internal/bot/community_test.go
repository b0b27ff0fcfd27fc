package bot

import (
	"testing"
	"time"

	"github.com/Nikkeen22/fitness-bot/internal/models"
)

func TestCanRespondToDuel(t *testing.T) {
	tests := []struct {
		name   string
		duel   *models.Duel
		userID int64
		want   bool
	}{
		{"opponent accepts pending", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelPending}, 2, true},
		{"initiator cannot respond", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelPending}, 1, false},
		{"stranger cannot respond", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelPending}, 3, false},
		{"already active", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelActive}, 2, false},
		{"already rejected", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelRejected}, 2, false},
		{"already completed", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelCompleted}, 2, false},
		{"missing duel", nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canRespondToDuel(tt.duel, tt.userID); got != tt.want {
				t.Errorf("canRespondToDuel(%+v, %d) = %v, want %v", tt.duel, tt.userID, got, tt.want)
			}
		})
	}
}

func TestDuelProofVerdict(t *testing.T) {
	active := &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelActive}

	tests := []struct {
		name   string
		duel   *models.Duel
		userID int64
		want   proofVerdict
	}{
		{"initiator proof counts", active, 1, proofAccepted},
		{"opponent proof counts", active, 2, proofAccepted},
		{"stranger rejected", active, 3, proofNotParticipant},
		{"pending duel has no proofs", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelPending}, 1, proofDuelInactive},
		{"proof after completion rejected", &models.Duel{InitiatorID: 1, OpponentID: 2, Status: models.DuelCompleted, InitiatorCompleted: true, OpponentCompleted: true}, 1, proofDuelInactive},
		{"missing duel", nil, 1, proofDuelInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := duelProofVerdict(tt.duel, tt.userID); got != tt.want {
				t.Errorf("duelProofVerdict(%+v, %d) = %v, want %v", tt.duel, tt.userID, got, tt.want)
			}
		})
	}
}

func TestDuelFinished(t *testing.T) {
	tests := []struct {
		name string
		duel *models.Duel
		want bool
	}{
		{"both sides done", &models.Duel{InitiatorCompleted: true, OpponentCompleted: true}, true},
		{"only initiator done", &models.Duel{InitiatorCompleted: true}, false},
		{"only opponent done", &models.Duel{OpponentCompleted: true}, false},
		{"nobody done", &models.Duel{}, false},
		{"missing duel", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := duelFinished(tt.duel); got != tt.want {
				t.Errorf("duelFinished(%+v) = %v, want %v", tt.duel, got, tt.want)
			}
		})
	}
}

func TestValidDuelOpponent(t *testing.T) {
	tests := []struct {
		name        string
		initiatorID int64
		opponent    *models.User
		want        bool
	}{
		{"different user", 1, &models.User{ID: 2}, true},
		{"challenging yourself", 1, &models.User{ID: 1}, false},
		{"unknown user", 1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validDuelOpponent(tt.initiatorID, tt.opponent); got != tt.want {
				t.Errorf("validDuelOpponent(%d, %+v) = %v, want %v", tt.initiatorID, tt.opponent, got, tt.want)
			}
		})
	}
}

// Challenge progress has no per-day cap: repeated proofs on the same day
// each advance the counter. Documented behavior, not an accident.
func TestChallengeDayOutcomeNoDailyCap(t *testing.T) {
	duration := 3
	progress := 0
	for i := 1; i <= duration; i++ {
		done, finished := challengeDayOutcome(progress, duration)
		if done != i {
			t.Fatalf("after submission %d progress = %d, want %d", i, done, i)
		}
		if finished != (i == duration) {
			t.Fatalf("after submission %d finished = %v", i, finished)
		}
		progress = done
	}
}

func TestChallengeExpiresAt(t *testing.T) {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	c := models.Challenge{CreatedAt: created, DurationDays: 7}

	want := created.Add(7 * 24 * time.Hour)
	if got := challengeExpiresAt(c); !got.Equal(want) {
		t.Errorf("challengeExpiresAt = %v, want %v", got, want)
	}
}
