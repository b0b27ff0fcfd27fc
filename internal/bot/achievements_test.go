package bot

import (
	"context"
	"testing"
)

// fakeBadgeStore keeps the badge evaluator honest without a live database.
type fakeBadgeStore struct {
	total   int
	week    int
	granted map[string]bool
}

func newFakeBadgeStore(total, week int) *fakeBadgeStore {
	return &fakeBadgeStore{total: total, week: week, granted: make(map[string]bool)}
}

func (f *fakeBadgeStore) CountTotalWorkouts(ctx context.Context, userID int64) (int, error) {
	return f.total, nil
}

func (f *fakeBadgeStore) CountWorkoutsLastNDays(ctx context.Context, userID int64, days int) (int, error) {
	return f.week, nil
}

func (f *fakeBadgeStore) HasAchievement(ctx context.Context, userID int64, achievementID string) (bool, error) {
	return f.granted[achievementID], nil
}

func (f *fakeBadgeStore) GrantAchievement(ctx context.Context, userID int64, achievementID string) error {
	f.granted[achievementID] = true
	return nil
}

func badgeIDs(badges []Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestEvaluateWorkoutBadges(t *testing.T) {
	tests := []struct {
		name  string
		total int
		week  int
		want  []string
	}{
		{"first workout", 1, 1, []string{"first_step"}},
		{"no workouts", 0, 0, nil},
		{"stable week", 10, 5, []string{"first_step", "stability"}},
		{"marathon distance", 50, 2, []string{"first_step", "marathoner"}},
		{"everything at once", 60, 6, []string{"first_step", "stability", "marathoner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeBadgeStore(tt.total, tt.week)
			earned, err := EvaluateWorkoutBadges(context.Background(), store, 42)
			if err != nil {
				t.Fatalf("EvaluateWorkoutBadges() error = %v", err)
			}
			got := badgeIDs(earned)
			if len(got) != len(tt.want) {
				t.Fatalf("earned %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("earned %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestEvaluateWorkoutBadgesIdempotent(t *testing.T) {
	store := newFakeBadgeStore(60, 6)

	first, err := EvaluateWorkoutBadges(context.Background(), store, 42)
	if err != nil {
		t.Fatalf("first evaluation error = %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("first evaluation earned %v, want 3 badges", badgeIDs(first))
	}

	second, err := EvaluateWorkoutBadges(context.Background(), store, 42)
	if err != nil {
		t.Fatalf("second evaluation error = %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second evaluation earned %v, want none", badgeIDs(second))
	}
}

func TestBadgeRegistrySignificance(t *testing.T) {
	for id, badge := range badgeRegistry {
		wantSignificant := id == "stability" || id == "marathoner"
		if badge.Significant != wantSignificant {
			t.Errorf("badge %s Significant = %v, want %v", id, badge.Significant, wantSignificant)
		}
	}
}
