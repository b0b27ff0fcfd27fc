package bot

import (
	"errors"
	"testing"

	"github.com/Nikkeen22/fitness-bot/internal/gpt"
)

func TestNeedsMealFallback(t *testing.T) {
	tests := []struct {
		name     string
		analysis *gpt.MealAnalysis
		err      error
		want     bool
	}{
		{"call failed", nil, errors.New("timeout"), true},
		{"nil without error", nil, nil, true},
		{"zero calories", &gpt.MealAnalysis{MealName: "борщ", Calories: 0}, nil, true},
		{"negative calories", &gpt.MealAnalysis{MealName: "борщ", Calories: -5}, nil, true},
		{"usable reply", &gpt.MealAnalysis{MealName: "борщ", Calories: 80}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsMealFallback(tt.analysis, tt.err); got != tt.want {
				t.Errorf("needsMealFallback(%+v, %v) = %v, want %v", tt.analysis, tt.err, got, tt.want)
			}
		})
	}
}

func TestLookupFallbackMeal(t *testing.T) {
	tests := []struct {
		name         string
		description  string
		wantName     string
		wantCalories int
		wantMiss     bool
	}{
		{"exact match", "борщ", "борщ", 80, false},
		{"case insensitive", "Борщ", "борщ", 80, false},
		{"close typo", "борщь", "борщ", 80, false},
		{"another dish", "гречка", "гречка", 132, false},
		{"unknown dish", "том ям з креветками", "", 0, true},
		{"empty", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lookupFallbackMeal(tt.description)
			if tt.wantMiss {
				if got != nil {
					t.Fatalf("lookupFallbackMeal(%q) = %+v, want nil", tt.description, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("lookupFallbackMeal(%q) = nil, want %q", tt.description, tt.wantName)
			}
			if got.MealName != tt.wantName || got.Calories != tt.wantCalories {
				t.Errorf("lookupFallbackMeal(%q) = %q/%d ккал, want %q/%d ккал",
					tt.description, got.MealName, got.Calories, tt.wantName, tt.wantCalories)
			}
		})
	}
}

func TestLookupFallbackMealMacros(t *testing.T) {
	got := lookupFallbackMeal("борщ")
	if got == nil {
		t.Fatal("expected a match for борщ")
	}
	if got.Proteins != 2 || got.Fats != 3 || got.Carbs != 10 {
		t.Errorf("борщ macros = %.1f/%.1f/%.1f, want 2/3/10", got.Proteins, got.Fats, got.Carbs)
	}
}
