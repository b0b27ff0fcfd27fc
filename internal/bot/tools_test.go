package bot

import "testing"

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"08:30", true},
		{"8:30", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"12.30", false},
		{"noon", false},
		{"", false},
		{" 13:00 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidTime(tt.input); got != tt.want {
				t.Errorf("ValidTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"8:30", "08:30"},
		{"08:30", "08:30"},
		{" 9:05 ", "09:05"},
		{"23:59", "23:59"},
	}

	for _, tt := range tests {
		if got := normalizeTime(tt.input); got != tt.want {
			t.Errorf("normalizeTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// The calorie calculator survey validates its replies with the same choice
// sets as the onboarding keyboards.
func TestCalculatorChoiceValidation(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		input string
		want  bool
	}{
		{"gender male", validGenderChoice, "Чоловік", true},
		{"gender female", validGenderChoice, "Жінка", true},
		{"gender free text", validGenderChoice, "чоловік", false},
		{"activity medium", validActivityChoice, "Середній", true},
		{"activity free text", validActivityChoice, "сиджу вдома", false},
		{"goal mass", validGoalChoice, "Набір маси", true},
		{"goal free text", validGoalChoice, "просто бути здоровим", false},
		{"empty reply", validGoalChoice, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.input); got != tt.want {
				t.Errorf("%s(%q) = %v, want %v", tt.name, tt.input, got, tt.want)
			}
		})
	}
}
