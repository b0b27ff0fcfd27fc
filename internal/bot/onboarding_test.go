package bot

import "testing"

func TestParseBodyParams(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantWeight int
		wantHeight int
		wantAge    int
		wantErr    bool
	}{
		{"example answer", "75, 180, 28", 75, 180, 28, false},
		{"no spaces", "60,165,34", 60, 165, 34, false},
		{"extra spaces", "  90 ,  190 , 45 ", 90, 190, 45, false},
		{"two values", "75, 180", 0, 0, 0, true},
		{"four values", "75, 180, 28, 1", 0, 0, 0, true},
		{"not numbers", "сімдесят, 180, 28", 0, 0, 0, true},
		{"weight too low", "20, 180, 28", 0, 0, 0, true},
		{"weight too high", "400, 180, 28", 0, 0, 0, true},
		{"height too low", "75, 80, 28", 0, 0, 0, true},
		{"age too low", "75, 180, 5", 0, 0, 0, true},
		{"age too high", "75, 180, 120", 0, 0, 0, true},
		{"empty", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weight, height, age, err := parseBodyParams(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBodyParams(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if weight != tt.wantWeight || height != tt.wantHeight || age != tt.wantAge {
				t.Errorf("parseBodyParams(%q) = (%d, %d, %d), want (%d, %d, %d)",
					tt.input, weight, height, age, tt.wantWeight, tt.wantHeight, tt.wantAge)
			}
		})
	}
}
