package errors

import (
	"testing"
)

func TestValidateIterations(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"zero", 0, false},
		{"frame default", 10000, false},
		{"at limit", MaxIterations, false},

		{"negative", -1, true},
		{"over limit", MaxIterations + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIterations(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIterations(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateIterations(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePointCount(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxPoints, false},
		{-5, true},
		{MaxPoints + 1, true},
	}

	for _, tt := range tests {
		err := ValidatePointCount(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePointCount(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "sierpinski", false},
		{"with dash", "barnsley-fern", false},
		{"with underscore", "koch_curve", false},
		{"with digits", "dragon2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 65)), true},
		{"uppercase", "Sierpinski", true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"leading dash", "-fern", true},
		{"space", "my preset", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePresetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "presets/fern.toml", false},
		{"absolute", "/home/user/fern.toml", false},
		{"dotted", "../shared/fern.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 501)), true},
		{"null byte", "fern\x00.toml", true},
		{"newline", "fern\n.toml", true},
		{"trailing space", "fern.toml ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
