package errors

import (
	"testing"
)

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"default", 600, 400, false},
		{"minimum", MinCanvasSize, MinCanvasSize, false},
		{"maximum", MaxCanvasSize, MaxCanvasSize, false},
		{"zero width", 0, 400, true},
		{"negative height", 600, -1, true},
		{"too wide", MaxCanvasSize + 1, 400, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCanvas() code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateChartName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "sales", false},
		{"with dash", "q3-sales", false},
		{"with dot", "sales.2024", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChartName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChartName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "chart.svg", false},
		{"nested file", "out/chart.png", false},
		{"absolute file", "/tmp/chart.pdf", false},

		{"empty", "", true},
		{"null byte", "chart\x00.svg", true},
		{"directory", "out/", true},
		{"dot", ".", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
