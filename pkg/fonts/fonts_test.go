package fonts

import (
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		family  string
		wantErr bool
	}{
		{"", false},
		{"sans-serif", false},
		{"Sans-Serif", false},
		{"monospace", false},
		{"go bold", false},
		{"goitalic", false},
		{"comic sans", true},
	}

	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			f, err := Resolve(Spec{Family: tt.family, Size: 12})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", tt.family, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeFontLoading) {
					t.Errorf("Resolve(%q) code = %v, want %v", tt.family, errors.GetCode(err), errors.ErrCodeFontLoading)
				}
				return
			}
			if f.Height() <= 0 {
				t.Errorf("Height() = %v, want > 0", f.Height())
			}
		})
	}
}

func TestSpecDefaults(t *testing.T) {
	got := Spec{}.WithDefaults()
	if got != Default() {
		t.Errorf("WithDefaults() = %+v, want %+v", got, Default())
	}
	got = Spec{Family: "monospace", Size: 20}.WithDefaults()
	if got.Family != "monospace" || got.Size != 20 {
		t.Errorf("WithDefaults() = %+v, want monospace 20", got)
	}
}

func TestMeasure(t *testing.T) {
	f, err := Resolve(Default())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	empty := f.Measure("")
	if empty.W != 0 {
		t.Errorf("Measure(\"\").W = %v, want 0", empty.W)
	}

	short, long := f.Measure("10"), f.Measure("1000")
	if !(long.W > short.W) {
		t.Errorf("Measure(\"1000\").W = %v, want > %v", long.W, short.W)
	}
	if short.H != long.H {
		t.Errorf("line heights differ: %v vs %v", short.H, long.H)
	}

	big, err := Resolve(Spec{Family: DefaultFamily, Size: 24})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !(big.Measure("10").W > short.W) {
		t.Errorf("24px text not wider than 12px text")
	}
}

func TestCSS(t *testing.T) {
	tests := []struct {
		family, wantFamily, wantWeight, wantStyle string
	}{
		{"sans-serif", "'Go', sans-serif", "normal", "normal"},
		{"monospace", "'Go Mono', monospace", "normal", "normal"},
		{"bold", "'Go', sans-serif", "bold", "normal"},
		{"italic", "'Go', sans-serif", "normal", "italic"},
	}
	for _, tt := range tests {
		s := Spec{Family: tt.family}
		if got := s.CSSFamily(); got != tt.wantFamily {
			t.Errorf("CSSFamily(%q) = %v, want %v", tt.family, got, tt.wantFamily)
		}
		if got := s.CSSWeight(); got != tt.wantWeight {
			t.Errorf("CSSWeight(%q) = %v, want %v", tt.family, got, tt.wantWeight)
		}
		if got := s.CSSStyle(); got != tt.wantStyle {
			t.Errorf("CSSStyle(%q) = %v, want %v", tt.family, got, tt.wantStyle)
		}
	}
}
