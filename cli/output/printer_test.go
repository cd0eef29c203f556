package output

import (
	"testing"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{input: "auto", want: ColorAuto},
		{input: "always", want: ColorAlways},
		{input: "never", want: ColorNever},
		{input: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColorMode(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColorMode(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColorMode(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestResolveColors(t *testing.T) {
	if !ResolveColors(ColorAlways) {
		t.Error("ColorAlways should enable colors")
	}
	if ResolveColors(ColorNever) {
		t.Error("ColorNever should disable colors")
	}

	t.Setenv("NO_COLOR", "1")
	if ResolveColors(ColorAuto) {
		t.Error("ColorAuto should respect NO_COLOR")
	}
}
