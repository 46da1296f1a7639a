package style

import "testing"

func TestPaletteAtWraps(t *testing.T) {
	p := Palette{"#000000", "#111111", "#222222"}

	tests := []struct {
		index int
		want  string
	}{
		{0, "#000000"},
		{2, "#222222"},
		{3, "#000000"},
		{7, "#111111"},
		{-1, "#222222"},
	}
	for _, tt := range tests {
		if got := p.At(tt.index); got != tt.want {
			t.Errorf("At(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}

	if got := Palette(nil).At(4); got != colorUnknown {
		t.Errorf("empty palette At() = %s, want %s", got, colorUnknown)
	}
}

func TestPaletteValidate(t *testing.T) {
	if err := DefaultPalette.Validate(); err != nil {
		t.Errorf("DefaultPalette.Validate() = %v", err)
	}
	if err := (Palette{}).Validate(); err == nil {
		t.Error("empty palette should fail")
	}
	if err := (Palette{"#fff", "blue"}).Validate(); err == nil {
		t.Error("named color should fail")
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"taxonomy", Taxonomy, false},
		{"module", Module, false},
		{"enrichment", Enrichment, false},
		{"Module", 0, true},
		{" enrichment ", 0, true},
		{"phylum", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColorMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColorMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestColorModeText(t *testing.T) {
	for _, m := range []ColorMode{Taxonomy, Module, Enrichment} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", m, err)
		}
		var back ColorMode
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != m {
			t.Errorf("round trip %v = %v", m, back)
		}
	}
	if ColorMode(99).String() != "unknown" {
		t.Errorf("ColorMode(99).String() = %q", ColorMode(99).String())
	}
}
