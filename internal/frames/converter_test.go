package frames

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseConverter(t *testing.T) {
	tests := []struct {
		in   string
		want Converter
	}{
		{"truecolor", ConverterTrueColor},
		{" TrueColor ", ConverterTrueColor},
		{"256", Converter256},
		{"color16", Converter16},
		{"ASCII", ConverterASCII},
	}
	for _, tt := range tests {
		got, err := ParseConverter(tt.in)
		if err != nil {
			t.Fatalf("ParseConverter(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseConverter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseConverterRejectsUnknown(t *testing.T) {
	_, err := ParseConverter("sixel")
	if err == nil {
		t.Fatal("expected error for unknown converter")
	}
	if !strings.Contains(err.Error(), "truecolor, 256, 16, ascii") {
		t.Fatalf("expected valid set in error, got %q", err.Error())
	}
}

func TestConverterDisplayNames(t *testing.T) {
	want := map[Converter]string{
		ConverterTrueColor: "True Color",
		Converter256:       "256 Colors",
		Converter16:        "16 Colors",
		ConverterASCII:     "ASCII",
	}
	for conv, label := range want {
		if got := conv.DisplayName(); got != label {
			t.Fatalf("%s.DisplayName() = %q, want %q", conv, got, label)
		}
	}
}

func TestConverterRendererArgs(t *testing.T) {
	if got := ConverterASCII.rendererArgs(); !reflect.DeepEqual(got, []string{"--colors", "none", "--symbols", "ascii"}) {
		t.Fatalf("unexpected ascii args %v", got)
	}
	if got := ConverterTrueColor.rendererArgs(); !reflect.DeepEqual(got, []string{"--colors", "full"}) {
		t.Fatalf("unexpected truecolor args %v", got)
	}
	if !ConverterASCII.Grayscale() || ConverterTrueColor.Grayscale() {
		t.Fatal("only ascii should be grayscale")
	}
}
