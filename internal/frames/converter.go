package frames

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Converter selects how frame pixels are mapped to terminal output. The
// mapping itself is done by the renderer binary; the converter picks its
// color mode and the pixel format ffmpeg emits.
type Converter string

const (
	ConverterTrueColor Converter = "truecolor"
	Converter256       Converter = "256"
	Converter16        Converter = "16"
	ConverterASCII     Converter = "ascii"
)

var converters = []Converter{ConverterTrueColor, Converter256, Converter16, ConverterASCII}

var converterAliases = map[string]Converter{
	"truecolor": ConverterTrueColor,
	"true":      ConverterTrueColor,
	"full":      ConverterTrueColor,
	"256":       Converter256,
	"color256":  Converter256,
	"16":        Converter16,
	"color16":   Converter16,
	"ascii":     ConverterASCII,
	"none":      ConverterASCII,
}

// Converters returns the supported converters in display order.
func Converters() []Converter {
	out := make([]Converter, len(converters))
	copy(out, converters)
	return out
}

// ParseConverter resolves a user-supplied converter name (case-insensitive).
func ParseConverter(value string) (Converter, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if conv, ok := converterAliases[key]; ok {
		return conv, nil
	}
	names := make([]string, 0, len(converters))
	for _, c := range converters {
		names = append(names, string(c))
	}
	return "", fmt.Errorf("unknown converter %q (valid: %s)", value, strings.Join(names, ", "))
}

// String implements fmt.Stringer.
func (c Converter) String() string {
	return string(c)
}

// DisplayName returns a human-friendly label for help output and doctor tables.
func (c Converter) DisplayName() string {
	caser := cases.Title(language.English)
	switch c {
	case ConverterTrueColor:
		return caser.String("true color")
	case Converter256:
		return "256 " + caser.String("colors")
	case Converter16:
		return "16 " + caser.String("colors")
	case ConverterASCII:
		return strings.ToUpper(string(c))
	default:
		return caser.String(string(c))
	}
}

// Grayscale reports whether frames should be extracted without color.
func (c Converter) Grayscale() bool {
	return c == ConverterASCII
}

// rendererArgs returns the renderer color flags for the converter.
func (c Converter) rendererArgs() []string {
	switch c {
	case Converter256:
		return []string{"--colors", "256"}
	case Converter16:
		return []string{"--colors", "16"}
	case ConverterASCII:
		return []string{"--colors", "none", "--symbols", "ascii"}
	default:
		return []string{"--colors", "full"}
	}
}
