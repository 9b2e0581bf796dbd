package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Palette colors shared by the PDF theme and the HTML style sheet.
const (
	ColorPrimary = "#2c3e50" // headings and name
	ColorAccent  = "#3498db" // title, company, rules
	ColorText    = "#2c3e50"
	ColorGray    = "#7f8c8d" // dates and contact line
	ColorCurrent = "#27ae60" // HTML "Current" badge
	ColorTag     = "#ecf0f1" // HTML skill tag background
)

const (
	PaperLetter      = "Letter"
	PaperWidthInch   = 8.5
	PaperHeightInch  = 11.0
	PageMarginPt     = 36.0
	ContactSeparator = "  •  "
	SkillSeparator   = " • "
	BulletPrefix     = "• "
)

// RGB is a color in 0..255 components.
type RGB struct{ R, G, B int }

// ParseHex reads "#rrggbb".
func ParseHex(hex string) (RGB, error) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

func mustHex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// TextStyle is one paragraph style of the PDF theme. Sizes are points.
type TextStyle struct {
	Family      string
	Style       string // "", "B", "I" as understood by fpdf
	Size        float64
	Leading     float64
	Color       RGB
	Align       string // "L", "C", "J"
	SpaceBefore float64
	SpaceAfter  float64
}

// Theme is the fixed visual contract of the PDF pipeline.
type Theme struct {
	Paper  string
	Margin float64
	Rule   RGB

	Name     TextStyle
	Title    TextStyle
	Contact  TextStyle
	Section  TextStyle
	JobTitle TextStyle
	Company  TextStyle
	Date     TextStyle
	Content  TextStyle
	Skills   TextStyle

	HeaderGap float64 // after the contact line
	EntryGap  float64 // after each job or school
}

const fontFamily = "Helvetica"

// DefaultTheme is the dark slate-blue, blue accent, gray metadata theme.
var DefaultTheme = Theme{
	Paper:  PaperLetter,
	Margin: PageMarginPt,
	Rule:   mustHex(ColorAccent),

	Name:     TextStyle{Family: fontFamily, Style: "B", Size: 22, Leading: 24, Color: mustHex(ColorPrimary), Align: "C", SpaceAfter: 4},
	Title:    TextStyle{Family: fontFamily, Size: 12, Leading: 14, Color: mustHex(ColorAccent), Align: "C", SpaceAfter: 2},
	Contact:  TextStyle{Family: fontFamily, Size: 10, Leading: 11, Color: mustHex(ColorGray), Align: "C"},
	Section:  TextStyle{Family: fontFamily, Style: "B", Size: 12, Leading: 14, Color: mustHex(ColorPrimary), Align: "L", SpaceBefore: 10, SpaceAfter: 6},
	JobTitle: TextStyle{Family: fontFamily, Style: "B", Size: 11, Leading: 12, Color: mustHex(ColorText), Align: "L", SpaceBefore: 2},
	Company:  TextStyle{Family: fontFamily, Size: 10, Leading: 11, Color: mustHex(ColorAccent), Align: "L"},
	Date:     TextStyle{Family: fontFamily, Style: "I", Size: 9, Leading: 10, Color: mustHex(ColorGray), Align: "L", SpaceAfter: 2},
	Content:  TextStyle{Family: fontFamily, Size: 9, Leading: 11, Color: mustHex(ColorText), Align: "J"},
	Skills:   TextStyle{Family: fontFamily, Size: 9, Leading: 12, Color: mustHex(ColorText), Align: "L"},

	HeaderGap: 6,
	EntryGap:  4,
}
