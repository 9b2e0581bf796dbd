package domain

import (
	"regexp"
	"strings"
)

// BulletSeparator marks list items inside a rich-text field.
const BulletSeparator = "•"

const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>"
)

var (
	markerReplacer = strings.NewReplacer("<p>", "", "</p>", "", "<br>", "", "&nbsp;", "")
	bulletSpacing  = regexp.MustCompile(BulletSeparator + `[\s\p{Zs}]*`)
)

// RichText is a field stored as a single wrapped paragraph.
//
// It is deliberately not a markup tree: Text is the payload and Wrapped
// records whether it sits inside one paragraph marker. Stored values
// that carry anything else are kept verbatim with Wrapped=false.
type RichText struct {
	Text    string
	Wrapped bool
}

// Wrap trims raw input and wraps it in a paragraph marker.
// Blank input yields the empty value, stored as "".
func Wrap(raw string) RichText {
	t := strings.TrimSpace(raw)
	if t == "" {
		return RichText{}
	}
	return RichText{Text: t, Wrapped: true}
}

// ParseRichText recognises a single surrounding paragraph marker.
// ParseRichText(s).String() == s for every s.
func ParseRichText(stored string) RichText {
	if len(stored) >= len(paragraphOpen)+len(paragraphClose) &&
		strings.HasPrefix(stored, paragraphOpen) &&
		strings.HasSuffix(stored, paragraphClose) {
		return RichText{
			Text:    stored[len(paragraphOpen) : len(stored)-len(paragraphClose)],
			Wrapped: true,
		}
	}
	return RichText{Text: stored}
}

// String returns the stored form.
func (r RichText) String() string {
	if r.Wrapped {
		return paragraphOpen + r.Text + paragraphClose
	}
	return r.Text
}

// Plain returns the display text (see Unwrap).
func (r RichText) Plain() string { return Unwrap(r.String()) }

// IsEmpty reports whether there is nothing to display.
func (r RichText) IsEmpty() bool { return r.Plain() == "" }

// MarshalText lets encoding/json write the stored form as a plain string, never null.
func (r RichText) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses the stored form. JSON null leaves the zero value.
func (r *RichText) UnmarshalText(b []byte) error {
	*r = ParseRichText(string(b))
	return nil
}

// Unwrap converts stored rich text into display text.
//
// Only the four literal markers <p>, </p>, <br> and &nbsp; are removed;
// this is not an HTML parser. Every bullet is followed by exactly one
// space, whatever whitespace (NBSP included) followed it before and the result is trimmed. Unwrap(Unwrap(x)) == Unwrap(x).
func Unwrap(stored string) string {
	if stored == "" {
		return ""
	}
	// Removing a marker can glue together a new one ("<<p>p>"), so repeat
	// until stable to keep the function idempotent.
	text := stored
	for {
		next := markerReplacer.Replace(text)
		if next == text {
			break
		}
		text = next
	}
	text = bulletSpacing.ReplaceAllString(text, BulletSeparator+" ")
	return strings.TrimSpace(text)
}

// Bullets splits display text on the bullet separator and returns the
// trimmed, non-empty segments. It returns nil when the text has no bullet,
// meaning the text should be rendered as one paragraph; a text made only
// of separators yields an empty, non-nil slice.
func Bullets(plain string) []string {
	if !strings.Contains(plain, BulletSeparator) {
		return nil
	}
	out := []string{}
	for _, seg := range strings.Split(plain, BulletSeparator) {
		if seg = strings.TrimSpace(seg); seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
