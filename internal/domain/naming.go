package domain

import (
	"path"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultResumeName names a saved document that has no person name.
	DefaultResumeName = "Resume"
	// DefaultExportBase names an export when neither an identifier nor a name exists.
	DefaultExportBase = "resume"

	idTimestampLayout = "2006-01-02_15-04-05"
)

var (
	unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns   = regexp.MustCompile(`[-\s]+`)
)

// CleanName keeps word characters, whitespace and hyphens, then trims.
func CleanName(name string) string {
	return strings.TrimSpace(unsafeNameChars.ReplaceAllString(name, ""))
}

// SynthesizeID builds a storage identifier for a document saved for
// the first time: "<Clean_Name>_YYYY-MM-DD_HH-MM-SS.json".
func SynthesizeID(name string, now time.Time) string {
	base := separatorRuns.ReplaceAllString(CleanName(name), "_")
	if base == "" {
		base = DefaultResumeName
	}
	return base + "_" + now.Format(idTimestampLayout) + ".json"
}

// ExportName suggests a download filename for an export with extension ext (".pdf", ".html").
func ExportName(currentID, name, ext string) string {
	if currentID != "" {
		return strings.TrimSuffix(currentID, path.Ext(currentID)) + ext
	}
	if name != "" {
		return strings.ReplaceAll(CleanName(name), " ", "_") + "_resume" + ext
	}
	return DefaultExportBase + ext
}
