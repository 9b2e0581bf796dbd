package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html.tmpl"))

var contactIcons = map[ContactKind]string{
	ContactEmail: "📧",
	ContactPhone: "📱",
	ContactCity:  "📍",
}

type htmlContact struct {
	Kind  ContactKind
	Icon  string
	Value string
}

type htmlColors struct {
	Primary, Accent, Text, Gray, Current, Tag template.CSS
}

type htmlPage struct {
	DocumentTitle    string
	Header           Header
	Contacts         []htmlContact
	ContactSeparator string
	Sections         []Section
	Empty            bool
	Placeholder      string
	Badge            string
	GPALabel         string
	CourseworkLabel  string
	Colors           htmlColors
}

// HTML renders the layout as a self-contained page with an inline style
// sheet. Every value is escaped by html/template.
func HTML(l Layout) ([]byte, error) {
	page := htmlPage{
		DocumentTitle:    documentTitle(l.Header),
		Header:           l.Header,
		ContactSeparator: SkillSeparator,
		Sections:         l.Sections,
		Empty:            l.Empty(),
		Placeholder:      EmptyPlaceholder,
		Badge:            CurrentBadge,
		GPALabel:         GPALabel,
		CourseworkLabel:  CourseworkLabel,
		Colors: htmlColors{
			Primary: ColorPrimary,
			Accent:  ColorAccent,
			Text:    ColorText,
			Gray:    ColorGray,
			Current: ColorCurrent,
			Tag:     ColorTag,
		},
	}
	for _, c := range l.Header.Contacts {
		page.Contacts = append(page.Contacts, htmlContact{Kind: c.Kind, Icon: contactIcons[c.Kind], Value: c.Value})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("execute html template: %w", err)
	}
	return buf.Bytes(), nil
}

func documentTitle(h Header) string {
	name := h.Name
	if name == NamePlaceholder {
		name = "Resume"
	}
	return name + " - Resume"
}
