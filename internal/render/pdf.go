package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFEngine turns a layout into a PDF byte stream.
type PDFEngine interface {
	Name() string
	RenderPDF(ctx context.Context, l Layout) ([]byte, error)
}

// NativeEngine draws the document directly with fpdf using the core
// Helvetica fonts.
type NativeEngine struct {
	Theme    Theme
	Compress bool
}

// NewNativeEngine returns an engine using DefaultTheme with compressed streams.
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{Theme: DefaultTheme, Compress: true}
}

func (e *NativeEngine) Name() string { return "native" }

func (e *NativeEngine) RenderPDF(ctx context.Context, l Layout) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := e.Theme
	pdf := fpdf.New("P", "pt", t.Paper, "")
	pdf.SetCompression(e.Compress)
	pdf.SetMargins(t.Margin, t.Margin, t.Margin)
	pdf.SetAutoPageBreak(true, t.Margin)
	pdf.SetCreator("vitae", true)
	pdf.SetTitle(documentTitle(l.Header), true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	w := &pdfWriter{
		pdf:   pdf,
		width: pageW - 2*t.Margin,
		// core fonts are cp1252; this maps "•" and "–" to their single-byte forms
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}

	w.paragraph(t.Name, strings.ToUpper(l.Header.Name))
	if l.Header.Title != "" {
		w.paragraph(t.Title, l.Header.Title)
	}
	if len(l.Header.Contacts) > 0 {
		values := make([]string, 0, len(l.Header.Contacts))
		for _, c := range l.Header.Contacts {
			values = append(values, c.Value)
		}
		w.paragraph(t.Contact, strings.Join(values, ContactSeparator))
	}
	pdf.Ln(t.HeaderGap)

	if l.Empty() {
		w.paragraph(t.Content, EmptyPlaceholder)
	}
	for _, s := range l.Sections {
		w.heading(t, strings.ToUpper(s.Title))
		switch s.Kind {
		case SectionSummary, SectionObjective:
			w.paragraph(t.Content, s.Text)
			pdf.Ln(t.EntryGap)
		case SectionExperience:
			for _, j := range s.Jobs {
				w.job(t, j)
			}
		case SectionEducation:
			for _, sc := range s.Schools {
				w.school(t, sc)
			}
		case SectionSkills:
			w.paragraph(t.Skills, strings.Join(s.Skills, SkillSeparator))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	width float64
	tr    func(string) string
}

func (w *pdfWriter) paragraph(st TextStyle, text string) {
	if text == "" {
		return
	}
	if st.SpaceBefore > 0 {
		w.pdf.Ln(st.SpaceBefore)
	}
	w.pdf.SetFont(st.Family, st.Style, st.Size)
	w.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	w.pdf.MultiCell(w.width, st.Leading, w.tr(text), "", st.Align, false)
	if st.SpaceAfter > 0 {
		w.pdf.Ln(st.SpaceAfter)
	}
}

// heading writes a section title with a rule underneath.
func (w *pdfWriter) heading(t Theme, title string) {
	st := t.Section
	w.pdf.Ln(st.SpaceBefore)
	w.pdf.SetFont(st.Family, st.Style, st.Size)
	w.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	w.pdf.MultiCell(w.width, st.Leading, w.tr(title), "", st.Align, false)

	y := w.pdf.GetY() + 1
	w.pdf.SetDrawColor(t.Rule.R, t.Rule.G, t.Rule.B)
	w.pdf.SetLineWidth(1)
	w.pdf.Line(t.Margin, y, t.Margin+w.width, y)
	w.pdf.Ln(st.SpaceAfter)
}

func (w *pdfWriter) job(t Theme, j Job) {
	w.paragraph(t.JobTitle, j.Position)
	w.paragraph(t.Company, j.Company)
	w.paragraph(t.Date, j.Dates)
	if j.Summary.IsList() {
		for _, b := range j.Summary.Bullets {
			w.paragraph(t.Content, BulletPrefix+b)
		}
	} else {
		w.paragraph(t.Content, j.Summary.Paragraph)
	}
	w.pdf.Ln(t.EntryGap)
}

func (w *pdfWriter) school(t Theme, s School) {
	w.paragraph(t.JobTitle, s.Institution)
	w.paragraph(t.Company, s.Degree)
	w.paragraph(t.Date, s.Dates)
	if s.GPA != "" {
		w.paragraph(t.Content, GPALabel+s.GPA)
	}
	w.paragraph(t.Content, s.Summary)
	if s.Coursework != "" {
		w.paragraph(t.Content, CourseworkLabel+s.Coursework)
	}
	w.pdf.Ln(t.EntryGap)
}
