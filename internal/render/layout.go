package render

import (
	"strings"

	"github.com/MrSnakeDoc/vitae/internal/domain"
)

const (
	// NamePlaceholder stands in for a missing name in both pipelines.
	NamePlaceholder = "YOUR NAME HERE"

	// EmptyPlaceholder replaces the body of a resume with no sections.
	EmptyPlaceholder = "This resume is empty. Please add your information using the web interface."

	GPALabel        = "GPA: "
	CourseworkLabel = "Coursework: "
	CurrentBadge    = "Current"
)

// SectionKind identifies a body section. Sections always appear in the
// order the kinds are declared.
type SectionKind string

const (
	SectionSummary    SectionKind = "summary"
	SectionObjective  SectionKind = "objective"
	SectionExperience SectionKind = "experience"
	SectionEducation  SectionKind = "education"
	SectionSkills     SectionKind = "skills"
)

var sectionTitles = map[SectionKind]string{
	SectionSummary:    "Professional Summary",
	SectionObjective:  "Career Objective",
	SectionExperience: "Professional Experience",
	SectionEducation:  "Education",
	SectionSkills:     "Technical Skills",
}

// ContactKind identifies a header contact field.
type ContactKind string

const (
	ContactEmail ContactKind = "email"
	ContactPhone ContactKind = "phone"
	ContactCity  ContactKind = "city"
)

type Contact struct {
	Kind  ContactKind
	Value string
}

type Header struct {
	Name     string // display name or NamePlaceholder, never upper-cased here
	Title    string
	Contacts []Contact
}

// Body is an unwrapped rich-text field. Bullets holds the items when the
// text contained a bullet separator and at least one item; Paragraph is
// used for text without separators. A text made only of separators
// leaves both empty.
type Body struct {
	Paragraph string
	Bullets   []string
}

func (b Body) IsEmpty() bool { return b.Paragraph == "" && len(b.Bullets) == 0 }

// IsList reports whether the body renders as a list.
func (b Body) IsList() bool { return len(b.Bullets) > 0 }

type Job struct {
	Position string
	Company  string
	Dates    string
	Current  bool
	Summary  Body
}

type School struct {
	Institution string
	Degree      string
	Dates       string
	Current     bool
	GPA         string
	Summary     string
	Coursework  string // course names joined with ", "
}

// Section is one body section. Only the fields matching Kind are set.
type Section struct {
	Kind    SectionKind
	Title   string
	Text    string
	Jobs    []Job
	Schools []School
	Skills  []string
}

// Layout is the render-ready view of a resume. Both pipelines consume it,
// so they agree on section order, omission and date formatting.
type Layout struct {
	Header   Header
	Sections []Section
}

// Empty reports whether no body section survived the omission rules.
func (l Layout) Empty() bool { return len(l.Sections) == 0 }

// Build derives the layout from a snapshot of r. The snapshot is re-sorted
// so out-of-band edits still render in canonical order.
func Build(r *domain.Resume) Layout {
	doc := r.Clone()
	doc.Sort()

	l := Layout{Header: buildHeader(doc.Basics)}

	if s := doc.Basics.Summary.Plain(); s != "" {
		l.Sections = append(l.Sections, newSection(SectionSummary, func(sec *Section) { sec.Text = s }))
	}
	if s := doc.Basics.Objective.Plain(); s != "" {
		l.Sections = append(l.Sections, newSection(SectionObjective, func(sec *Section) { sec.Text = s }))
	}
	if len(doc.Work) > 0 {
		jobs := make([]Job, 0, len(doc.Work))
		for _, w := range doc.Work {
			jobs = append(jobs, buildJob(w))
		}
		l.Sections = append(l.Sections, newSection(SectionExperience, func(sec *Section) { sec.Jobs = jobs }))
	}
	if len(doc.Education) > 0 {
		schools := make([]School, 0, len(doc.Education))
		for _, e := range doc.Education {
			schools = append(schools, buildSchool(e))
		}
		l.Sections = append(l.Sections, newSection(SectionEducation, func(sec *Section) { sec.Schools = schools }))
	}

	var skills []string
	for _, s := range doc.Skills.Technologies {
		if n := strings.TrimSpace(s.Name); n != "" {
			skills = append(skills, n)
		}
	}
	if len(skills) > 0 {
		l.Sections = append(l.Sections, newSection(SectionSkills, func(sec *Section) { sec.Skills = skills }))
	}
	return l
}

func newSection(kind SectionKind, fill func(*Section)) Section {
	s := Section{Kind: kind, Title: sectionTitles[kind]}
	fill(&s)
	return s
}

func buildHeader(b domain.Basics) Header {
	h := Header{
		Name:  strings.TrimSpace(b.Name),
		Title: strings.TrimSpace(b.Label),
	}
	if h.Name == "" {
		h.Name = NamePlaceholder
	}
	for _, c := range []Contact{
		{Kind: ContactEmail, Value: b.Email},
		{Kind: ContactPhone, Value: b.Phone},
		{Kind: ContactCity, Value: b.Location.City},
	} {
		if c.Value = strings.TrimSpace(c.Value); c.Value != "" {
			h.Contacts = append(h.Contacts, c)
		}
	}
	return h
}

func buildJob(w domain.WorkEntry) Job {
	j := Job{
		Position: strings.TrimSpace(w.Position),
		Company:  strings.TrimSpace(w.Company),
		Dates:    domain.DateRange(w.StartDate, w.EndDate),
		Current:  w.IsWorkingHere,
	}
	plain := w.Summary.Plain()
	if bullets := domain.Bullets(plain); bullets != nil {
		if len(bullets) > 0 {
			j.Summary.Bullets = bullets
		}
	} else {
		j.Summary.Paragraph = plain
	}
	return j
}

func buildSchool(e domain.EducationEntry) School {
	s := School{
		Institution: strings.TrimSpace(e.Institution),
		Dates:       domain.DateRange(e.StartDate, e.EndDate),
		Current:     e.IsStudyingHere,
		GPA:         strings.TrimSpace(e.GPA),
		Summary:     e.Summary.Plain(),
	}

	var degree []string
	if st := strings.TrimSpace(e.StudyType); st != "" {
		degree = append(degree, st)
	}
	if area := strings.TrimSpace(e.Area); area != "" {
		degree = append(degree, "in "+area)
	}
	s.Degree = strings.Join(degree, " ")

	var courses []string
	for _, c := range e.Courses {
		if c = strings.TrimSpace(c); c != "" {
			courses = append(courses, c)
		}
	}
	s.Coursework = strings.Join(courses, ", ")
	return s
}
