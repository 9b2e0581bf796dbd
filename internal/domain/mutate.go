package domain

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// BasicsInput is the basics form. Missing fields arrive as "".
type BasicsInput struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Summary   string `json:"summary"`
	Objective string `json:"objective"`
	City      string `json:"city"`
}

// WorkInput is the work form. Dates are YYYY-MM-DD.
type WorkInput struct {
	ID               string `json:"id"`
	Company          string `json:"company"`
	Position         string `json:"position"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Summary          string `json:"summary"`
}

// EducationInput is the education form. Courses is comma-separated.
type EducationInput struct {
	ID                string `json:"id"`
	Institution       string `json:"institution"`
	Area              string `json:"area"`
	StudyType         string `json:"studyType"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	CurrentlyStudying bool   `json:"currentlyStudying"`
	GPA               string `json:"gpa"`
	Courses           string `json:"courses"`
	Summary           string `json:"summary"`
}

// NewID returns a fresh 16-hex-character entry identity.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// UpdateBasics overwrites the whole basics record (not a merge).
// Profiles are left untouched since no form edits them.
func (r *Resume) UpdateBasics(in BasicsInput) {
	r.Basics.Name = in.Name
	r.Basics.Label = in.Label
	r.Basics.Email = in.Email
	r.Basics.Phone = in.Phone
	r.Basics.Summary = Wrap(in.Summary)
	r.Basics.Objective = Wrap(in.Objective)
	r.Basics.Location.City = in.City
}

// UpsertWork replaces the entry with the same ID in place, or appends a
// new entry with a freshly generated ID. It returns the entry's ID.
func (r *Resume) UpsertWork(in WorkInput) string {
	entry := WorkEntry{
		Company:       in.Company,
		Position:      in.Position,
		StartDate:     WireDate(in.StartDate),
		EndDate:       endDate(in.EndDate, in.CurrentlyWorking),
		IsWorkingHere: in.CurrentlyWorking,
		Summary:       Wrap(in.Summary),
		Highlights:    []string{},
	}

	if i := slices.IndexFunc(r.Work, func(w WorkEntry) bool { return in.ID != "" && w.ID == in.ID }); i >= 0 {
		entry.ID = in.ID
		r.Work[i] = entry
	} else {
		entry.ID = NewID()
		r.Work = append(r.Work, entry)
	}
	SortWork(r.Work)
	return entry.ID
}

// DeleteWork removes the entry with the given ID. An unknown ID is a
// no-op; the return value only tells whether something was removed.
func (r *Resume) DeleteWork(id string) bool {
	before := len(r.Work)
	r.Work = slices.DeleteFunc(r.Work, func(w WorkEntry) bool { return w.ID == id })
	SortWork(r.Work)
	return len(r.Work) != before
}

// UpsertEducation behaves like UpsertWork for education entries.
func (r *Resume) UpsertEducation(in EducationInput) string {
	entry := EducationEntry{
		Institution:    in.Institution,
		Area:           in.Area,
		StudyType:      in.StudyType,
		StartDate:      WireDate(in.StartDate),
		EndDate:        endDate(in.EndDate, in.CurrentlyStudying),
		IsStudyingHere: in.CurrentlyStudying,
		GPA:            in.GPA,
		Courses:        SplitCourses(in.Courses),
		Summary:        Wrap(in.Summary),
	}

	if i := slices.IndexFunc(r.Education, func(e EducationEntry) bool { return in.ID != "" && e.ID == in.ID }); i >= 0 {
		entry.ID = in.ID
		r.Education[i] = entry
	} else {
		entry.ID = NewID()
		r.Education = append(r.Education, entry)
	}
	SortEducation(r.Education)
	return entry.ID
}

// DeleteEducation removes the entry with the given ID; unknown IDs are a no-op.
func (r *Resume) DeleteEducation(id string) bool {
	before := len(r.Education)
	r.Education = slices.DeleteFunc(r.Education, func(e EducationEntry) bool { return e.ID == id })
	SortEducation(r.Education)
	return len(r.Education) != before
}

// AddSkill appends a skill unless one with the same name (ignoring case)
// exists. Blank names are ignored.
func (r *Resume) AddSkill(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, s := range r.Skills.Technologies {
		if strings.EqualFold(s.Name, name) {
			return false
		}
	}
	r.Skills.Technologies = append(r.Skills.Technologies, SkillEntry{Name: name})
	return true
}

// DeleteSkill removes the skill at index; out-of-range indexes are a no-op.
func (r *Resume) DeleteSkill(index int) bool {
	if index < 0 || index >= len(r.Skills.Technologies) {
		return false
	}
	r.Skills.Technologies = append(r.Skills.Technologies[:index], r.Skills.Technologies[index+1:]...)
	return true
}

// SplitCourses splits a comma-separated list, dropping blank items.
func SplitCourses(raw string) []string {
	courses := []string{}
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			courses = append(courses, c)
		}
	}
	return courses
}

// endDate enforces the invariant that active entries have no end date.
func endDate(input string, active bool) *string {
	if active || strings.TrimSpace(input) == "" {
		return nil
	}
	d := WireDate(input)
	return &d
}
