package domain

import "encoding/json"

// Resume is the root document aggregate.
//
// The JSON shape (field names and nesting) is the on-disk format and
// must stay compatible with resumes written by earlier versions.
// Work and Education order is derived: every mutator re-sorts them.
type Resume struct {
	Basics    Basics           `json:"basics"`
	Work      []WorkEntry      `json:"work"`
	Skills    Skills           `json:"skills"`
	Education []EducationEntry `json:"education"`
}

// Basics holds the personal information block.
type Basics struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"` // job title shown under the name
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Summary   RichText  `json:"summary"`
	Objective RichText  `json:"objective"`
	Location  Location  `json:"location"`
	Profiles  []Profile `json:"profiles"`
}

// Location only carries the city; the rest of the address is never rendered.
type Location struct {
	City string `json:"city"`
}

// Profile is kept for compatibility with stored resumes. Nothing edits it.
type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// WorkEntry is one position in the work history.
type WorkEntry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is generated once on creation and never regenerated on update.
	ID string `json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Company is stored under "name" on the wire.
	Company  string   `json:"name"`
	Position string   `json:"position"`
	Summary  RichText `json:"summary"`

	// ─────────────────────────────
	// Dates
	// ─────────────────────────────

	// StartDate is empty or an ISO-8601 timestamp.
	StartDate string `json:"startDate"`

	// EndDate is nil (JSON null) while IsWorkingHere is true or when no
	// end date was supplied.
	EndDate       *string `json:"endDate"`
	IsWorkingHere bool    `json:"isWorkingHere"`

	// ─────────────────────────────
	// Legacy fields, always written empty
	// ─────────────────────────────

	Highlights []string `json:"highlights"`
	URL        string   `json:"url"`
	Years      string   `json:"years"`
}

// EducationEntry is one school or program.
type EducationEntry struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Area        string `json:"area"`
	StudyType   string `json:"studyType"`

	StartDate      string  `json:"startDate"`
	EndDate        *string `json:"endDate"`
	IsStudyingHere bool    `json:"isStudyingHere"`

	GPA     string   `json:"gpa"` // free text, e.g. "3.8/4.0"
	Courses []string `json:"courses"`
	Summary RichText `json:"summary"`
	URL     string   `json:"url"`
}

// Skills wraps the technologies list; the extra level matches the stored format.
type Skills struct {
	Technologies []SkillEntry `json:"technologies"`
}

// SkillEntry is a named skill. Level is always 0.
type SkillEntry struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// NewResume returns an empty document: every scalar empty, every collection empty (never null).
func NewResume() *Resume {
	r := &Resume{}
	r.normalize()
	return r
}

// UnmarshalJSON decodes a stored resume, fills missing collections and
// restores the canonical order.
func (r *Resume) UnmarshalJSON(data []byte) error {
	type plain Resume
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Resume(p)
	r.normalize()
	r.Sort()
	return nil
}

// normalize replaces nil slices so they serialize as [] instead of null.
func (r *Resume) normalize() {
	if r.Basics.Profiles == nil {
		r.Basics.Profiles = []Profile{}
	}
	if r.Work == nil {
		r.Work = []WorkEntry{}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Skills.Technologies == nil {
		r.Skills.Technologies = []SkillEntry{}
	}
	for i := range r.Work {
		if r.Work[i].Highlights == nil {
			r.Work[i].Highlights = []string{}
		}
	}
	for i := range r.Education {
		if r.Education[i].Courses == nil {
			r.Education[i].Courses = []string{}
		}
	}
}

// Clone returns a deep copy. Renderers and encoders work on clones so
// they never observe a document mid-mutation.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return NewResume()
	}
	c := *r
	c.Basics.Profiles = append([]Profile{}, r.Basics.Profiles...)
	c.Skills.Technologies = append([]SkillEntry{}, r.Skills.Technologies...)

	c.Work = make([]WorkEntry, len(r.Work))
	for i, w := range r.Work {
		w.EndDate = cloneString(w.EndDate)
		w.Highlights = append([]string{}, w.Highlights...)
		c.Work[i] = w
	}

	c.Education = make([]EducationEntry, len(r.Education))
	for i, e := range r.Education {
		e.EndDate = cloneString(e.EndDate)
		e.Courses = append([]string{}, e.Courses...)
		c.Education[i] = e
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
