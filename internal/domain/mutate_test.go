package domain

import (
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestNewResumeIsEmpty(t *testing.T) {
	r := NewResume()
	if len(r.Work) != 0 || len(r.Education) != 0 || len(r.Skills.Technologies) != 0 {
		t.Fatalf("NewResume() should start with empty collections, got %+v", r)
	}
	if r.Work == nil || r.Education == nil || r.Skills.Technologies == nil || r.Basics.Profiles == nil {
		t.Error("NewResume() collections must be non-nil so they encode as []")
	}
}

func TestUpdateBasicsOverwrites(t *testing.T) {
	r := NewResume()
	r.UpdateBasics(BasicsInput{
		Name:      "Ada Lovelace",
		Label:     "Engineer",
		Email:     "ada@example.com",
		Summary:   "  Wrote the first program ",
		Objective: "Compute",
		City:      "London",
	})

	if r.Basics.Summary.String() != "<p>Wrote the first program</p>" {
		t.Errorf("summary = %q", r.Basics.Summary.String())
	}

	// second update omits most fields: they must become empty, not stay stale
	r.UpdateBasics(BasicsInput{Name: "Ada"})

	if r.Basics.Label != "" || r.Basics.Email != "" || r.Basics.Location.City != "" {
		t.Errorf("stale basics after overwrite: %+v", r.Basics)
	}
	if r.Basics.Summary.String() != "" || r.Basics.Objective.String() != "" {
		t.Errorf("rich text should be empty string, got %q / %q", r.Basics.Summary, r.Basics.Objective)
	}
	if r.Basics.Name != "Ada" {
		t.Errorf("name = %q, want Ada", r.Basics.Name)
	}
}

func TestUpsertWorkScenario(t *testing.T) {
	r := NewResume()
	acme := r.UpsertWork(WorkInput{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", CurrentlyWorking: true})
	old := r.UpsertWork(WorkInput{Company: "Old Co", Position: "Intern", StartDate: "2018-06-01", CurrentlyWorking: false})

	if !idPattern.MatchString(acme) || !idPattern.MatchString(old) {
		t.Fatalf("ids should be 16 hex chars, got %q and %q", acme, old)
	}
	if len(r.Work) != 2 || r.Work[0].Company != "Acme" || r.Work[1].Company != "Old Co" {
		t.Fatalf("order = %v, want [Acme, Old Co]", workIDs(r.Work))
	}
	if r.Work[0].StartDate != "2020-01-01T04:00:00.000Z" {
		t.Errorf("startDate = %q", r.Work[0].StartDate)
	}
}

func TestUpsertWorkActiveDropsEndDate(t *testing.T) {
	r := NewResume()
	r.UpsertWork(WorkInput{Company: "Acme", StartDate: "2020-01-01", EndDate: "2022-01-01", CurrentlyWorking: true})
	if r.Work[0].EndDate != nil {
		t.Errorf("active entry kept end date %q", *r.Work[0].EndDate)
	}

	id := r.Work[0].ID
	r.UpsertWork(WorkInput{ID: id, Company: "Acme", StartDate: "2020-01-01", EndDate: "2022-01-01"})
	if r.Work[0].EndDate == nil || *r.Work[0].EndDate != "2022-01-01T04:00:00.000Z" {
		t.Errorf("endDate = %v, want 2022-01-01T04:00:00.000Z", r.Work[0].EndDate)
	}
}

func TestUpsertWorkReplacesInPlace(t *testing.T) {
	r := NewResume()
	id := r.UpsertWork(WorkInput{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01"})
	r.UpsertWork(WorkInput{Company: "Other", StartDate: "2010-01-01"})

	got := r.UpsertWork(WorkInput{ID: id, Company: "Acme Corp", Position: "Lead", StartDate: "2020-01-01"})

	if got != id {
		t.Errorf("update regenerated id: %q -> %q", id, got)
	}
	if len(r.Work) != 2 {
		t.Fatalf("update should not append, have %d entries", len(r.Work))
	}
	if r.Work[0].ID != id || r.Work[0].Company != "Acme Corp" || r.Work[0].Position != "Lead" {
		t.Errorf("entry not replaced: %+v", r.Work[0])
	}
}

func TestUpsertWorkUnknownIDAppends(t *testing.T) {
	r := NewResume()
	got := r.UpsertWork(WorkInput{ID: "doesnotexist", Company: "Acme"})
	if got == "doesnotexist" || !idPattern.MatchString(got) {
		t.Errorf("unknown id should get a fresh identity, got %q", got)
	}
	if len(r.Work) != 1 {
		t.Errorf("want 1 entry, got %d", len(r.Work))
	}
}

func TestDeleteWorkMissingIsNoop(t *testing.T) {
	r := NewResume()
	r.UpsertWork(WorkInput{Company: "Acme", StartDate: "2020-01-01"})
	r.UpsertWork(WorkInput{Company: "Old", StartDate: "2010-01-01"})
	before := workIDs(r.Work)

	if r.DeleteWork("missing") {
		t.Error("DeleteWork(missing) reported a removal")
	}
	after := workIDs(r.Work)
	if len(after) != len(before) || after[0] != before[0] || after[1] != before[1] {
		t.Errorf("collection changed: %v -> %v", before, after)
	}

	if !r.DeleteWork(before[0]) || len(r.Work) != 1 {
		t.Errorf("DeleteWork(%s) did not remove the entry", before[0])
	}
}

func TestUpsertEducation(t *testing.T) {
	r := NewResume()
	id := r.UpsertEducation(EducationInput{
		Institution:       "MIT",
		Area:              "Computer Science",
		StudyType:         "BSc",
		StartDate:         "2012-09-01",
		EndDate:           "2016-06-01",
		CurrentlyStudying: false,
		GPA:               "3.9",
		Courses:           " Algorithms, ,Compilers ,  ",
		Summary:           "Thesis on parsers",
	})
	r.UpsertEducation(EducationInput{Institution: "Night School", CurrentlyStudying: true, EndDate: "2030-01-01"})

	if r.Education[0].Institution != "Night School" || r.Education[0].EndDate != nil {
		t.Errorf("active education should sort first without end date: %+v", r.Education[0])
	}
	mit := r.Education[1]
	if mit.ID != id {
		t.Errorf("id = %q, want %q", mit.ID, id)
	}
	if len(mit.Courses) != 2 || mit.Courses[0] != "Algorithms" || mit.Courses[1] != "Compilers" {
		t.Errorf("courses = %q", mit.Courses)
	}
	if mit.Summary.String() != "<p>Thesis on parsers</p>" {
		t.Errorf("summary = %q", mit.Summary.String())
	}

	if r.DeleteEducation("nope") {
		t.Error("DeleteEducation(nope) reported a removal")
	}
	if !r.DeleteEducation(id) || len(r.Education) != 1 {
		t.Error("DeleteEducation(id) did not remove the entry")
	}
}

func TestAddSkillCaseInsensitive(t *testing.T) {
	r := NewResume()
	if !r.AddSkill("Python") {
		t.Fatal("first AddSkill should succeed")
	}
	if r.AddSkill("python") {
		t.Error("duplicate skill (different case) was added")
	}
	if r.AddSkill("   ") {
		t.Error("blank skill was added")
	}
	if len(r.Skills.Technologies) != 1 || r.Skills.Technologies[0].Name != "Python" {
		t.Errorf("skills = %+v", r.Skills.Technologies)
	}
}

func TestDeleteSkill(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		removed bool
		want    []string
	}{
		{name: "first", index: 0, removed: true, want: []string{"Go", "SQL"}},
		{name: "last", index: 2, removed: true, want: []string{"Python", "Go"}},
		{name: "negative", index: -1, removed: false, want: []string{"Python", "Go", "SQL"}},
		{name: "out of range", index: 3, removed: false, want: []string{"Python", "Go", "SQL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResume()
			for _, s := range []string{"Python", "Go", "SQL"} {
				r.AddSkill(s)
			}

			if got := r.DeleteSkill(tt.index); got != tt.removed {
				t.Errorf("DeleteSkill(%d) = %v, want %v", tt.index, got, tt.removed)
			}
			if len(r.Skills.Technologies) != len(tt.want) {
				t.Fatalf("skills = %+v, want %v", r.Skills.Technologies, tt.want)
			}
			for i, name := range tt.want {
				if r.Skills.Technologies[i].Name != name {
					t.Errorf("skill %d = %q, want %q", i, r.Skills.Technologies[i].Name, name)
				}
			}
		})
	}
}

func TestSplitCourses(t *testing.T) {
	if got := SplitCourses(""); got == nil || len(got) != 0 {
		t.Errorf("SplitCourses(\"\") = %#v, want empty non-nil", got)
	}
	if got := SplitCourses("a,b , c"); len(got) != 3 || got[2] != "c" {
		t.Errorf("SplitCourses() = %q", got)
	}
}
