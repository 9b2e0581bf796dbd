package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmptyResumeJSONShape(t *testing.T) {
	out, err := json.Marshal(NewResume())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"basics":{"name":"","label":"","email":"","phone":"","summary":"","objective":"",` +
		`"location":{"city":""},"profiles":[]},"work":[],"skills":{"technologies":[]},"education":[]}`
	if string(out) != want {
		t.Errorf("empty resume JSON\n got: %s\nwant: %s", out, want)
	}
}

func TestWorkEntryWireFields(t *testing.T) {
	r := NewResume()
	r.UpsertWork(WorkInput{Company: "Acme", Position: "Engineer", StartDate: "2020-01-01", CurrentlyWorking: true})

	out, err := json.Marshal(r.Work[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "name", "position", "startDate", "endDate", "isWorkingHere", "summary", "highlights", "url", "years"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("work entry JSON misses %q: %s", key, out)
		}
	}
	if fields["endDate"] != nil {
		t.Errorf("endDate = %v, want null", fields["endDate"])
	}
	if fields["name"] != "Acme" {
		t.Errorf("company must be stored under \"name\", got %v", fields["name"])
	}
}

func TestUnmarshalSortsAndFillsDefaults(t *testing.T) {
	raw := `{
		"basics": {"name": "Ada", "summary": "<p>Hi</p>"},
		"work": [
			{"id": "a", "name": "Old", "startDate": "2010-01-01T04:00:00.000Z", "isWorkingHere": false},
			{"id": "b", "name": "Now", "startDate": "", "isWorkingHere": true}
		]
	}`

	var r Resume
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r.Work[0].ID != "b" {
		t.Errorf("loaded work not re-sorted: %v", workIDs(r.Work))
	}
	if r.Education == nil || r.Skills.Technologies == nil || r.Work[0].Highlights == nil {
		t.Error("missing collections should decode as empty slices")
	}
	if r.Basics.Summary.Plain() != "Hi" {
		t.Errorf("summary plain = %q", r.Basics.Summary.Plain())
	}
}

func TestJSONRoundTripPreservesDocument(t *testing.T) {
	r := NewResume()
	r.UpdateBasics(BasicsInput{Name: "Ada", Summary: "Math • Code", City: "London"})
	r.UpsertWork(WorkInput{Company: "Old Co", StartDate: "2018-06-01", EndDate: "2019-01-01", Summary: "x"})
	r.UpsertWork(WorkInput{Company: "Acme", StartDate: "2020-01-01", CurrentlyWorking: true})
	r.UpsertEducation(EducationInput{Institution: "MIT", Courses: "A, B"})
	r.AddSkill("Go")

	out, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Resume
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff(r, &back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := NewResume()
	r.UpsertWork(WorkInput{Company: "Acme", StartDate: "2020-01-01", EndDate: "2021-01-01"})
	r.UpsertEducation(EducationInput{Institution: "MIT", Courses: "A"})

	c := r.Clone()
	*c.Work[0].EndDate = "changed"
	c.Education[0].Courses[0] = "changed"
	c.Work[0].Company = "changed"

	if *r.Work[0].EndDate == "changed" || r.Education[0].Courses[0] == "changed" || r.Work[0].Company == "changed" {
		t.Error("Clone shares state with the original")
	}
}
