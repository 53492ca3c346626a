package jobs

import (
	"encoding/json"
	"os"
	"reflect"
	"testing"
)

func ptr(f float64) *float64 { return &f }

func TestCloneIsDeep(t *testing.T) {
	original := &Job{
		ID:     "a",
		Skills: []string{"Go"},
		Salary: &Salary{Min: ptr(10), Currency: "USD"},
		Match:  Match{MatchedSkills: []string{"Go"}},
	}

	c := original.Clone()
	c.Skills[0] = "Rust"
	c.Salary.Currency = "EUR"
	c.MatchedSkills[0] = "Rust"
	c.Score = 99

	if original.Skills[0] != "Go" || original.Salary.Currency != "USD" || original.MatchedSkills[0] != "Go" || original.Score != 0 {
		t.Fatalf("original mutated through clone: %+v", original)
	}
}

func TestExcludePreservesOrder(t *testing.T) {
	v := &Jobs{Items: []*Job{{ID: "1", Company: "A"}, {ID: "2", Company: "B"}, {ID: "3", Company: "A"}, {ID: "4", Company: "C"}}}

	removed := v.Exclude(CompanyField, []string{"A"})

	if !reflect.DeepEqual(removed, []string{"1", "3"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if v.Len() != 2 || v.Items[0].ID != "2" || v.Items[1].ID != "4" {
		t.Fatalf("unexpected remaining jobs: %+v", v.Items)
	}
}

func TestReportByCompany(t *testing.T) {
	v := &Jobs{Items: []*Job{
		{
			ID:       "1",
			Title:    "Go Developer",
			Company:  "Acme",
			ApplyURL: "https://example.com",
			Location: "Berlin",
			Salary:   &Salary{Min: ptr(100), Max: ptr(200), Currency: "EUR", IsPredicted: true},
			Match:    Match{Score: 82, Badge: BadgeHigh, Summary: "Matched skills: Go"},
		},
	}}

	entries := v.ReportByCompany()["Acme"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry["salary"] != "100-200 EUR (predicted)" {
		t.Fatalf("unexpected salary: %q", entry["salary"])
	}
	if entry["match_score"] != "82" || entry["match_badge"] != "high" {
		t.Fatalf("unexpected match fields: %v", entry)
	}
	if entry["match_summary"] != "Matched skills: Go" {
		t.Fatalf("unexpected summary: %q", entry["match_summary"])
	}
}

func TestSalaryStringFallsBackToText(t *testing.T) {
	job := &Job{SalaryText: "$25/hr"}
	if got := job.SalaryString(); got != "$25/hr" {
		t.Fatalf("unexpected salary string: %q", got)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	v := &Jobs{Items: []*Job{{ID: "1", Title: "Go Developer"}}}

	name, err := v.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if len(decoded.Jobs) != 1 || decoded.Jobs[0]["title"] != "Go Developer" {
		t.Fatalf("unexpected dump content: %s", data)
	}
	if _, ok := decoded.Jobs[0]["matchScore"]; !ok {
		t.Fatalf("expected embedded match fields in dump: %s", data)
	}
}

func TestKeepAndLoadFromFile(t *testing.T) {
	v := &Jobs{Items: []*Job{{ID: "1", Title: "Go"}, {ID: "2", Title: "Rust"}, {ID: "3", Title: "Go SRE"}}}

	removed := v.Keep(func(j *Job) bool { return j.Title != "Rust" })
	if !reflect.DeepEqual(removed, []string{"2"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if !reflect.DeepEqual(v.IDs(), []string{"1", "3"}) {
		t.Fatalf("unexpected remaining ids: %v", v.IDs())
	}

	name, err := v.DumpToTmpFile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	loaded, err := LoadFromFile(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(loaded.IDs(), []string{"1", "3"}) {
		t.Fatalf("unexpected loaded ids: %v", loaded.IDs())
	}

	if _, err := LoadFromFile(name + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFallbackReturnsFreshCopies(t *testing.T) {
	first := Fallback()
	if first.Len() != 8 {
		t.Fatalf("expected 8 fallback jobs, got %d", first.Len())
	}
	for _, job := range first.Items {
		if job.Source != SourceFallback {
			t.Fatalf("expected fallback source, got %q", job.Source)
		}
		if !job.HasPostedDate() {
			t.Fatalf("expected posted date for job %s", job.ID)
		}
	}

	first.Items[0].Title = "changed"
	if Fallback().Items[0].Title != "Senior React Developer" {
		t.Fatalf("fallback set was mutated")
	}
}
