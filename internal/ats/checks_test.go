package ats

import (
	"reflect"
	"strings"
	"testing"
)

func repeatWords(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestCheckContactInfo(t *testing.T) {
	a := Default()
	cases := []struct {
		name    string
		text    string
		status  Status
		missing []string
	}{
		{name: "none", text: "No contact here", status: StatusFail, missing: []string{"email", "phone number", "LinkedIn profile"}},
		{name: "email_only", text: "jane@example.com", status: StatusWarning, missing: []string{"phone number", "LinkedIn profile"}},
		{name: "international_phone", text: "+44 20 7946 0958\njane@example.com", status: StatusWarning, missing: []string{"LinkedIn profile"}},
		{name: "all", text: "jane@example.com\n(555) 123-4567\nhttps://www.linkedin.com/in/jane-doe", status: StatusPass, missing: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkContactInfo(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%s)", tc.status, f.Status, f.Message)
			}
			if !reflect.DeepEqual(f.Details, tc.missing) {
				t.Fatalf("expected missing %v, got %v", tc.missing, f.Details)
			}
		})
	}
}

func TestCheckSectionSynonyms(t *testing.T) {
	a := Default()
	cases := []struct {
		id   string
		text string
	}{
		{CheckSectionSummary, "CAREER SUMMARY"},
		{CheckSectionSummary, "Objective"},
		{CheckSectionExperience, "Employment History"},
		{CheckSectionEducation, "Academic Background"},
		{CheckSectionEducation, "Certifications"},
		{CheckSectionSkills, "Core Competencies"},
		{CheckSectionSkills, "Technical Skills"},
	}
	for _, tc := range cases {
		res := a.Analyze(tc.text, "")
		f, _ := res.Find(tc.id)
		if f.Status != StatusPass {
			t.Fatalf("expected %s to pass for %q, got %s", tc.id, tc.text, f.Status)
		}
	}

	f := a.checkSection(CheckSectionSkills, "Skills", weightSectionSkills, sectionSkillsRe, "Skillsets")
	if f.Status != StatusFail {
		t.Fatalf("expected whole-word match only, got %s", f.Status)
	}
}

func TestCheckWordCountBands(t *testing.T) {
	a := Default()
	cases := []struct {
		n      int
		status Status
	}{
		{0, StatusFail},
		{199, StatusFail},
		{200, StatusWarning},
		{399, StatusWarning},
		{400, StatusPass},
		{800, StatusPass},
		{801, StatusWarning},
		{1200, StatusWarning},
		{1201, StatusWarning},
	}
	for _, tc := range cases {
		f := a.checkWordCount(repeatWords(tc.n))
		if f.Status != tc.status {
			t.Fatalf("%d words: expected %s, got %s", tc.n, tc.status, f.Status)
		}
	}

	long := a.checkWordCount(repeatWords(1201))
	slight := a.checkWordCount(repeatWords(900))
	if long.Message == slight.Message || !strings.Contains(long.Message, "too long") {
		t.Fatalf("expected distinct message for excessive length, got %q", long.Message)
	}
}

func TestCheckActionVerbs(t *testing.T) {
	a := Default()
	cases := []struct {
		name   string
		text   string
		status Status
		weak   []string
	}{
		{name: "no_bullets", text: "Summary\nExperienced engineer.", status: StatusWarning},
		{name: "half", text: "- Led launch\n- Built service\n- Responsible for ops\n- Helped team", status: StatusPass, weak: []string{"responsible", "helped"}},
		{name: "quarter", text: "- Responsible for a\n- Helped b\n• Led c\n* Worked d", status: StatusWarning, weak: []string{"responsible", "helped", "worked"}},
		{name: "none", text: "- Responsible for a\n- Helped b\n- Worked c", status: StatusFail, weak: []string{"responsible", "helped", "worked"}},
		{name: "numbered_and_lowercase", text: "1. Designed schema\n2) Migrated data\nresponsible for backups", status: StatusPass, weak: []string{"responsible"}},
		{name: "marker_only_lines_ignored", text: "-\n- \n- Led team", status: StatusPass},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkActionVerbs(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%s)", tc.status, f.Status, f.Message)
			}
			if !reflect.DeepEqual(f.Details, tc.weak) {
				t.Fatalf("expected weak openers %v, got %v", tc.weak, f.Details)
			}
		})
	}
}

func TestCheckMetrics(t *testing.T) {
	a := Default()
	cases := []struct {
		name   string
		text   string
		status Status
	}{
		{name: "none", text: "Worked on many things.", status: StatusFail},
		{name: "one", text: "Handled 40% of tickets.", status: StatusFail},
		{name: "few", text: "Handled 40% of tickets and saved $10K.", status: StatusWarning},
		{name: "many", text: "Grew to 1,200,000 users, cut costs 30%, raised $2M, served 50 customers, 3.5k requests.", status: StatusPass},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkMetrics(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%s)", tc.status, f.Status, f.Message)
			}
			if len(f.Details) > 5 {
				t.Fatalf("expected at most 5 examples, got %d", len(f.Details))
			}
		})
	}
}

func TestCheckFormatting(t *testing.T) {
	a := Default()
	cases := []struct {
		name   string
		text   string
		status Status
		issues int
	}{
		{name: "clean", text: "Plain text resume with normal punctuation: commas, periods (and) dashes - ok.", status: StatusPass},
		{name: "smart_quotes", text: "Called the “best” engineer", status: StatusWarning, issues: 1},
		{name: "tabs", text: "Name\tRole", status: StatusWarning, issues: 1},
		{name: "three_issues", text: "Go | Python | SQL\nSee photo attached\nPage 1 of 2", status: StatusFail, issues: 3},
		{name: "unusual_chars", text: strings.Repeat("★", 11), status: StatusWarning, issues: 1},
		{name: "caps_lines", text: strings.Repeat("SENIOR SOFTWARE ENGINEER AT EXAMPLE CORP\n", 3), status: StatusWarning, issues: 1},
		{name: "short_caps_ok", text: strings.Repeat("EXPERIENCE\n", 5), status: StatusPass},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkFormatting(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%v)", tc.status, f.Status, f.Details)
			}
			if len(f.Details) != tc.issues {
				t.Fatalf("expected %d issues, got %v", tc.issues, f.Details)
			}
		})
	}
}

func TestCheckDateFormat(t *testing.T) {
	a := Default()
	cases := []struct {
		name    string
		text    string
		status  Status
		formats []string
	}{
		{name: "none", text: "No dates at all", status: StatusWarning},
		{name: "month_year_not_double_counted", text: "Jan 2020 - Mar 2023\nSeptember 2016 - Dec 2019", status: StatusPass, formats: []string{"Month YYYY"}},
		{name: "iso", text: "2020-01 to 2021-06", status: StatusPass, formats: []string{"YYYY-MM"}},
		{name: "full_date_not_double_counted", text: "Started 01/15/2020", status: StatusPass, formats: []string{"MM/DD/YYYY"}},
		{name: "mixed", text: "Jan 2020 - 03/2021", status: StatusWarning, formats: []string{"Month YYYY", "MM/YYYY"}},
		{name: "phone_not_a_date", text: "Call 555-2020-1999\nJan 2020", status: StatusPass, formats: []string{"Month YYYY"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkDateFormat(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%v)", tc.status, f.Status, f.Details)
			}
			if !reflect.DeepEqual(f.Details, tc.formats) {
				t.Fatalf("expected formats %v, got %v", tc.formats, f.Details)
			}
		})
	}

	f := a.checkDateFormat("Jan 2020 - 03/2021")
	if !strings.Contains(f.Message, "2 different formats") {
		t.Fatalf("expected count in message, got %q", f.Message)
	}
}

func TestCheckPronouns(t *testing.T) {
	a := Default()
	cases := []struct {
		text   string
		status Status
	}{
		{"Led the platform team.", StatusPass},
		{"I led the platform team.", StatusWarning},
		{"We shipped our product to users.", StatusWarning},
		{"I built my tool and we shipped it to our users.", StatusFail},
		{"Improved mineral yield in Iowa.", StatusPass},
	}
	for _, tc := range cases {
		f := a.checkPronouns(tc.text)
		if f.Status != tc.status {
			t.Fatalf("%q: expected %s, got %s", tc.text, tc.status, f.Status)
		}
	}
}

func TestCheckReadability(t *testing.T) {
	a := Default()
	longSentence := repeatWords(35) + "."
	cases := []struct {
		name   string
		text   string
		status Status
	}{
		{name: "empty", text: "", status: StatusWarning},
		{name: "fragments_only", text: "Hi. Ok. Go!", status: StatusWarning},
		{name: "short_sentences", text: "Led the team. Shipped the product on time. Reduced costs.", status: StatusPass},
		{name: "one_long", text: longSentence, status: StatusWarning},
		{name: "many_long", text: strings.Repeat(longSentence+" ", 3), status: StatusFail},
		{name: "long_words", text: "Internationalization responsibilities characterization. Institutionalization accountabilities.", status: StatusWarning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := a.checkReadability(tc.text)
			if f.Status != tc.status {
				t.Fatalf("expected %s, got %s (%s)", tc.status, f.Status, f.Message)
			}
		})
	}
}

func TestJoinList(t *testing.T) {
	cases := map[string][]string{
		"":           nil,
		"a":          {"a"},
		"a and b":    {"a", "b"},
		"a, b and c": {"a", "b", "c"},
	}
	for want, in := range cases {
		if got := joinList(in); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestPhoneNumberIgnoresYearLists(t *testing.T) {
	cases := []struct {
		text  string
		phone bool
	}{
		{"Hackathon winner 2019 2020 2021", false},
		{"Years active: 2018 2019", false},
		{"Call 555 123 4567", true},
		{"020 7946 0958", true},
		{"+1 5551 2345 6789", true},
		{"2019-2020-2021", true},
		{"(555) 123-4567", true},
	}
	for _, tc := range cases {
		if got := len(findPhones(tc.text)) > 0; got != tc.phone {
			t.Fatalf("findPhones(%q) found=%v, want %v", tc.text, got, tc.phone)
		}
	}

	f := Default().checkContactInfo("jane@example.com\nHackathon winner 2019 2020 2021")
	if f.Status != StatusWarning || !strings.Contains(f.Message, "missing phone number") {
		t.Fatalf("expected phone number to be missing, got %s %q", f.Status, f.Message)
	}
}

func TestDateFormatCountsYearListNotMaskedAsPhone(t *testing.T) {
	f := Default().checkDateFormat("Hackathon winner 2019 2020 2021")
	if f.Status != StatusPass {
		t.Fatalf("expected year list to count as one date format, got %s %v", f.Status, f.Details)
	}
}
