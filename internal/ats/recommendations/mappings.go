package recommendations

import (
	"fmt"
	"strings"

	"resume-ats/internal/ats"
)

type guidance struct {
	category string
	title    string
	action   string
}

var checkGuidance = map[string]guidance{
	ats.CheckSectionSummary: {
		category: "STRUCTURE",
		title:    "Add a summary section",
		action:   "Open with a 2-3 line \"Professional Summary\" that names your role, years of experience and core strengths.",
	},
	ats.CheckSectionExperience: {
		category: "STRUCTURE",
		title:    "Add an experience section",
		action:   "List roles under a \"Work Experience\" heading with company, title, dates and bullet points.",
	},
	ats.CheckSectionEducation: {
		category: "STRUCTURE",
		title:    "Add an education section",
		action:   "Add an \"Education\" heading with degree, institution and graduation date, plus relevant certifications.",
	},
	ats.CheckSectionSkills: {
		category: "SKILLS",
		title:    "Add a skills section",
		action:   "Add a \"Skills\" heading listing tools, languages and methods using the exact names employers search for.",
	},
	ats.CheckWordCount: {
		category: "STRUCTURE",
		title:    "Adjust resume length",
		action:   "Expand thin roles with outcomes if the resume runs short, or trim older, less relevant detail if it runs long.",
	},
	ats.CheckActionVerbs: {
		category: "EXPERIENCE",
		title:    "Start bullets with action verbs",
		action:   "Rewrite bullet points to open with a strong past-tense verb such as Led, Built, Reduced or Launched.",
	},
	ats.CheckMetrics: {
		category: "EXPERIENCE",
		title:    "Quantify your achievements",
		action:   "Add numbers to more of your bullets: percentages, revenue, time saved, team size or volume handled.",
	},
	ats.CheckKeywordMatch: {
		category: "ATS",
		title:    "Align with the job description",
		action:   "Mirror the job description's terminology in your summary, skills and experience bullets.",
	},
	ats.CheckDateFormat: {
		category: "FORMATTING",
		title:    "Use one date format",
		action:   "Pick a single format such as \"Jan 2020 - Mar 2023\" and apply it to every role and degree.",
	},
	ats.CheckPronouns: {
		category: "FORMATTING",
		title:    "Remove personal pronouns",
		action:   "Drop \"I\", \"my\" and \"we\"; write in implied first person starting with the action.",
	},
	ats.CheckReadability: {
		category: "FORMATTING",
		title:    "Shorten long sentences",
		action:   "Keep sentences under 20 words and split any sentence over 30 words into separate bullets.",
	},
}

func fromIssues(issues []Issue, weakOpeners []string) []Recommendation {
	out := make([]Recommendation, 0, len(issues))
	for _, issue := range issues {
		g, ok := checkGuidance[issue.CheckID]
		if !ok {
			g = guidance{category: "ATS", title: strings.TrimSpace(issue.Label)}
			if g.title == "" {
				g.title = "Issue found"
			}
			g.action = "Fix: " + g.title
		}
		action := g.action
		if issue.CheckID == ats.CheckActionVerbs {
			if weak := uniqueSortedStrings(weakOpeners); len(weak) > 0 {
				action += " Replace openers like: " + strings.Join(weak, ", ")
			}
		}
		why := strings.TrimSpace(issue.Message)
		if why == "" {
			why = "Improves clarity and relevance for recruiters."
		}
		severity, impact := mapStatus(issue.Status, issue.Weight)
		out = append(out, Recommendation{
			ID:       "ISSUE_" + slugify(issue.CheckID),
			CheckID:  issue.CheckID,
			Category: g.category,
			Severity: severity,
			Title:    g.title,
			Why:      why,
			Action:   action,
			Impact:   impact,
		})
	}
	return out
}

func fromMissingJDKeywords(k []string, status string) []Recommendation {
	keywords := uniqueSortedStrings(k)
	if len(keywords) == 0 {
		return nil
	}
	severity := "warning"
	if status == string(ats.StatusFail) {
		severity = "critical"
	}
	return []Recommendation{
		{
			ID:       "ATS_MISSING_JD_KEYWORDS",
			CheckID:  ats.CheckKeywordMatch,
			Category: "ATS",
			Severity: severity,
			Title:    "Add missing job keywords",
			Why:      "Improves ATS match and helps recruiters quickly spot relevant skills.",
			Action:   "Add missing keywords naturally into Skills and Experience bullets to mirror the job description. Focus on: " + strings.Join(keywords, ", "),
			Impact:   "high",
		},
	}
}

func fromFormattingIssues(fi []string) []Recommendation {
	items := uniqueSortedStrings(fi)
	if len(items) == 0 {
		return nil
	}
	groups := map[string][]string{
		"layout":     {},
		"characters": {},
		"other":      {},
	}
	for _, item := range items {
		lower := strings.ToLower(item)
		switch {
		case strings.Contains(lower, "table") || strings.Contains(lower, "image") || strings.Contains(lower, "page"):
			groups["layout"] = append(groups["layout"], item)
		case strings.Contains(lower, "quote") || strings.Contains(lower, "character") || strings.Contains(lower, "all-caps"):
			groups["characters"] = append(groups["characters"], item)
		default:
			groups["other"] = append(groups["other"], item)
		}
	}

	type grouped struct {
		key   string
		items []string
	}
	orderedGroups := []grouped{
		{key: "layout", items: groups["layout"]},
		{key: "characters", items: groups["characters"]},
		{key: "other", items: groups["other"]},
	}

	out := make([]Recommendation, 0, 2)
	for _, group := range orderedGroups {
		if len(group.items) == 0 {
			continue
		}
		title := "Fix ATS formatting issues"
		action := "Fix formatting issues: " + strings.Join(group.items, "; ")
		id := "ATS_FORMATTING_" + strings.ToUpper(group.key)
		switch group.key {
		case "layout":
			title = "Simplify the layout"
			action = "Use a single-column layout without tables, images or page markers. Found: " + strings.Join(group.items, "; ")
		case "characters":
			title = "Replace special characters"
			action = "Use straight quotes, plain bullets and normal capitalization. Found: " + strings.Join(group.items, "; ")
		}
		out = append(out, Recommendation{
			ID:       id,
			CheckID:  ats.CheckFormatting,
			Category: "FORMATTING",
			Severity: "warning",
			Title:    title,
			Why:      "Formatting issues reduce ATS readability and can hide key details.",
			Action:   action,
			Impact:   "medium",
		})
		if len(out) == 2 {
			break
		}
	}
	return out
}

func fromMissingContact(items []string, status string) []Recommendation {
	missing := uniqueSortedStrings(items)
	if len(missing) == 0 {
		return nil
	}
	severity := "warning"
	if status == string(ats.StatusFail) {
		severity = "critical"
	}
	return []Recommendation{
		{
			ID:       "MISSING_INFO_CONTACT",
			CheckID:  ats.CheckContactInfo,
			Category: "STRUCTURE",
			Severity: severity,
			Title:    "Complete your contact details",
			Why:      "Recruiters expect this detail to evaluate fit quickly.",
			Action:   fmt.Sprintf("Add the missing contact information at the top of the resume: %s.", strings.Join(missing, ", ")),
			Impact:   "high",
		},
	}
}
