package ats

import (
	"fmt"
	"math"
	"strings"
)

// ExtractKeywords returns the distinct non-stop-word tokens of at least three
// letters in text, in order of first appearance.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range findAll(keywordTokenRe, lower) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// ExtractPhrases returns the distinct two-word phrases in text where neither
// word is a stop word or shorter than three letters. Phrases never span a
// sentence or line break.
func ExtractPhrases(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, segment := range phraseBreakRe.Split(strings.ToLower(text), -1) {
		tokens := findAll(wordTokenRe, segment)
		for i := 0; i+1 < len(tokens); i++ {
			a, b := tokens[i], tokens[i+1]
			if !isContentWord(a) || !isContentWord(b) {
				continue
			}
			phrase := a + " " + b
			if _, dup := seen[phrase]; dup {
				continue
			}
			seen[phrase] = struct{}{}
			out = append(out, phrase)
		}
	}
	return out
}

func isContentWord(w string) bool {
	if len(w) < 3 {
		return false
	}
	_, stop := stopWords[w]
	return !stop
}

// checkKeywordMatch returns false when the job description is blank; the
// check is then left out of the result entirely.
func (a *Analyzer) checkKeywordMatch(resume, jobDescription string) (Finding, bool) {
	if strings.TrimSpace(jobDescription) == "" {
		return Finding{}, false
	}
	f := Finding{ID: CheckKeywordMatch, Label: "Job description keywords", Weight: weightKeywordMatch}
	t := a.limits().Keywords

	keywords := ExtractKeywords(jobDescription)
	if len(keywords) == 0 {
		f.Status = StatusWarning
		f.Message = "The job description did not contain any meaningful keywords to compare against."
		return f, true
	}

	haystack := strings.ToLower(resume)
	var missing []string
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matched++
		} else {
			missing = append(missing, kw)
		}
	}

	phrases := ExtractPhrases(jobDescription)
	var matchedPhrases []string
	for _, p := range phrases {
		if strings.Contains(haystack, p) {
			matchedPhrases = append(matchedPhrases, p)
		}
	}

	ratio := float64(matched) / float64(len(keywords))
	pct := int(math.Round(ratio * 100))
	shown := firstN(missing, t.MaxMissingTerms)
	f.Details = shown

	summary := fmt.Sprintf("%d of %d job keywords found (%d%%)", matched, len(keywords), pct)
	if len(phrases) > 0 {
		summary += fmt.Sprintf(", %d of %d key phrases", len(matchedPhrases), len(phrases))
	}
	missingNote := ""
	if len(shown) > 0 {
		missingNote = " Missing: " + strings.Join(shown, ", ")
		if extra := len(missing) - len(shown); extra > 0 {
			missingNote += fmt.Sprintf(" (+%d more)", extra)
		}
		missingNote += "."
	}

	switch {
	case ratio >= t.Pass:
		f.Status = StatusPass
		f.Message = "Strong keyword alignment: " + summary + "." + missingNote
	case ratio >= t.Warn:
		f.Status = StatusWarning
		f.Message = "Partial keyword alignment: " + summary + "." + missingNote
	default:
		f.Status = StatusFail
		f.Message = "Weak keyword alignment: " + summary + "." + missingNote
	}
	return f, true
}
