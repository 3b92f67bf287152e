package ats

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

func (a *Analyzer) checkContactInfo(text string) Finding {
	f := Finding{ID: CheckContactInfo, Label: "Contact information", Weight: weightContactInfo}

	var found, missing []string
	for _, item := range []struct {
		name  string
		found func(string) bool
	}{
		{"email", func(s string) bool { return matches(emailRe, s) }},
		{"phone number", func(s string) bool { return len(findPhones(s)) > 0 }},
		{"LinkedIn profile", func(s string) bool { return matches(linkedInRe, s) }},
	} {
		if item.found(text) {
			found = append(found, item.name)
		} else {
			missing = append(missing, item.name)
		}
	}
	f.Details = missing

	switch len(found) {
	case 3:
		f.Status = StatusPass
		f.Message = "Email, phone number and LinkedIn profile found."
	case 0:
		f.Status = StatusFail
		f.Message = "No email, phone number or LinkedIn profile found. Recruiters and ATS parsers need a way to reach you."
	default:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("Found %s; missing %s.", joinList(found), joinList(missing))
	}
	return f
}

func (a *Analyzer) checkSection(id, name string, weight int, re *regexp.Regexp, text string) Finding {
	f := Finding{ID: id, Label: name + " section", Weight: weight}
	if m := re.FindString(text); m != "" {
		f.Status = StatusPass
		f.Message = fmt.Sprintf("Found a %s section (%q).", name, strings.Join(strings.Fields(m), " "))
		return f
	}
	f.Status = StatusFail
	f.Message = fmt.Sprintf("No %s section heading found. Add a clearly labelled %q heading so ATS parsers can locate it.", name, name)
	return f
}

func (a *Analyzer) checkWordCount(text string) Finding {
	f := Finding{ID: CheckWordCount, Label: "Word count", Weight: weightWordCount}
	t := a.limits().WordCount
	n := len(words(text))

	switch {
	case n < t.Min:
		f.Status = StatusFail
		f.Message = fmt.Sprintf("Only %d words. Resumes under %d words rarely give an ATS enough content; aim for %d-%d.", n, t.Min, t.Ideal, t.Max)
	case n < t.Ideal:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("%d words. Adding detail to reach %d-%d words usually improves matching.", n, t.Ideal, t.Max)
	case n <= t.Max:
		f.Status = StatusPass
		f.Message = fmt.Sprintf("%d words, within the recommended %d-%d range.", n, t.Ideal, t.Max)
	case n <= t.Long:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("%d words. Slightly long; consider tightening toward %d words.", n, t.Max)
	default:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("%d words is too long. Recruiters skim; cut to under %d words and keep only the most relevant experience.", n, t.Long)
	}
	return f
}

func isBullet(line string) bool {
	if line == "" {
		return false
	}
	if matches(bulletGlyphRe, line) || matches(numberedItemRe, line) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsLower(r)
}

func (a *Analyzer) checkActionVerbs(text string) Finding {
	f := Finding{ID: CheckActionVerbs, Label: "Action verbs", Weight: weightActionVerbs}
	t := a.limits().ActionVerbs

	bullets, matched := 0, 0
	seenWeak := make(map[string]struct{})
	var weak []string
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if !isBullet(line) {
			continue
		}
		fields := words(bulletMarkerRe.ReplaceAllString(line, ""))
		if len(fields) == 0 {
			continue
		}
		first := strings.ToLower(trimWord(fields[0]))
		if first == "" {
			continue
		}
		bullets++
		if _, ok := actionVerbs[first]; ok {
			matched++
			continue
		}
		if _, ok := seenWeak[first]; !ok {
			seenWeak[first] = struct{}{}
			weak = append(weak, first)
		}
	}

	if bullets == 0 {
		f.Status = StatusWarning
		f.Message = "No bullet points detected. Use bulleted lines that start with strong action verbs such as \"Led\" or \"Developed\"."
		return f
	}

	ratio := float64(matched) / float64(bullets)
	f.Details = firstN(weak, 5)
	switch {
	case ratio >= t.Pass:
		f.Status = StatusPass
		f.Message = fmt.Sprintf("%d of %d bullet points start with an action verb.", matched, bullets)
	case ratio >= t.Warn:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("Only %d of %d bullet points start with an action verb. Lead with verbs like \"Built\", \"Led\" or \"Improved\".", matched, bullets)
	default:
		f.Status = StatusFail
		f.Message = fmt.Sprintf("%d of %d bullet points start with an action verb. Rewrite bullets to open with what you did.", matched, bullets)
	}
	return f
}

func (a *Analyzer) checkMetrics(text string) Finding {
	f := Finding{ID: CheckMetrics, Label: "Quantified achievements", Weight: weightMetrics}
	t := a.limits().Metrics

	total := 0
	var examples []string
	for _, re := range metricPatterns {
		found := findAll(re, text)
		total += len(found)
		for _, m := range found {
			if len(examples) < 5 {
				examples = append(examples, strings.TrimSpace(m))
			}
		}
	}
	f.Details = examples

	switch {
	case total >= t.Pass:
		f.Status = StatusPass
		f.Message = fmt.Sprintf("Found %d quantified results such as percentages, amounts and counts.", total)
	case total >= t.Warn:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("Found %d quantified results. Add more numbers (percentages, revenue, team size) to show impact.", total)
	default:
		f.Status = StatusFail
		f.Message = fmt.Sprintf("Found %d quantified results. Achievements without numbers are hard for reviewers to weigh.", total)
	}
	return f
}

func (a *Analyzer) checkFormatting(text string) Finding {
	f := Finding{ID: CheckFormatting, Label: "ATS-friendly formatting", Weight: weightFormatting}
	t := a.limits().Formatting

	var issues []string
	if matches(smartQuotesRe, text) {
		issues = append(issues, "smart or curly quotes")
	}
	if matches(pipeTableRe, text) || strings.Contains(text, "\t") {
		issues = append(issues, "table-like layout using pipes or tabs")
	}
	if matches(imageMentionRe, text) {
		issues = append(issues, "references to images or photos")
	}
	if matches(pageNumberRe, text) {
		issues = append(issues, "page number markers")
	}
	if n := countUnusualChars(text); n > t.UnusualCharLimit {
		issues = append(issues, fmt.Sprintf("%d unusual special characters", n))
	}
	if n := countAllCapsLines(text, t.AllCapsLineLength); n > t.AllCapsLineLimit {
		issues = append(issues, fmt.Sprintf("%d long all-caps lines", n))
	}
	f.Details = issues

	switch {
	case len(issues) == 0:
		f.Status = StatusPass
		f.Message = "No ATS-unfriendly formatting detected."
	case len(issues) < t.FailIssues:
		f.Status = StatusWarning
		f.Message = "Possible formatting problems: " + strings.Join(issues, "; ") + "."
	default:
		f.Status = StatusFail
		f.Message = fmt.Sprintf("%d formatting problems that may confuse ATS parsers: %s.", len(issues), strings.Join(issues, "; "))
	}
	return f
}

func countUnusualChars(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if strings.ContainsRune(safePunctuation, r) {
			continue
		}
		n++
	}
	return n
}

func countAllCapsLines(text string, minLength int) int {
	n := 0
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) <= minLength {
			continue
		}
		upper, lower := false, false
		for _, r := range line {
			if unicode.IsUpper(r) {
				upper = true
			} else if unicode.IsLower(r) {
				lower = true
				break
			}
		}
		if upper && !lower {
			n++
		}
	}
	return n
}

func (a *Analyzer) checkDateFormat(text string) Finding {
	f := Finding{ID: CheckDateFormat, Label: "Date formatting", Weight: weightDateFormat}

	remaining := maskAll(emailRe, text)
	remaining = maskPhones(remaining)
	var formats []string
	for _, df := range dateFormats {
		if !matches(df.re, remaining) {
			continue
		}
		formats = append(formats, df.name)
		remaining = maskAll(df.re, remaining)
	}
	f.Details = formats

	switch len(formats) {
	case 0:
		f.Status = StatusWarning
		f.Message = "No dates found. Add start and end dates to each role and degree."
	case 1:
		f.Status = StatusPass
		f.Message = fmt.Sprintf("Dates use one consistent format (%s).", formats[0])
	default:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("Dates use %d different formats (%s). Pick one format and use it everywhere.", len(formats), strings.Join(formats, ", "))
	}
	return f
}

func (a *Analyzer) checkPronouns(text string) Finding {
	f := Finding{ID: CheckPronouns, Label: "Personal pronouns", Weight: weightPronouns}

	found := findAll(pronounRe, text)
	seen := make(map[string]struct{}, len(found))
	for _, p := range found {
		p = strings.ToLower(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		f.Details = append(f.Details, p)
	}

	n := len(found)
	switch {
	case n == 0:
		f.Status = StatusPass
		f.Message = "No first-person pronouns found."
	case n <= a.limits().Pronouns.WarnMax:
		f.Status = StatusWarning
		f.Message = fmt.Sprintf("Found %d first-person pronouns (%s). Resumes read better in implied first person.", n, strings.Join(f.Details, ", "))
	default:
		f.Status = StatusFail
		f.Message = fmt.Sprintf("Found %d first-person pronouns (%s). Drop \"I\", \"my\" and \"we\" and start lines with the action instead.", n, strings.Join(f.Details, ", "))
	}
	return f
}

func (a *Analyzer) checkReadability(text string) Finding {
	f := Finding{ID: CheckReadability, Label: "Readability", Weight: weightReadability}
	t := a.limits().Readability

	sentences, totalWords, totalChars, long := 0, 0, 0, 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= t.MinSentenceChars {
			continue
		}
		ws := words(s)
		sentences++
		totalWords += len(ws)
		for _, w := range ws {
			totalChars += utf8.RuneCountInString(trimWord(w))
		}
		if len(ws) > t.LongSentenceWords {
			long++
		}
	}

	if sentences == 0 || totalWords == 0 {
		f.Status = StatusWarning
		f.Message = "Not enough complete sentences to assess readability."
		return f
	}

	avgWords := float64(totalWords) / float64(sentences)
	avgLen := float64(totalChars) / float64(totalWords)
	stats := fmt.Sprintf("average %.1f words per sentence, %.1f characters per word, %d sentences over %d words", avgWords, avgLen, long, t.LongSentenceWords)

	switch {
	case avgWords <= t.PassAvgWords && avgLen <= t.PassAvgWordLength && long == 0:
		f.Status = StatusPass
		f.Message = "Easy to read: " + stats + "."
	case avgWords <= t.WarnAvgWords || long <= t.WarnLongSentences:
		f.Status = StatusWarning
		f.Message = "Somewhat dense: " + stats + ". Shorter sentences scan faster."
	default:
		f.Status = StatusFail
		f.Message = "Hard to read: " + stats + ". Break long sentences into focused bullet points."
	}
	return f
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
