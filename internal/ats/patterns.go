package ats

import "regexp"

// actionVerbs is the lexicon used to classify the first word of a bullet line.
var actionVerbs = toSet([]string{
	"accelerated", "accomplished", "achieved", "acquired", "adapted", "addressed", "administered",
	"advised", "advocated", "analyzed", "applied", "architected", "arranged", "assembled", "assessed",
	"assisted", "audited", "authored", "automated", "balanced", "boosted", "budgeted", "built",
	"calculated", "centralized", "chaired", "championed", "clarified", "coached", "collaborated",
	"compiled", "completed", "composed", "computed", "conceived", "conducted", "configured",
	"consolidated", "constructed", "consulted", "contributed", "controlled", "converted", "coordinated",
	"created", "cultivated", "customized", "cut", "debugged", "decreased", "defined", "delegated",
	"delivered", "deployed", "designed", "detected", "developed", "devised", "diagnosed", "directed",
	"documented", "doubled", "drafted", "drove", "earned", "edited", "eliminated", "enabled",
	"engineered", "enhanced", "established", "evaluated", "executed", "expanded", "expedited",
	"facilitated", "finalized", "forecasted", "formulated", "founded", "generated", "grew", "guided",
	"headed", "identified", "implemented", "improved", "increased", "influenced", "initiated",
	"innovated", "inspected", "installed", "instituted", "integrated", "interviewed", "introduced",
	"invented", "investigated", "launched", "led", "leveraged", "maintained", "managed", "marketed",
	"maximized", "measured", "mentored", "migrated", "minimized", "modernized", "monitored",
	"motivated", "negotiated", "operated", "optimized", "orchestrated", "organized", "oversaw",
	"partnered", "performed", "pioneered", "planned", "presented", "prioritized", "produced",
	"programmed", "promoted", "proposed", "prototyped", "published", "raised", "rebuilt",
	"recruited", "redesigned", "reduced", "refactored", "remodeled", "reorganized", "replaced",
	"researched", "resolved", "restructured", "revamped", "reviewed", "revitalized", "saved",
	"scaled", "scheduled", "secured", "shipped", "simplified", "solved", "spearheaded",
	"standardized", "streamlined", "strengthened", "supervised", "supported", "surpassed",
	"synthesized", "tested", "trained", "transformed", "translated", "tripled", "troubleshot",
	"unified", "upgraded", "utilized", "validated", "wrote",
})

// Section headers, matched anywhere in the text.
var (
	sectionSummaryRe    = regexp.MustCompile(`(?i)\b(professional\s+summary|career\s+summary|executive\s+summary|summary|profile|objective|about\s+me)\b`)
	sectionExperienceRe = regexp.MustCompile(`(?i)\b(work\s+experience|professional\s+experience|experience|employment(\s+history)?|work\s+history|career\s+history)\b`)
	sectionEducationRe  = regexp.MustCompile(`(?i)\b(education|academic\s+background|academic\s+history|qualifications|certifications?|training)\b`)
	sectionSkillsRe     = regexp.MustCompile(`(?i)\b(technical\s+skills|core\s+competencies|skills|competencies|technologies|expertise|proficiencies)\b`)
)

// Contact details.
var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`(?:\+\d{1,3}[\s.\-]?)?\(?\d{2,4}\)?[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)
	linkedInRe = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_\-%]+`)
)

// Bullet detection.
var (
	bulletGlyphRe  = regexp.MustCompile(`^[-•*–]`)
	numberedItemRe = regexp.MustCompile(`^\d{1,3}[.)]\s`)
	bulletMarkerRe = regexp.MustCompile(`^(?:[-•*–]+|\d{1,3}[.)])\s*`)
)

// metricPatterns are counted independently; a value can match more than one.
var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(?:\.\d+)?\s?%`),
	regexp.MustCompile(`(?i)\$\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:k|m|b|million|billion|thousand)\b)?`),
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\b`),
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?(?:k|m|mm|b|bn)\b`),
	regexp.MustCompile(`(?i)\b(?:increased|decreased|reduced|improved|grew|saved|generated|boosted|cut|raised|expanded|accelerated|doubled|tripled)\s+(?:[a-z\-]+\s+){0,4}?(?:by\s+)?\$?\d+`),
	regexp.MustCompile(`(?i)\b\d+\+?\s+(?:users|customers|clients|people|engineers|developers|employees|projects|teams|members|countries|markets|applications|apps|services|servers|products|stores|accounts|reports|students|hires|partners|vendors|locations|sites)\b`),
}

// Formatting hazards.
var (
	smartQuotesRe  = regexp.MustCompile("[“”‘’]")
	pipeTableRe    = regexp.MustCompile(`(?m)\|[^\n]*\|`)
	imageMentionRe = regexp.MustCompile(`(?i)\b(?:images?|photos?|photographs?|pictures?|headshots?|graphics?|logos?|icons?)\b`)
	pageNumberRe   = regexp.MustCompile(`(?i)\bpage\s+\d+\s*(?:of|/)\s*\d+\b`)
)

// safePunctuation lists the non-alphanumeric characters ATS parsers handle well.
const safePunctuation = ".,;:!?'\"()[]-/&@#%$+*=_•–—"

// dateFormats are ordered most specific first; matches are masked before the
// next format is tested.
var dateFormats = []struct {
	name string
	re   *regexp.Regexp
}{
	{"MM/DD/YYYY", regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)},
	{"YYYY-MM", regexp.MustCompile(`\b(?:19|20)\d{2}-(?:0[1-9]|1[0-2])(?:-\d{2})?\b`)},
	{"Month YYYY", regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?,?\s+(?:19|20)\d{2}\b`)},
	{"MM/YYYY", regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])/(?:19|20)\d{2}\b`)},
	{"MM-YYYY", regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])-(?:19|20)\d{2}\b`)},
	{"YYYY", regexp.MustCompile(`\b(?:19|20)\d{2}\b`)},
}

var pronounRe = regexp.MustCompile(`(?i)\b(?:i|me|my|mine|myself|we|us|our|ours)\b`)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	keywordTokenRe  = regexp.MustCompile(`\b[a-z]{3,}\b`)
	wordTokenRe     = regexp.MustCompile(`[a-z]+`)
	phraseBreakRe   = regexp.MustCompile(`[.!?;]+(?:\s|$)|\n`)
)

// stopWords are dropped from job-description keywords.
var stopWords = toSet([]string{
	"a", "about", "above", "across", "after", "again", "against", "all", "also", "am", "an", "and",
	"any", "are", "around", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing", "down", "during",
	"each", "etc", "every", "few", "for", "from", "further", "get", "had", "has", "have", "having",
	"he", "her", "here", "hers", "him", "his", "how", "i", "if", "in", "into", "is", "it", "its",
	"just", "like", "may", "me", "might", "more", "most", "must", "my", "need", "needs", "new",
	"no", "nor", "not", "now", "of", "off", "on", "once", "one", "only", "or", "other", "our",
	"ours", "out", "over", "own", "per", "plus", "same", "she", "should", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "then", "there", "these", "they", "this",
	"those", "through", "to", "too", "under", "until", "up", "upon", "us", "use", "using", "very",
	"via", "was", "we", "well", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "will", "with", "within", "without", "would", "you", "your", "yours",
	// job-posting boilerplate
	"ability", "able", "apply", "applicant", "applicants", "benefits", "candidate", "candidates",
	"company", "description", "duties", "environment", "equal", "employer", "experience",
	"experienced", "excellent", "including", "join", "job", "looking", "opportunity", "position",
	"preferred", "qualifications", "required", "requirements", "responsibilities", "responsible",
	"role", "seeking", "skills", "strong", "team", "work", "working", "year", "years",
})

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}
