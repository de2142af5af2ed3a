package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// Ordered pattern lists: the first pattern that matches wins, so the
// explicit "Field:" forms always beat the looser phrase forms.
var departmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdepartment\s*:\s*(.+)`),
	regexp.MustCompile(`(?i)\bdept\s*:\s*(.+)`),
	regexp.MustCompile(`(?i)\b([A-Za-z][\w&-]*(?:\s+[A-Za-z][\w&-]*){0,2})\s+department\b`),
	regexp.MustCompile(`(?i)\bdepartment\s+of\s+(.+)`),
}

var officePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\boffice\s*:\s*(.+)`),
	regexp.MustCompile(`(?i)\blocation\s*:\s*(.+)`),
	regexp.MustCompile(`(?i)\bbased\s+in\s+(.+)`),
	regexp.MustCompile(`(?i)\blocated\s+in\s+(.+)`),
	regexp.MustCompile(`(?i)\bin\s+(.+)`),
	regexp.MustCompile(`(?i)\bat\s+(.+)`),
}

// skillLabelRe strips a leading "Skill(s):" label from a candidate fragment.
var skillLabelRe = regexp.MustCompile(`(?i)^skills?\s*:\s*`)

// stopwords are filler captures that mean a pattern over-matched; such a
// capture is rejected so the next pattern in the list gets a chance.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "in": {}, "at": {},
	"from": {}, "for": {}, "with": {}, "our": {}, "this": {}, "that": {},
}

// skillDelimiters split freeform model text into skill candidates.
func skillDelimiter(r rune) bool {
	switch r {
	case '\n', ',', ';', '|', '/':
		return true
	}
	return false
}

// parseHeuristic recovers filters from a non-JSON model response. Patterns
// run against the model text first; if none match there, against the
// original query. Returns ok=false when nothing usable is found.
func parseHeuristic(modelText, query string) (domain.Filters, bool) {
	dept := matchFirst(departmentPatterns, modelText)
	office := matchFirst(officePatterns, modelText)
	if dept == "" && office == "" {
		dept = matchFirst(departmentPatterns, query)
		office = matchFirst(officePatterns, query)
	}

	// "in <X>" happily swallows department clauses; a department is not an office.
	if office != "" && strings.HasSuffix(strings.ToLower(office), "department") {
		office = ""
	}

	skills := skillCandidates(modelText)

	filters := domain.Filters{
		Skills:       skills,
		Department:   dept,
		OfficeNumber: office,
	}
	if filters.Empty() {
		return domain.Filters{}, false
	}
	return filters, true
}

// matchFirst returns the cleaned capture of the first pattern that matches.
func matchFirst(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := cleanValue(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// cleanValue truncates a captured value at the first comma, semicolon, or
// newline, then trims whitespace and leading filler words the looser
// patterns tend to swallow ("from the Sales" -> "Sales").
func cleanValue(v string) string {
	if i := strings.IndexAny(v, ",;\n"); i >= 0 {
		v = v[:i]
	}
	fields := strings.Fields(v)
	for len(fields) > 0 {
		if _, ok := stopwords[strings.ToLower(fields[0])]; !ok {
			break
		}
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// skillCandidates splits model text on delimiters into trimmed candidates,
// dropping fragments that are department/office clauses rather than skills.
func skillCandidates(text string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(text, skillDelimiter) {
		part = strings.TrimSpace(skillLabelRe.ReplaceAllString(strings.TrimSpace(part), ""))
		if part == "" || !hasAlnum(part) {
			continue
		}
		if matchesAny(departmentPatterns, part) || matchesAny(officePatterns, part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
