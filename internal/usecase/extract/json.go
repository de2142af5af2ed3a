package extract

import (
	"encoding/json"
	"strings"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// Alternate key spellings accepted per logical field, checked in order
// against the lowercased response keys.
var (
	skillsKeys     = []string{"skills", "skill", "keywords"}
	departmentKeys = []string{"department", "dept"}
	officeKeys     = []string{"officenumber", "office", "location"}
)

// parseFilterJSON parses a model response as a JSON filter object.
// Returns ok=false when the text is not JSON or carries no usable value.
func parseFilterJSON(text string) (domain.Filters, bool) {
	body := stripCodeFence(text)

	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return domain.Filters{}, false
	}

	// Lowercase keys once so alternate spellings collapse to one lookup.
	obj := make(map[string]any, len(raw))
	for k, v := range raw {
		obj[strings.ToLower(strings.TrimSpace(k))] = v
	}

	filters := domain.Filters{
		Skills:       lookupStrings(obj, skillsKeys),
		Department:   lookupString(obj, departmentKeys),
		OfficeNumber: lookupString(obj, officeKeys),
	}
	if filters.Empty() {
		return domain.Filters{}, false
	}
	return filters, true
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func lookupString(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			if s := toTrimmedString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func lookupStrings(obj map[string]any, keys []string) []string {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		var out []string
		switch vv := v.(type) {
		case []any:
			for _, item := range vv {
				if s := toTrimmedString(item); s != "" {
					out = append(out, s)
				}
			}
		default:
			if s := toTrimmedString(v); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func toTrimmedString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
