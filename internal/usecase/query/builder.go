// Package query builds fielded people-search queries from extracted filters.
package query

import (
	"fmt"
	"strings"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// Managed property names of the search backend's people schema.
const (
	fieldSkills     = "Skills"
	fieldDepartment = "Department"
	fieldOffice     = "OfficeNumber"
)

// Build turns a filter set into one or more fielded query strings.
// Pure function, never returns an empty slice:
//   - one query per unique skill, AND-ed with department/office when present
//   - one combined query when only department/office are present
//   - one raw pass-through query otherwise (including degraded extractions,
//     where the "skill" is the raw query text and quoting would corrupt it)
func Build(filters domain.Filters, rawQuery string) []string {
	if filters.Fallback || filters.Empty() {
		return []string{fmt.Sprintf("(%s:%s)", fieldSkills, escapeValue(rawQuery))}
	}

	if len(filters.Skills) == 0 {
		return []string{combine(nil, filters)}
	}

	queries := make([]string, 0, len(filters.Skills))
	seen := make(map[string]struct{}, len(filters.Skills))
	for _, skill := range filters.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		queries = append(queries, combine([]string{term(fieldSkills, skill)}, filters))
	}
	if len(queries) == 0 {
		return []string{fmt.Sprintf("(%s:%s)", fieldSkills, escapeValue(rawQuery))}
	}
	return queries
}

// combine joins the given terms with department/office terms using AND.
func combine(terms []string, filters domain.Filters) string {
	if filters.Department != "" {
		terms = append(terms, term(fieldDepartment, filters.Department))
	}
	if filters.OfficeNumber != "" {
		terms = append(terms, term(fieldOffice, filters.OfficeNumber))
	}
	return "(" + strings.Join(terms, " AND ") + ")"
}

func term(field, value string) string {
	return field + ":" + quoteValue(value)
}

// quoteValue escapes and, when needed, quotes a field value. Single quotes
// are doubled to match the backend's string-literal escaping rule; values
// containing whitespace, colons, parentheses, or double quotes are wrapped
// in double quotes so the fielded syntax does not split them.
func quoteValue(v string) string {
	v = escapeValue(v)
	if strings.ContainsAny(v, " \t:()\"") {
		return `"` + v + `"`
	}
	return v
}

func escapeValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}
