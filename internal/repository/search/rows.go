package search

import (
	"strings"

	"github.com/collabdays/peoplefinder/internal/domain"
)

// searchResponse mirrors the backend's relevant-results envelope.
type searchResponse struct {
	PrimaryQueryResult struct {
		RelevantResults struct {
			Table struct {
				Rows []resultRow `json:"Rows"`
			} `json:"Table"`
		} `json:"RelevantResults"`
	} `json:"PrimaryQueryResult"`
}

type resultRow struct {
	Cells []resultCell `json:"Cells"`
}

type resultCell struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Ordered managed-property aliases per logical field. Different tenants
// populate different subsets of the people schema; the first alias with a
// non-empty value wins.
var (
	nameAliases       = []string{"PreferredName", "Title", "AccountName"}
	emailAliases      = []string{"WorkEmail", "AccountName", "SPS-Mail"}
	skillsAliases     = []string{"Skills", "PeopleKeywords", "Tags", "RefinableString01"}
	departmentAliases = []string{"Department", "SPS-Department", "Office"}
	locationAliases   = []string{"Office", "SPS-Location", "Location", "OfficeNumber"}
)

// DefaultSelectProperties returns every managed property the row parser
// understands, in a stable order.
func DefaultSelectProperties() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, aliases := range [][]string{nameAliases, emailAliases, skillsAliases, departmentAliases, locationAliases} {
		for _, a := range aliases {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// parseRows normalizes backend rows into person records. Rows without a
// resolvable display name are dropped.
func parseRows(rows []resultRow) []domain.Person {
	people := make([]domain.Person, 0, len(rows))
	for _, row := range rows {
		cells := row.cellMap()

		name := firstCell(cells, nameAliases)
		if name == "" {
			continue
		}

		people = append(people, domain.Person{
			DisplayName: name,
			WorkEmail:   firstCell(cells, emailAliases),
			Skills:      splitSkills(firstCell(cells, skillsAliases)),
			Department:  firstCell(cells, departmentAliases),
			Location:    firstCell(cells, locationAliases),
		})
	}
	return people
}

func (r resultRow) cellMap() map[string]string {
	m := make(map[string]string, len(r.Cells))
	for _, c := range r.Cells {
		m[c.Key] = c.Value
	}
	return m
}

// firstCell returns the first alias with a non-empty trimmed value.
func firstCell(cells map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(cells[a]); v != "" {
			return v
		}
	}
	return ""
}

func skillSeparator(r rune) bool {
	switch r {
	case ',', ';', '|', '\n', '/':
		return true
	}
	return false
}

// splitSkills splits a skills cell into a trimmed, de-duplicated set.
func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.FieldsFunc(s, skillSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
