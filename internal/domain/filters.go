package domain

// Filters is the structured filter set derived from a raw people-search query.
type Filters struct {
	Skills       []string `json:"skills,omitempty"`
	Department   string   `json:"department,omitempty"`
	OfficeNumber string   `json:"officeNumber,omitempty"`

	// Fallback marks a degraded extraction: Skills carries the raw query
	// text verbatim instead of extracted values, and the query builder
	// emits a single pass-through query for it.
	Fallback bool `json:"-"`
}

// Empty reports whether the filter set carries no usable value.
func (f Filters) Empty() bool {
	return len(f.Skills) == 0 && f.Department == "" && f.OfficeNumber == ""
}

// FallbackFilters builds the degraded filter set for a raw query.
// Every extraction failure path ends here so the pipeline never dead-ends.
func FallbackFilters(query string) Filters {
	return Filters{Skills: []string{query}, Fallback: true}
}
