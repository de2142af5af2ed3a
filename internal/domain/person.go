package domain

import "strings"

// Person is a normalized people-search result record.
type Person struct {
	DisplayName string   `json:"displayName"`
	WorkEmail   string   `json:"workEmail,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Department  string   `json:"department,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// Key returns the dedup identity: the lowercased work email when present,
// else the display name verbatim. The name fallback is exact-match and
// case-sensitive, so differently-cased duplicates stay distinct records.
func (p Person) Key() string {
	if p.WorkEmail != "" {
		return strings.ToLower(p.WorkEmail)
	}
	return p.DisplayName
}

// Clone returns a copy that shares no slice storage with the receiver.
func (p Person) Clone() Person {
	out := p
	if p.Skills != nil {
		out.Skills = append([]string(nil), p.Skills...)
	}
	return out
}
