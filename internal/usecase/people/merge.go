package people

import "github.com/collabdays/peoplefinder/internal/domain"

// Merge deduplicates result sets into a single ordered list. Sets are
// consumed in order and a person's position is fixed at first occurrence.
// Duplicates (same identity key) contribute their skills and fill in a
// department or location the earlier occurrence lacked.
func Merge(resultSets [][]domain.Person) []domain.Person {
	merged := []domain.Person{}
	index := map[string]int{}

	for _, set := range resultSets {
		for _, p := range set {
			key := p.Key()
			if at, seen := index[key]; seen {
				existing := &merged[at]
				existing.Skills = unionSkills(existing.Skills, p.Skills)
				if existing.Department == "" {
					existing.Department = p.Department
				}
				if existing.Location == "" {
					existing.Location = p.Location
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, p.Clone())
		}
	}

	return merged
}

// unionSkills appends skills from extra that base does not already have,
// preserving base order. Matching is exact.
func unionSkills(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, s := range base {
		seen[s] = struct{}{}
	}
	for _, s := range extra {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		base = append(base, s)
	}
	return base
}
