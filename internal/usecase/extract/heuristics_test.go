package extract

import "testing"

func TestParseHeuristic_DepartmentPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"colon form", "Department: Quality Assurance", "Quality Assurance"},
		{"dept colon form", "Dept: Finance", "Finance"},
		{"suffix form", "people in the Quality Assurance department", "Quality Assurance"},
		{"of form", "department of Finance", "Finance"},
		{"truncated at comma", "Department: Sales, Office: 12", "Sales"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := matchFirst(departmentPatterns, tc.text)
			if got != tc.want {
				t.Errorf("matchFirst(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseHeuristic_OfficePatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"office colon", "Office: B-204", "B-204"},
		{"location colon", "Location: Helsinki", "Helsinki"},
		{"based in", "engineers based in Helsinki", "Helsinki"},
		{"located in", "team located in Oslo, Norway", "Oslo"},
		{"bare in", "anyone in Helsinki office", "Helsinki office"},
		{"bare at", "people at Stockholm HQ", "Stockholm HQ"},
		{"truncated at newline", "Office: 12\nDepartment: Sales", "12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := matchFirst(officePatterns, tc.text)
			if got != tc.want {
				t.Errorf("matchFirst(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseHeuristic_ModelTextBeforeQuery(t *testing.T) {
	f, ok := parseHeuristic("Department: Marketing", "people in the Sales department")
	if !ok {
		t.Fatal("expected heuristic to succeed")
	}
	if f.Department != "Marketing" {
		t.Errorf("model text must win over the query, got %q", f.Department)
	}
}

func TestParseHeuristic_QueryWhenModelTextSilent(t *testing.T) {
	f, ok := parseHeuristic("no structure here whatsoever", "people from the Sales department")
	if !ok {
		t.Fatal("expected heuristic to succeed")
	}
	if f.Department != "Sales" {
		t.Errorf("expected department from original query, got %q", f.Department)
	}
}

func TestParseHeuristic_DepartmentClauseNotAnOffice(t *testing.T) {
	f, ok := parseHeuristic("people in the Sales department", "")
	if !ok {
		t.Fatal("expected heuristic to succeed")
	}
	if f.Department != "Sales" {
		t.Errorf("unexpected department: %q", f.Department)
	}
	if f.OfficeNumber != "" {
		t.Errorf("department clause must not become an office, got %q", f.OfficeNumber)
	}
}

func TestSkillCandidates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"comma separated", "Leadership, Coaching", []string{"Leadership", "Coaching"}},
		{"mixed delimiters", "Go; Python|Rust/C++\nSQL", []string{"Go", "Python", "Rust", "C++", "SQL"}},
		{"label stripped", "Skills: Leadership", []string{"Leadership"}},
		{"field clauses excluded", "Leadership, Department: Sales, Office: 12", []string{"Leadership"}},
		{"junk excluded", "{}", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := skillCandidates(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("skillCandidates(%q) = %v, want %v", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("candidate[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseHeuristic_NothingUsable(t *testing.T) {
	if _, ok := parseHeuristic("...", "???"); ok {
		t.Error("expected heuristic to fail on unusable input")
	}
}
