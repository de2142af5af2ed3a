package people

import (
	"reflect"
	"testing"

	"github.com/collabdays/peoplefinder/internal/domain"
)

func TestMergeEmptyInput(t *testing.T) {
	got := Merge(nil)
	if got == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}

	got = Merge([][]domain.Person{{}, {}})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d entries", len(got))
	}
}

func TestMergeDeduplicatesByEmailCaseInsensitive(t *testing.T) {
	sets := [][]domain.Person{
		{
			{DisplayName: "Ada Lovelace", WorkEmail: "Ada@Example.com", Skills: []string{"Go", "SQL"}},
		},
		{
			{DisplayName: "Ada L.", WorkEmail: "ada@example.com", Skills: []string{"SQL", "Leadership"}, Department: "Engineering"},
		},
	}

	got := Merge(sets)
	if len(got) != 1 {
		t.Fatalf("expected 1 person, got %d", len(got))
	}
	p := got[0]
	if p.DisplayName != "Ada Lovelace" {
		t.Errorf("expected first occurrence to win, got name %q", p.DisplayName)
	}
	if want := []string{"Go", "SQL", "Leadership"}; !reflect.DeepEqual(p.Skills, want) {
		t.Errorf("expected skills %v, got %v", want, p.Skills)
	}
	if p.Department != "Engineering" {
		t.Errorf("expected absent department to be filled, got %q", p.Department)
	}
}

func TestMergeNameFallbackIsCaseSensitive(t *testing.T) {
	sets := [][]domain.Person{
		{{DisplayName: "Grace Hopper"}},
		{{DisplayName: "grace hopper"}},
	}

	got := Merge(sets)
	if len(got) != 2 {
		t.Fatalf("expected differently cased names to stay distinct, got %d entries", len(got))
	}
}

func TestMergeDoesNotOverwritePresentFields(t *testing.T) {
	sets := [][]domain.Person{
		{{DisplayName: "Ada", WorkEmail: "ada@example.com", Department: "Engineering", Location: "B-101"}},
		{{DisplayName: "Ada", WorkEmail: "ada@example.com", Department: "Sales", Location: "C-202"}},
	}

	got := Merge(sets)
	if len(got) != 1 {
		t.Fatalf("expected 1 person, got %d", len(got))
	}
	if got[0].Department != "Engineering" {
		t.Errorf("expected department to keep first value, got %q", got[0].Department)
	}
	if got[0].Location != "B-101" {
		t.Errorf("expected location to keep first value, got %q", got[0].Location)
	}
}

func TestMergePreservesFirstOccurrenceOrder(t *testing.T) {
	sets := [][]domain.Person{
		{
			{DisplayName: "Ada", WorkEmail: "ada@example.com"},
			{DisplayName: "Grace", WorkEmail: "grace@example.com"},
		},
		{
			{DisplayName: "Grace", WorkEmail: "grace@example.com"},
			{DisplayName: "Edsger", WorkEmail: "edsger@example.com"},
		},
	}

	got := Merge(sets)
	wantOrder := []string{"Ada", "Grace", "Edsger"}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d people, got %d", len(wantOrder), len(got))
	}
	for i, name := range wantOrder {
		if got[i].DisplayName != name {
			t.Errorf("position %d: expected %q, got %q", i, name, got[i].DisplayName)
		}
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	first := domain.Person{DisplayName: "Ada", WorkEmail: "ada@example.com", Skills: []string{"Go"}}
	sets := [][]domain.Person{
		{first},
		{{DisplayName: "Ada", WorkEmail: "ada@example.com", Skills: []string{"SQL"}}},
	}

	got := Merge(sets)
	if len(got) != 1 || len(got[0].Skills) != 2 {
		t.Fatalf("unexpected merge result: %+v", got)
	}
	if !reflect.DeepEqual(first.Skills, []string{"Go"}) {
		t.Errorf("input person mutated: %v", first.Skills)
	}
}

func TestUnionSkills(t *testing.T) {
	got := unionSkills([]string{"Go", "SQL"}, []string{"SQL", "Go", "Leadership"})
	if want := []string{"Go", "SQL", "Leadership"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
