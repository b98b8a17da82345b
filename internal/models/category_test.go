package models

import (
	"testing"

	"github.com/google/uuid"
)

func navCategory(name string, isNav bool) Category {
	return Category{ID: uuid.New(), Name: name, Status: StatusNormal, IsNav: isNav}
}

func TestPartitionNavSplitsGroups(t *testing.T) {
	in := []Category{
		navCategory("go", true),
		navCategory("life", false),
		navCategory("databases", true),
		navCategory("misc", false),
	}

	g := PartitionNav(in)

	if len(g.Navs) != 2 {
		t.Fatalf("navs: got %d, want 2", len(g.Navs))
	}
	if len(g.Categories) != 2 {
		t.Fatalf("categories: got %d, want 2", len(g.Categories))
	}
	if g.Navs[0].Name != "go" || g.Navs[1].Name != "databases" {
		t.Errorf("nav order not preserved: %q, %q", g.Navs[0].Name, g.Navs[1].Name)
	}
	if g.Categories[0].Name != "life" || g.Categories[1].Name != "misc" {
		t.Errorf("category order not preserved: %q, %q", g.Categories[0].Name, g.Categories[1].Name)
	}
}

// The two groups must cover the full input set and stay disjoint.
func TestPartitionNavCompleteness(t *testing.T) {
	var in []Category
	for i := 0; i < 7; i++ {
		in = append(in, navCategory("c", i%3 == 0))
	}

	g := PartitionNav(in)

	if got := len(g.Navs) + len(g.Categories); got != len(in) {
		t.Fatalf("partition lost or duplicated entries: got %d, want %d", got, len(in))
	}

	seen := make(map[uuid.UUID]bool)
	for _, c := range g.Navs {
		seen[c.ID] = true
	}
	for _, c := range g.Categories {
		if seen[c.ID] {
			t.Fatalf("category %s appears in both groups", c.ID)
		}
	}
}

func TestPartitionNavEmpty(t *testing.T) {
	g := PartitionNav(nil)
	if len(g.Navs) != 0 || len(g.Categories) != 0 {
		t.Errorf("expected empty groups, got %d/%d", len(g.Navs), len(g.Categories))
	}
}

func TestPostEditPath(t *testing.T) {
	p := Post{ID: uuid.MustParse("11111111-2222-3333-4444-555555555555")}
	want := "/admin/posts/11111111-2222-3333-4444-555555555555"
	if got := p.EditPath(); got != want {
		t.Errorf("edit path: got %q, want %q", got, want)
	}
}

func TestPostIsVisible(t *testing.T) {
	for _, tc := range []struct {
		status PostStatus
		want   bool
	}{
		{PostStatusNormal, true},
		{PostStatusDraft, false},
		{PostStatusDelete, false},
	} {
		p := Post{Status: tc.status}
		if p.IsVisible() != tc.want {
			t.Errorf("IsVisible(%s): got %v, want %v", tc.status, !tc.want, tc.want)
		}
	}
}
