package judge

import "testing"

func TestCatalogGet(t *testing.T) {
	c := NewCatalog()

	p, ok := c.Get("two-sum")
	if !ok {
		t.Fatal("two-sum not found")
	}
	if p.Title != "Two Sum" || len(p.TestCases) == 0 {
		t.Errorf("unexpected problem: %+v", p)
	}

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected miss for unknown slug")
	}
}

func TestCatalogListFilter(t *testing.T) {
	c := NewCatalog()

	all := c.List("")
	if len(all) != 2 {
		t.Errorf("List(\"\") = %d problems, want 2", len(all))
	}

	easy := c.List("EASY")
	if len(easy) != len(all) {
		t.Errorf("difficulty filter should be case-insensitive, got %d", len(easy))
	}

	if got := c.List("hard"); len(got) != 0 {
		t.Errorf("List(hard) = %d problems, want 0", len(got))
	}
}
