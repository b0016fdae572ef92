package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	n := Params{}.Normalize()
	if n.Page != 1 || n.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults %+v", n)
	}

	n = Params{Page: -2, Limit: 500}.Normalize()
	if n.Page != 1 {
		t.Fatalf("expected page clamp, got %d", n.Page)
	}
	if n.Limit != MaxLimit {
		t.Fatalf("expected limit clamp, got %d", n.Limit)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
	if got := (Params{}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestMetaForRoundsPagesUp(t *testing.T) {
	meta := MetaFor(Params{Page: 1, Limit: 10}, 41)
	if meta.Pages != 5 {
		t.Fatalf("expected 5 pages, got %d", meta.Pages)
	}
	if meta.Total != 41 {
		t.Fatalf("expected total 41, got %d", meta.Total)
	}

	meta = MetaFor(Params{Page: 1, Limit: 10}, 0)
	if meta.Pages != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", meta.Pages)
	}
}
