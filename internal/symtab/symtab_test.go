package symtab

import "testing"

func TestInsertAndLookup(t *testing.T) {
	tab := New(0)
	sym, inserted := tab.Insert("x", Int, 1, 5)
	if !inserted {
		t.Fatal("expected a fresh insert")
	}
	if sym.Register != tab.hash("x") {
		t.Errorf("Register = %d, want bucket %d", sym.Register, tab.hash("x"))
	}

	_, inserted = tab.Insert("x", Float, 2, 1)
	if inserted {
		t.Fatal("expected the second insert of the same name to be rejected")
	}

	found, ok := tab.Lookup("x")
	if !ok || found != sym {
		t.Fatal("Lookup did not return the original symbol")
	}
}

func TestMarkUsedAndInitialized(t *testing.T) {
	tab := New(0)
	tab.Insert("count", Int, 1, 1)

	tab.MarkUsed("count", 4)
	tab.MarkUsed("count", 7)
	tab.MarkInitialized("count", int64(42))

	sym, _ := tab.Lookup("count")
	if !sym.Used {
		t.Error("Used = false, want true")
	}
	if !sym.Initialized || sym.Value != int64(42) {
		t.Errorf("Initialized/Value = %v/%v, want true/42", sym.Initialized, sym.Value)
	}
	if len(sym.UseLines) != 3 { // declaration line plus the two marked uses
		t.Errorf("UseLines = %v, want 3 entries", sym.UseLines)
	}
}

func TestBucketCountDefaultsTo100(t *testing.T) {
	tab := New(0)
	if tab.bucketCap != DefaultBuckets {
		t.Errorf("bucketCap = %d, want %d", tab.bucketCap, DefaultBuckets)
	}
}

func TestReportNaturalSortAndScope(t *testing.T) {
	tab := New(0)
	for _, name := range []string{"x10", "x2", "x1"} {
		tab.Insert(name, Int, 1, 1)
	}
	rows := Report(tab)
	want := []string{"x1", "x2", "x10"}
	for i, row := range rows {
		if row.Identifier != want[i] {
			t.Errorf("rows[%d].Identifier = %q, want %q", i, row.Identifier, want[i])
		}
		if row.Scope != "Global" {
			t.Errorf("rows[%d].Scope = %q, want Global", i, row.Scope)
		}
		if row.Index != i {
			t.Errorf("rows[%d].Index = %d, want %d", i, row.Index, i)
		}
	}
}

func TestReportUseLinesSortedAscending(t *testing.T) {
	tab := New(0)
	tab.Insert("v", Int, 1, 1) // declaration line 1 seeds UseLines
	tab.MarkUsed("v", 9)
	tab.MarkUsed("v", 3)
	tab.MarkUsed("v", 6)

	rows := Report(tab)
	got := rows[0].UseLines
	want := []int{1, 3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("UseLines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UseLines[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
