package diag

import (
	"testing"

	"pylens/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewWarning(LintLineTooLong, span(0, 1), "a")) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(NewWarning(LintLineTooLong, span(1, 2), "b")) {
		t.Fatal("second add rejected")
	}
	if bag.Add(NewWarning(LintLineTooLong, span(2, 3), "c")) {
		t.Fatal("third add should hit the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagCapAboveUint16(t *testing.T) {
	bag := NewBag(70000)
	if bag.Cap() != 70000 {
		t.Fatalf("cap = %d, want 70000", bag.Cap())
	}
	if !bag.Add(NewWarning(LintLineTooLong, span(0, 1), "a")) {
		t.Fatal("add rejected under a large cap")
	}
}

func TestBagSortStable(t *testing.T) {
	bag := NewBag(16)
	bag.Add(NewWarning(LintUnusedImport, span(30, 33), "later"))
	bag.Add(NewError(SynExpectColon, span(10, 11), "colon"))
	bag.Add(NewWarning(LintLineTooLong, span(10, 11), "long"))

	bag.Sort()

	items := bag.Items()
	if items[0].Code != SynExpectColon {
		t.Errorf("first = %v", items[0].Code)
	}
	if items[1].Code != LintLineTooLong {
		t.Errorf("second = %v", items[1].Code)
	}
	if items[2].Code != LintUnusedImport {
		t.Errorf("third = %v", items[2].Code)
	}
}

func TestBagDedup(t *testing.T) {
	bag := NewBag(16)
	bag.Add(NewWarning(LintLineTooLong, span(5, 9), "dup"))
	bag.Add(NewWarning(LintLineTooLong, span(5, 9), "dup"))
	bag.Add(NewWarning(LintUnusedImport, span(5, 9), "same span, other code"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(LintLineTooLong, span(0, 1), "a"))
	b := NewBag(1)
	b.Add(NewWarning(LintUnusedImport, span(1, 2), "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("merged len = %d, want 2", a.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(16)
	r := NewDedupReporter(BagReporter{Bag: bag})

	r.Report(LintLineTooLong, SevWarning, span(0, 4), "once", nil)
	r.Report(LintLineTooLong, SevWarning, span(0, 4), "twice", nil)
	r.Report(LintLineTooLong, SevWarning, span(4, 8), "other span", nil)

	if bag.Len() != 2 {
		t.Fatalf("len = %d, want 2", bag.Len())
	}
}

func TestCodeMetadata(t *testing.T) {
	if LintLineTooLong.Category() != "length" {
		t.Errorf("category = %q", LintLineTooLong.Category())
	}
	if SynExpectColon.Category() != "syntax" {
		t.Errorf("category = %q", SynExpectColon.Category())
	}
	if LintUnusedImport.Category() != "unused" {
		t.Errorf("category = %q", LintUnusedImport.Category())
	}
	if LintBadClassName.Category() != "naming" {
		t.Errorf("category = %q", LintBadClassName.Category())
	}
	if LintOperatorSpacing.Category() != "style" {
		t.Errorf("category = %q", LintOperatorSpacing.Category())
	}
	if got := SynExpectColon.ID(); got != "SYN2002" {
		t.Errorf("ID = %q", got)
	}
	if got := LintLineTooLong.ID(); got != "PLY4001" {
		t.Errorf("ID = %q", got)
	}
}
