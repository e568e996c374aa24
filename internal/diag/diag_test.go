package diag

import (
	"testing"

	"phpfix/internal/source"
)

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexError:       "LEX0001",
		StrUnbalanced:  "STR0001",
		IOReadFailed:   "IO0001",
		FixWouldChange: "FIX0001",
		UnknownCode:    "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(999).Title() != UnknownCode.Title() {
		t.Errorf("unknown codes must fall back to the generic title")
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	bag := NewBag(3)
	r := BagReporter{Bag: bag}
	ReportWarning(r, FixWouldChange, source.Span{File: 0, Start: 10, End: 11}, "would change").Emit()
	b := ReportError(r, LexError, source.Span{File: 0, Start: 10, End: 11}, "bad byte")
	b.Emit()
	b.Emit()
	ReportInfo(r, FixInfo, source.Span{File: 0, Start: 0, End: 1}, "x").Emit()
	if bag.Add(NewError(IOReadFailed, source.Span{}, "over limit")) {
		t.Fatalf("bag must refuse items over its limit")
	}
	if bag.Len() != 3 || !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("unexpected bag state: %d items", bag.Len())
	}

	bag.Sort()
	items := bag.Items()
	if items[0].Code != FixInfo || items[1].Code != LexError || items[2].Code != FixWouldChange {
		t.Fatalf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}

	other := NewBag(1)
	other.Add(items[1])
	bag.Merge(other)
	if bag.Len() != 4 || bag.Cap() != 4 {
		t.Fatalf("merge must grow the limit: len %d cap %d", bag.Len(), bag.Cap())
	}
	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("dedup left %d items", bag.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 2, End: 3}
	r.Report(StrUnbalanced, SevError, sp, "unclosed '('", nil)
	r.Report(StrUnbalanced, SevError, sp, "unclosed '('", nil)
	r.Report(StrUnbalanced, SevError, sp, "unclosed '{'", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 unique diagnostics, got %d", bag.Len())
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	id := fs.AddVirtual("/work/src/a.php", []byte("<?php\n$x = 'abc\n"))
	diags := []Diagnostic{
		NewError(LexError, source.Span{File: id, Start: 11, End: 12}, "unterminated string literal"),
		New(SevWarning, FixWouldChange, source.Span{File: id, Start: 0, End: 0}, "would change\n(types_spaces)").
			WithNote(source.Span{File: id, Start: 6, End: 7}, "here"),
	}
	want := "warning FIX0001 src/a.php:1:1 would change (types_spaces)\n" +
		"note FIX0001 src/a.php:2:1 here\n" +
		"error LEX0001 src/a.php:2:6 unterminated string literal"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if FormatShort(nil, fs, true) != "" {
		t.Fatalf("no diagnostics, no output")
	}
}

func TestSeverityOfCodes(t *testing.T) {
	cases := map[Code]Severity{
		FixWouldChange: SevInfo,
		FixNotConverge: SevWarning,
		LexError:       SevError,
		StrRuleFailed:  SevError,
		IOWriteFailed:  SevError,
		UnknownCode:    SevError,
	}
	for code, want := range cases {
		if got := SeverityOf(code); got != want {
			t.Errorf("SeverityOf(%s) = %s, want %s", code, got, want)
		}
	}

	bag := NewBag(2)
	Report(BagReporter{Bag: bag}, FixNotConverge, source.WholeFile(0), "still changing").Emit()
	Report(BagReporter{Bag: bag}, FixWouldChange, source.WholeFile(0), "would change").Emit()
	if !bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("non-converging file must only warn")
	}
	if items := bag.Items(); items[1].Severity.Visible(false) || !items[1].Severity.Visible(true) {
		t.Fatalf("dry-run result must only show in verbose mode")
	}
	if SevWarning.Label() != "warning" || SevInfo.Label() != "info" || SevError.String() != "ERROR" {
		t.Fatalf("unexpected severity names")
	}
}
