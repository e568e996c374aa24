package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase level must stop at passes")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeRule) {
		t.Fatalf("detail level must stop at files")
	}
	if !LevelDebug.ShouldEmit(ScopeRule) {
		t.Fatalf("debug level emits everything")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	ctx := WithTracer(context.Background(), tr)
	ctx, fix := Start(ctx, ScopePass, "fix")
	_, file := Start(ctx, ScopeFile, "file:a.php")
	_, rule := Start(ctx, ScopeRule, "rule:types_spaces")
	rule.End("")
	file.WithExtra("changed", "true").End("")
	fix.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events (rule span filtered), got %d:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.php" || ev.ParentID != fix.ID() || ev.Extra["changed"] != "true" {
		t.Fatalf("unexpected file end event: %+v", ev)
	}
}

func TestTextFormat(t *testing.T) {
	out := string(FormatEvent(&Event{Seq: 7, Kind: KindPoint, Scope: ScopeFile, Name: "cache", Detail: "hit",
		Extra: map[string]string{"b": "2", "a": "1"}}, FormatText))
	if out != "[     7]     • cache (hit) {a=1, b=2}\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeFile, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "c" || snap[2].Name != "e" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump: %q", buf.String())
	}
}

func TestNewSelectsTracer(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level must yield Nop")
	}
	tr, err = New(Config{Level: LevelError, Mode: ModeStream})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Fatalf("error level must use the ring, got %T", tr)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*StreamTracer); !ok {
		t.Fatalf("expected stream tracer, got %T", tr)
	}
}

func TestStartWithoutTracer(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeFile, "x")
	if span.ID() != 0 || CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("disabled tracing must not create spans")
	}
	span.End("")
}

func TestRingDumpsFailedFiles(t *testing.T) {
	r := NewRingTracer(64, LevelError)
	ctx := WithTracer(context.Background(), r)
	ctx, pass := Start(ctx, ScopePass, "fix")

	okCtx, ok := StartFile(ctx, "ok.php")
	BeginRule(okCtx, "types_spaces", 1).SetEdits(2).End("")
	ok.End("")

	badCtx, bad := StartFile(ctx, "bad.php")
	BeginRule(badCtx, "types_spaces", 1).SetEdits(0).End("")
	BeginRule(badCtx, "single_line_throw", 2).Fail(errors.New("unbalanced")).End("")
	bad.Fail(errors.New("rule failed")).End("")
	pass.End("")

	if got := r.FailedFiles(); len(got) != 1 || got[0] != "bad.php" {
		t.Fatalf("FailedFiles = %v", got)
	}

	var buf bytes.Buffer
	if err := r.DumpFailures(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "ok.php") || strings.Contains(out, "← fix") {
		t.Fatalf("dump must only hold the failed file:\n%s", out)
	}
	// begin+end для файла и двух правил
	if strings.Count(out, "\n") != 6 {
		t.Fatalf("expected 6 events:\n%s", out)
	}
	if !strings.Contains(out, "← rule:single_line_throw (unbalanced) {edits=0, failed=true, pass=2}") {
		t.Fatalf("rule end event missing:\n%s", out)
	}

	buf.Reset()
	if err := r.DumpFile(&buf, "ok.php", FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("ok.php: %d events", len(lines))
	}
	var ev struct {
		Rule  string `json:"rule"`
		File  string `json:"file"`
		Pass  int    `json:"pass"`
		Edits uint64 `json:"edits"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Rule != "types_spaces" || ev.File != "ok.php" || ev.Pass != 1 || ev.Edits != 2 {
		t.Fatalf("rule end event = %+v", ev)
	}
}

func TestRingDumpsEverythingWithoutFailedFile(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	Point(r, ScopeDriver, "config", "broken", 0)
	var buf bytes.Buffer
	if err := r.DumpFailures(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "config (broken)") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestDisabledSpansAreShared(t *testing.T) {
	a := Begin(Nop, ScopeFile, "a", 0)
	b := BeginRule(context.Background(), "r", 1)
	if a != b || a.ID() != 0 {
		t.Fatalf("disabled spans must share one instance")
	}
	a.WithExtra("k", "v").SetEdits(3).Fail(errors.New("x"))
	if a.extra != nil || a.ev.Edits != 0 || a.ev.Failed {
		t.Fatalf("disabled span was mutated")
	}
}
