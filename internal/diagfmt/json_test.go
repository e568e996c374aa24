package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"phpfix/internal/source"
	"phpfix/internal/token"
)

func TestDiagnosticsJSON(t *testing.T) {
	bag, fs := singleDiag(t, "<?php\n$x = 'abc\n", 11, 15)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeRelative})
	if out.Count != 1 || len(out.Diagnostics[0].Notes) != 0 {
		t.Fatalf("unexpected output %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX0001" || d.Severity != "ERROR" || d.Location.File != "src/test.php" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 6 || d.Location.EndCol != 10 {
		t.Fatalf("unexpected location %+v", d.Location)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeNotes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Diagnostics[0].Notes) != 1 || decoded.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("notes or positions wrong: %+v", decoded.Diagnostics[0])
	}
}

func TestTokensOutput(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.php", []byte("<?php $a;\n$b")))
	toks := []token.Token{
		token.New(token.OpenTag, "<?php "),
		token.New(token.Variable, "$a"),
		token.New(token.Semicolon, ";"),
		token.New(token.Whitespace, "\n"),
		token.New(token.Variable, "$b"),
	}

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, f); err != nil {
		t.Fatal(err)
	}
	var outs []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &outs); err != nil {
		t.Fatal(err)
	}
	if outs[1].Start != 6 || outs[1].End != 8 || outs[1].Col != 7 || outs[1].Kind != "Variable" {
		t.Fatalf("unexpected $a entry %+v", outs[1])
	}
	if outs[4].Line != 2 || outs[4].Col != 1 {
		t.Fatalf("unexpected $b entry %+v", outs[4])
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks[:2], f); err != nil {
		t.Fatal(err)
	}
	want := "   0: OpenTag                  \"<?php \" at 1:1\n" +
		"   1: Variable                 \"$a\" at 1:7\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
