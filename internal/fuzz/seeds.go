package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"phpfix/internal/fixer"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"<html><?= $x ?></html>",
	"<?php\nnamespace A\\B;\nuse function strlen;\nfunction f(int|string $a = null): ?array { return STRLEN($a); }\n",
	"<?php throw new \\Vendor\\E(\n  'x',\n  1 // c\n);\n",
	"<?php class A { public static ?int $x = null; public function __construct(private A|B $b) {} }",
	"<?php $f = fn(A | B $a = NULL) => $a; try {} catch (A | B $e) {}",
	"<?php $s = \"a {$b['c']} ${d}\"; $h = <<<EOT\n  $x\n  EOT;\n",
	"<?php (int) $a; ( string )$b; #[Attr]\nenum E: string { case A = 'a'; }",
	"<?php /* unterminated",
	"<?php foo(",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	for _, def := range fixer.All() {
		f.Add([]byte(def.Sample[0]))
		f.Add([]byte(def.Sample[1]))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.php файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".php" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
