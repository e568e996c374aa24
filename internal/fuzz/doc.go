
// Package fuzztests houses Go fuzz harnesses for the lexer and the rules.
// Its goal is to smoke test robustness and guard against panics or broken
// output on arbitrary inputs.
//
// Назначение: загрузить байты в FileSet, прогнать лексер и правила,
// проверить что текст не теряется.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/tokens,
// internal/fix, internal/fixer, internal/testkit.

package fuzztests
