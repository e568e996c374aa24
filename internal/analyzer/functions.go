package analyzer

import (
	"strings"
	"sync"

	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

// Functions resolves function calls and signatures. It is shared by the
// workers of a run, so it keeps the scope map of every stream it was asked
// about until that stream's revision changes, up to scopeCacheSize streams.
type Functions struct {
	mu     sync.Mutex
	cache  map[*tokens.Stream]*cachedScopes
	tick   uint64
	builds int // сколько раз строилась карта, для тестов
}

type cachedScopes struct {
	rev    uint64
	scopes *scopeMap
	used   uint64
}

// scopeCacheSize bounds the streams remembered at once; a run has about
// one live stream per worker.
const scopeCacheSize = 64

// NewFunctions returns an analyzer with an empty cache.
func NewFunctions() *Functions {
	return &Functions{cache: make(map[*tokens.Stream]*cachedScopes)}
}

func (a *Functions) scopeMap(s *tokens.Stream) *scopeMap {
	rev := s.Revision()
	a.mu.Lock()
	if c, ok := a.cache[s]; ok && c.rev == rev {
		a.tick++
		c.used = a.tick
		a.mu.Unlock()
		return c.scopes
	}
	a.mu.Unlock()

	// строим без блокировки: другие воркеры работают со своими потоками
	m := buildScopeMap(s)

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.cache[s]; !ok && len(a.cache) >= scopeCacheSize {
		a.evictOldest()
	}
	a.tick++
	a.cache[s] = &cachedScopes{rev: rev, scopes: m, used: a.tick}
	a.builds++
	return m
}

func (a *Functions) evictOldest() {
	var (
		oldest *tokens.Stream
		used   uint64
	)
	for s, c := range a.cache {
		if oldest == nil || c.used < used {
			oldest, used = s, c.used
		}
	}
	delete(a.cache, oldest)
}

// IsGlobalFunctionCall reports whether the identifier at i is a call to a
// function of the global namespace, or one visible without qualification.
//
// The identifier must be followed by '(' and must not be a member access,
// a static call, a declaration, an instantiation, or a segment of a qualified
// name. A single leading '\' always means the global namespace. Otherwise the
// call resolves, in order: through a function or class import of the
// enclosing namespace (free only when the imported name is unqualified),
// through a top-level function declared in the same namespace, and finally
// by being in the global namespace. Anything else is not free, including
// code outside every namespace of a file that declares some.
func (a *Functions) IsGlobalFunctionCall(s *tokens.Stream, i int) bool {
	t := s.At(i)
	if t.Kind != token.Ident {
		return false
	}
	next := s.NextMeaningful(i)
	if next < 0 || s.At(next).Kind != token.LParen {
		return false
	}

	prev := s.PrevMeaningful(i)
	leading := false
	if prev >= 0 && s.At(prev).Kind == token.NsSeparator {
		before := s.PrevMeaningful(prev)
		if before >= 0 && s.At(before).Is(token.Ident, token.KwNamespace) {
			return false // Foo\bar() или namespace\bar()
		}
		leading = true
		prev = before
	}
	if prev >= 0 && !eligibleAfter(s, prev) {
		return false
	}

	m := a.scopeMap(s)
	if m.inAttribute(i) {
		return false
	}
	if leading {
		return true
	}

	r := m.regionAt(i)
	if r == m.regions[0] && len(m.regions) > 1 {
		// код вне всех namespace в файле, где они объявлены, PHP не компилирует
		return false
	}
	if imp, ok := r.lookupImport(t.Text); ok {
		return !strings.Contains(imp.name, `\`)
	}
	if r.declares(t.Text) {
		return true
	}
	return r.name == ""
}

// eligibleAfter reports whether a call may follow the token at prev.
func eligibleAfter(s *tokens.Stream, prev int) bool {
	switch s.At(prev).Kind {
	case token.DoubleColon, token.ObjectOperator, token.NullsafeObjectOperator,
		token.KwFunction, token.KwFn, token.KwNew, token.AttributeOpen:
		return false
	case token.Amp:
		// function &foo()
		before := s.PrevMeaningful(prev)
		return before < 0 || !s.At(before).Is(token.KwFunction, token.KwFn)
	default:
		return true
	}
}

// IsTheSameClassCall reports whether the name at i is accessed through
// $this, self, static or parent with '->', '?->' or '::'.
func (a *Functions) IsTheSameClassCall(s *tokens.Stream, i int) bool {
	if i < 0 || i >= s.Len() || s.At(i).Kind != token.Ident {
		return false
	}
	op := s.PrevMeaningful(i)
	if op < 0 || !s.At(op).Is(token.ObjectOperator, token.NullsafeObjectOperator, token.DoubleColon) {
		return false
	}
	ref := s.PrevMeaningful(op)
	if ref < 0 {
		return false
	}
	switch t := s.At(ref); t.Kind {
	case token.Variable:
		return t.EqualsTextFold("$this")
	case token.KwStatic:
		return true
	case token.Ident:
		return t.EqualsTextFold("self") || t.EqualsTextFold("parent")
	default:
		return false
	}
}
