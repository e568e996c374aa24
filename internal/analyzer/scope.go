package analyzer

import (
	"strings"

	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

type frameKind uint8

const (
	frameBlock frameKind = iota // if/while/match and other plain braces
	frameNamespace
	frameClass
	frameFunction
)

type importKind uint8

const (
	importClass importKind = iota
	importFunction
	importConst
)

// importDecl is one name brought in by a top-level use statement.
type importDecl struct {
	kind  importKind
	name  string // full name as written, leading '\' removed
	alias string // lower-cased local name
}

// region is a namespace body: braced, statement form or the implicit global one.
type region struct {
	name      string // "" for the global namespace
	start     int
	end       int // exclusive
	imports   []importDecl
	functions map[string]struct{} // lower-cased names of top-level declarations
}

func (r *region) lookupImport(name string) (importDecl, bool) {
	key := token.ToLowerASCII(name)
	for _, imp := range r.imports {
		if imp.kind == importConst {
			continue
		}
		if imp.alias == key {
			return imp, true
		}
	}
	return importDecl{}, false
}

func (r *region) declares(name string) bool {
	_, ok := r.functions[token.ToLowerASCII(name)]
	return ok
}

// scopeMap is everything the call resolver needs to know about one stream.
type scopeMap struct {
	regions    []*region // [0] всегда глобальный регион на весь файл
	attributes [][2]int  // '#[' .. ']' включительно
}

// regionAt returns the innermost region covering token i.
func (m *scopeMap) regionAt(i int) *region {
	for k := len(m.regions) - 1; k > 0; k-- {
		if r := m.regions[k]; i >= r.start && i < r.end {
			return r
		}
	}
	return m.regions[0]
}

func (m *scopeMap) inAttribute(i int) bool {
	for _, a := range m.attributes {
		if i >= a[0] && i <= a[1] {
			return true
		}
	}
	return false
}

type headerKind uint8

const (
	headerNamespace headerKind = iota
	headerClass
	headerFunction
)

// pendingHeader is a declaration keyword still waiting for its '{'.
type pendingHeader struct {
	kind  headerKind
	depth int    // глубина скобок, на которой встретили ключевое слово
	name  string // имя пространства имён для headerNamespace
	at    int
}

// scanner walks the stream once, left to right, and builds a scopeMap.
//
// State: a stack of open frames, a stack of headers whose body has not
// started yet, the current parenthesis depth and the region that receives
// imports and declarations. Transitions:
//   - namespace/class/function keywords push a pending header;
//   - '{' pushes the frame of the innermost header waiting at the current
//     parenthesis depth, or a plain block frame;
//   - '}' pops a frame; closing a namespace frame ends its region;
//   - ';' at a function header's depth drops it (abstract or interface method);
//   - top-level use statements and function declarations are recorded in the
//     current region.
type scanner struct {
	s          *tokens.Stream
	m          *scopeMap
	frames     []frameKind
	regionOf   []*region // регион, открытый фреймом; nil для прочих
	pending    []pendingHeader
	parenDepth int
	current    *region
}

func buildScopeMap(s *tokens.Stream) *scopeMap {
	global := &region{start: 0, end: s.Len(), functions: map[string]struct{}{}}
	sc := &scanner{
		s:       s,
		m:       &scopeMap{regions: []*region{global}},
		current: global,
	}
	sc.run()
	return sc.m
}

func (sc *scanner) run() {
	s := sc.s
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		switch t.Kind {
		case token.AttributeOpen:
			end, err := s.MatchBlockEnd(i)
			if err != nil {
				end = s.Len() - 1
			}
			sc.m.attributes = append(sc.m.attributes, [2]int{i, end})
			i = end

		case token.LParen:
			sc.parenDepth++
		case token.RParen:
			sc.parenDepth--

		case token.KwNamespace:
			i = sc.namespace(i)

		case token.KwClass, token.KwInterface, token.KwTrait, token.KwEnum:
			if prev := s.PrevMeaningful(i); prev >= 0 && s.At(prev).Kind == token.DoubleColon {
				continue // Foo::class
			}
			sc.pending = append(sc.pending, pendingHeader{kind: headerClass, depth: sc.parenDepth, at: i})

		case token.KwFunction:
			sc.function(i)

		case token.KwUse:
			if sc.atTopLevel() && !sc.afterCloseParen(i) {
				i = sc.use(i)
			}

		case token.Semicolon:
			if n := len(sc.pending); n > 0 && sc.pending[n-1].kind == headerFunction && sc.pending[n-1].depth == sc.parenDepth {
				sc.pending = sc.pending[:n-1]
			}

		case token.LBrace:
			sc.open(i)
		case token.RBrace:
			sc.close(i)
		}
	}
}

// atTopLevel reports whether no class or function body is open.
func (sc *scanner) atTopLevel() bool {
	for _, f := range sc.frames {
		if f == frameClass || f == frameFunction {
			return false
		}
	}
	return true
}

// afterCloseParen отличает "function() use ($x)" от импорта.
func (sc *scanner) afterCloseParen(i int) bool {
	prev := sc.s.PrevMeaningful(i)
	return prev >= 0 && sc.s.At(prev).Kind == token.RParen
}

func (sc *scanner) open(i int) {
	kind := frameBlock
	var reg *region
	if n := len(sc.pending); n > 0 && sc.pending[n-1].depth == sc.parenDepth {
		h := sc.pending[n-1]
		sc.pending = sc.pending[:n-1]
		switch h.kind {
		case headerClass:
			kind = frameClass
		case headerFunction:
			kind = frameFunction
		case headerNamespace:
			kind = frameNamespace
			reg = &region{name: h.name, start: h.at, end: sc.s.Len(), functions: map[string]struct{}{}}
			sc.m.regions = append(sc.m.regions, reg)
			sc.current = reg
		}
	}
	sc.frames = append(sc.frames, kind)
	sc.regionOf = append(sc.regionOf, reg)
}

func (sc *scanner) close(i int) {
	n := len(sc.frames)
	if n == 0 {
		return
	}
	reg := sc.regionOf[n-1]
	sc.frames = sc.frames[:n-1]
	sc.regionOf = sc.regionOf[:n-1]
	if reg != nil {
		reg.end = i + 1
		sc.current = sc.m.regions[0]
	}
}

// namespace handles a namespace declaration and returns the index to resume
// from. 'namespace\foo()' is a relative name, not a declaration.
func (sc *scanner) namespace(i int) int {
	s := sc.s
	next := s.NextMeaningful(i)
	if next < 0 || s.At(next).Kind == token.NsSeparator {
		return i
	}
	name, j := readName(s, next)
	switch s.At(j).Kind {
	case token.LBrace:
		sc.endStatementRegion(i)
		sc.pending = append(sc.pending, pendingHeader{kind: headerNamespace, depth: sc.parenDepth, name: name, at: i})
		return j - 1 // '{' обработает open
	case token.Semicolon:
		sc.endStatementRegion(i)
		reg := &region{name: name, start: i, end: s.Len(), functions: map[string]struct{}{}}
		sc.m.regions = append(sc.m.regions, reg)
		sc.current = reg
		return j
	default:
		return i
	}
}

// endStatementRegion closes a 'namespace X;' region at the next declaration.
func (sc *scanner) endStatementRegion(i int) {
	if sc.current != sc.m.regions[0] {
		sc.current.end = i
		sc.current = sc.m.regions[0]
	}
}

func (sc *scanner) function(i int) {
	s := sc.s
	sc.pending = append(sc.pending, pendingHeader{kind: headerFunction, depth: sc.parenDepth, at: i})
	if !sc.atTopLevel() {
		return
	}
	next := s.NextMeaningful(i)
	if next >= 0 && s.At(next).Kind == token.Amp {
		next = s.NextMeaningful(next)
	}
	if next >= 0 && s.At(next).Kind == token.Ident {
		sc.current.functions[token.ToLowerASCII(s.At(next).Text)] = struct{}{}
	}
}

// use parses an import statement (plain, comma separated or grouped) and
// returns the index of its terminating ';'.
func (sc *scanner) use(i int) int {
	s := sc.s
	j := s.NextMeaningful(i)
	kind := importClass
	switch s.At(j).Kind {
	case token.KwFunction:
		kind, j = importFunction, s.NextMeaningful(j)
	case token.KwConst:
		kind, j = importConst, s.NextMeaningful(j)
	}

	for j >= 0 && j < s.Len() {
		name, k := readName(s, j)
		if s.At(k).Kind == token.LBrace {
			k = sc.useGroup(strings.TrimSuffix(name, `\`), kind, k)
		} else {
			alias, after := readAlias(s, k, name)
			sc.addImport(kind, name, alias)
			k = after
		}
		switch s.At(k).Kind {
		case token.Comma:
			j = s.NextMeaningful(k)
		case token.Semicolon:
			return k
		default:
			return max(k-1, i)
		}
	}
	return i
}

// useGroup reads 'prefix\{a, function b as c}' starting at '{' and returns
// the index after the closing '}'.
func (sc *scanner) useGroup(prefix string, kind importKind, open int) int {
	s := sc.s
	j := s.NextMeaningful(open)
	for j >= 0 && s.At(j).Kind != token.RBrace {
		itemKind := kind
		switch s.At(j).Kind {
		case token.KwFunction:
			itemKind, j = importFunction, s.NextMeaningful(j)
		case token.KwConst:
			itemKind, j = importConst, s.NextMeaningful(j)
		}
		name, k := readName(s, j)
		full := prefix + `\` + name
		alias, after := readAlias(s, k, full)
		sc.addImport(itemKind, full, alias)
		j = after
		if s.At(j).Kind == token.Comma {
			j = s.NextMeaningful(j)
		} else if s.At(j).Kind != token.RBrace {
			return j
		}
	}
	if j < 0 {
		return s.Len()
	}
	return s.NextMeaningful(j)
}

func (sc *scanner) addImport(kind importKind, name, alias string) {
	name = strings.TrimPrefix(name, `\`)
	if name == "" {
		return
	}
	sc.current.imports = append(sc.current.imports, importDecl{
		kind:  kind,
		name:  name,
		alias: token.ToLowerASCII(alias),
	})
}

// readName concatenates a possibly qualified name starting at j, skipping
// trivia, and returns it with the index of the first token after it.
func readName(s *tokens.Stream, j int) (string, int) {
	var sb strings.Builder
	for j >= 0 && j < s.Len() {
		t := s.At(j)
		if t.Kind != token.Ident && t.Kind != token.NsSeparator && !isNameKeyword(t.Kind) {
			break
		}
		sb.WriteString(t.Text)
		j = s.NextMeaningful(j)
	}
	if j < 0 {
		j = s.Len()
	}
	return sb.String(), j
}

// isNameKeyword reports keywords allowed as segments of a qualified name.
func isNameKeyword(k token.Kind) bool {
	if !k.IsKeyword() {
		return false
	}
	switch k {
	case token.KwAs, token.KwFunction, token.KwConst, token.KwNamespace:
		return false
	default:
		return true
	}
}

// readAlias reads an optional 'as alias'. Without one the alias is the last
// segment of name.
func readAlias(s *tokens.Stream, j int, name string) (string, int) {
	if s.At(j).Kind == token.KwAs {
		next := s.NextMeaningful(j)
		if next >= 0 {
			after := s.NextMeaningful(next)
			if after < 0 {
				after = s.Len()
			}
			return s.At(next).Text, after
		}
	}
	if k := strings.LastIndexByte(name, '\\'); k >= 0 {
		name = name[k+1:]
	}
	return name, j
}
