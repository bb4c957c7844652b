package main

import (
	"bytes"
	"strings"
)

type ImportKind uint8

const (
	DefaultImport ImportKind = iota
	NamedImport
	NamespaceImport
	TypeOnlyImport
	SideEffectImport
	DynamicImport
	ReExport
)

func (k ImportKind) String() string {
	switch k {
	case DefaultImport:
		return "default"
	case NamedImport:
		return "named"
	case NamespaceImport:
		return "namespace"
	case TypeOnlyImport:
		return "type-only"
	case SideEffectImport:
		return "side-effect"
	case DynamicImport:
		return "dynamic"
	case ReExport:
		return "re-export"
	}
	return "unknown"
}

// Binding is a single identifier introduced into file scope by one import
// statement. Name is the exported name ("*" for namespace imports), Alias the
// local name when `as` was used.
type Binding struct {
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
	IsType bool   `json:"isType,omitempty"`
}

// LocalName is the identifier the rest of the file refers to.
func (b Binding) LocalName() string {
	if b.Alias != "" {
		return b.Alias
	}
	return b.Name
}

type ImportRecord struct {
	FilePath  string     `json:"file"`
	Line      int        `json:"line"`
	Statement string     `json:"statement"`
	Kind      ImportKind `json:"-"`
	Specifier string     `json:"specifier"`
	Bindings  []Binding  `json:"bindings,omitempty"`
	Malformed bool       `json:"malformed,omitempty"`

	// byte range of the statement in the source, used to blank import lines
	// before usage detection
	start, end int
}

func isWhiteSpace(char byte) bool {
	return (char == ' ' || char == '\t' || char == '\n' || char == '\r')
}

func skipSpaces(code []byte, i int) int {
	for i < len(code) && isWhiteSpace(code[i]) {
		i++
	}
	return i
}

func isByteIdentifierChar(char byte) bool {
	// 0-9 || A-Z || a-z || _ || $
	return (char >= '0' && char <= '9') || (char >= 'A' && char <= 'Z') || (char >= 'a' && char <= 'z') || char == '_' || char == '$'
}

func hasPrefixAt(code []byte, i int, s string) bool {
	if i < 0 || i+len(s) > len(code) {
		return false
	}
	for j := 0; j < len(s); j++ {
		if code[i+j] != s[j] {
			return false
		}
	}
	return true
}

func hasWordAt(code []byte, i int, s string) bool {
	if !hasPrefixAt(code, i, s) {
		return false
	}
	end := i + len(s)
	return end >= len(code) || !isByteIdentifierChar(code[end])
}

// parseStringLiteral extracts the string literal at position i (' or ")
func parseStringLiteral(code []byte, i int) (value string, next int) {
	quote := code[i]
	i++
	start := i
	for i < len(code) && code[i] != quote {
		i++
	}
	if i >= len(code) {
		return "", i
	}
	return string(code[start:i]), i + 1
}

// parseCallSpecifier extracts a string-literal argument from a call like
// import('./mod') or require("mod"). Non-literal arguments yield "".
func parseCallSpecifier(code []byte, i int) (value string, next int) {
	i = skipSpaces(code, i)
	if i >= len(code) || code[i] != '(' {
		return "", i
	}
	i++
	depth := 1
	for i < len(code) {
		switch code[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return value, i
			}
		case '\'', '"':
			if value == "" {
				value, i = parseStringLiteral(code, i)
			} else {
				i = skipToStringEnd(code, i, code[i]) + 1
			}
		case '`':
			i = skipToStringEnd(code, i, '`') + 1
		default:
			i++
		}
	}
	return value, i
}

func skipToStringEnd(code []byte, start int, quote byte) int {
	i := start + 1
	for i < len(code) {
		if code[i] == quote {
			return i
		}
		if code[i] == '\\' && i+1 < len(code) {
			i += 2
		} else {
			i++
		}
	}
	return i
}

func skipLineComment(code []byte, start int) int {
	i := start + 2
	for i < len(code) && code[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(code []byte, start int) int {
	i := start + 2
	for i+1 < len(code) && !(code[i] == '*' && code[i+1] == '/') {
		i++
	}
	if i+1 < len(code) {
		i += 2
	}
	return i
}

func skipSpacesAndComments(code []byte, i int) int {
	n := len(code)
	for i < n {
		i = skipSpaces(code, i)
		if i+1 < n && code[i] == '/' && code[i+1] == '/' {
			i = skipLineComment(code, i)
			continue
		}
		if i+1 < n && code[i] == '/' && code[i+1] == '*' {
			i = skipBlockComment(code, i)
			continue
		}
		break
	}
	return i
}

// skipOptionalSemicolon skips spaces/tabs then `;` if present.
func skipOptionalSemicolon(code []byte, i int) int {
	n := len(code)
	j := i
	for j < n && (code[j] == ' ' || code[j] == '\t') {
		j++
	}
	if j < n && code[j] == ';' {
		return j + 1
	}
	return i
}

func parseIdentifier(code []byte, i int) (name string, next int) {
	n := len(code)
	if i >= n || !isByteIdentifierChar(code[i]) || (code[i] >= '0' && code[i] <= '9') {
		return "", i
	}
	start := i
	for i < n && isByteIdentifierChar(code[i]) {
		i++
	}
	return string(code[start:i]), i
}

// parseNamedBindings parses a brace list `{ A, B as C, type D }`.
// code[i] must point at '{'. stmtType marks every binding as a type binding
// (whole-statement `import type`).
func parseNamedBindings(code []byte, i int, stmtType bool) (bindings []Binding, next int) {
	n := len(code)
	i++ // skip '{'
	for i < n {
		i = skipSpacesAndComments(code, i)
		if i >= n {
			return bindings, i
		}
		if code[i] == '}' {
			return bindings, i + 1
		}

		isType := stmtType
		// Inline `type` modifier. Lookahead decides between the modifier and
		// an identifier actually named "type" (`{ type }`, `{ type as T }`).
		if hasWordAt(code, i, "type") {
			j := skipSpacesAndComments(code, i+4)
			if j < n && (isByteIdentifierChar(code[j]) || code[j] == '"' || code[j] == '\'') && !hasWordAt(code, j, "as") {
				isType = true
				i = j
			}
		}

		var name string
		if i < n && (code[i] == '"' || code[i] == '\'') {
			// string export names: `{ "weird name" as alias }`
			name, i = parseStringLiteral(code, i)
		} else {
			name, i = parseIdentifier(code, i)
			if name == "" {
				i++ // skip unexpected char
				continue
			}
		}

		i = skipSpacesAndComments(code, i)
		alias := ""
		if hasWordAt(code, i, "as") {
			i = skipSpacesAndComments(code, i+2)
			alias, i = parseIdentifier(code, i)
		}

		bindings = append(bindings, Binding{Name: name, Alias: alias, IsType: isType})

		i = skipSpacesAndComments(code, i)
		if i < n && code[i] == ',' {
			i++
		}
	}
	return bindings, i
}

// parseImportClause parses everything between `import [type]` and `from`:
// default, namespace, named and mixed forms.
func parseImportClause(code []byte, i int, stmtType bool) (bindings []Binding, hasDefault bool, next int) {
	n := len(code)
	i = skipSpacesAndComments(code, i)
	if i >= n {
		return nil, false, i
	}

	if code[i] == '*' {
		i = skipSpacesAndComments(code, i+1)
		if hasWordAt(code, i, "as") {
			i = skipSpacesAndComments(code, i+2)
			alias, after := parseIdentifier(code, i)
			if alias != "" {
				bindings = append(bindings, Binding{Name: "*", Alias: alias, IsType: stmtType})
			}
			i = after
		}
		return bindings, false, i
	}

	if code[i] == '{' {
		bindings, i = parseNamedBindings(code, i, stmtType)
		return bindings, false, i
	}

	name, after := parseIdentifier(code, i)
	if name == "" {
		return nil, false, i
	}
	i = after
	bindings = append(bindings, Binding{Name: name, IsType: stmtType})
	hasDefault = true

	i = skipSpacesAndComments(code, i)
	if i < n && code[i] == ',' {
		i = skipSpacesAndComments(code, i+1)
		if i < n && code[i] == '*' {
			more, _, after := parseImportClause(code, i, stmtType)
			bindings = append(bindings, more...)
			i = after
		} else if i < n && code[i] == '{' {
			var more []Binding
			more, i = parseNamedBindings(code, i, stmtType)
			bindings = append(bindings, more...)
		}
	}

	return bindings, hasDefault, i
}

type parseState struct {
	code     []byte
	n        int
	filePath string
	records  []ImportRecord
}

func (s *parseState) emit(rec ImportRecord, stmtStart, stmtEnd int) {
	if stmtEnd > s.n {
		stmtEnd = s.n
	}
	rec.FilePath = s.filePath
	rec.Line = 1 + bytes.Count(s.code[:stmtStart], []byte{'\n'})
	rec.Statement = strings.TrimSpace(string(s.code[stmtStart:stmtEnd]))
	rec.start = stmtStart
	rec.end = stmtEnd
	s.records = append(s.records, rec)
}

func importKindFor(bindings []Binding, hasDefault, stmtType bool) ImportKind {
	if stmtType {
		return TypeOnlyImport
	}
	if len(bindings) > 0 {
		allType := true
		for _, b := range bindings {
			if !b.IsType {
				allType = false
				break
			}
		}
		if allType {
			return TypeOnlyImport
		}
	}
	if hasDefault {
		return DefaultImport
	}
	if len(bindings) == 1 && bindings[0].Name == "*" {
		return NamespaceImport
	}
	return NamedImport
}

func (s *parseState) parseImportStatement(i int) (int, bool) {
	if !hasPrefixAt(s.code, i, "import") {
		return i, false
	}

	stmtStart := i
	i += len("import")
	if i >= s.n {
		return i, true
	}
	if !(isWhiteSpace(s.code[i]) || s.code[i] == '{' || s.code[i] == '"' || s.code[i] == '\'' || s.code[i] == '*' || s.code[i] == '(') {
		return i, true
	}

	i = skipSpacesAndComments(s.code, i)
	stmtType := false
	if hasWordAt(s.code, i, "type") {
		j := skipSpacesAndComments(s.code, i+4)
		// `import type from 'm'` imports a default named "type"; everything
		// else after the keyword is a type-only clause
		if j < s.n && !hasWordAt(s.code, j, "from") {
			stmtType = true
			i = j
		}
	}

	// Side-effect import: import "mod"
	if i < s.n && (s.code[i] == '"' || s.code[i] == '\'') {
		specifier, next := parseStringLiteral(s.code, i)
		end := skipOptionalSemicolon(s.code, next)
		if specifier != "" {
			s.emit(ImportRecord{Kind: SideEffectImport, Specifier: specifier}, stmtStart, end)
		}
		return next, true
	}

	// Dynamic import: import("mod")
	if i < s.n && s.code[i] == '(' {
		specifier, next := parseCallSpecifier(s.code, i)
		if specifier != "" {
			s.emit(ImportRecord{Kind: DynamicImport, Specifier: specifier}, stmtStart, next)
		}
		return next, true
	}

	bindings, hasDefault, i := parseImportClause(s.code, i, stmtType)

	foundFrom := false
	scanStart := i
	for i < s.n {
		if hasWordAt(s.code, i, "from") {
			foundFrom = true
			break
		}
		if i+1 < s.n && s.code[i] == '/' && s.code[i+1] == '/' {
			i = skipLineComment(s.code, i)
			continue
		}
		if i+1 < s.n && s.code[i] == '/' && s.code[i+1] == '*' {
			i = skipBlockComment(s.code, i)
			continue
		}
		if s.code[i] == ';' || hasWordAt(s.code, i, "import") || hasWordAt(s.code, i, "export") {
			break
		}
		i++
	}

	if foundFrom {
		i = skipSpaces(s.code, i+len("from"))
		if i < s.n && (s.code[i] == '"' || s.code[i] == '\'') {
			specifier, next := parseStringLiteral(s.code, i)
			end := skipOptionalSemicolon(s.code, next)
			if specifier != "" {
				s.emit(ImportRecord{
					Kind:      importKindFor(bindings, hasDefault, stmtType),
					Specifier: specifier,
					Bindings:  bindings,
				}, stmtStart, end)
			}
			return next, true
		}
		return i, true
	}

	// Malformed static import (eg `import X form "mod"`): scan the rest of
	// the line for a string literal and degrade to a partial record.
	j := scanStart
	for j < s.n {
		if j+1 < s.n && s.code[j] == '/' && s.code[j+1] == '/' {
			j = skipLineComment(s.code, j)
			break
		}
		if s.code[j] == ';' || s.code[j] == '\n' || s.code[j] == '\r' {
			break
		}
		if s.code[j] == '"' || s.code[j] == '\'' {
			specifier, next := parseStringLiteral(s.code, j)
			if specifier != "" {
				s.emit(ImportRecord{
					Kind:      importKindFor(bindings, hasDefault, stmtType),
					Specifier: specifier,
					Malformed: true,
				}, stmtStart, next)
			}
			return next, true
		}
		j++
	}
	return j, true
}

func (s *parseState) parseExportStatement(i int) (int, bool) {
	if !hasPrefixAt(s.code, i, "export") {
		return i, false
	}

	stmtStart := i
	i += len("export")
	if i >= s.n || !(isWhiteSpace(s.code[i]) || s.code[i] == '{' || s.code[i] == '*') {
		return i, true
	}

	i = skipSpacesAndComments(s.code, i)
	stmtType := false
	if hasWordAt(s.code, i, "type") {
		j := skipSpacesAndComments(s.code, i+4)
		if j < s.n && (s.code[j] == '{' || s.code[j] == '*') {
			stmtType = true
			i = j
		} else {
			// `export type Foo = ...` is a local declaration, not a record
			return i, true
		}
	}

	var bindings []Binding

	if i < s.n && s.code[i] == '*' {
		// `export *` or `export * as ns`
		i = skipSpacesAndComments(s.code, i+1)
		alias := ""
		if hasWordAt(s.code, i, "as") {
			i = skipSpacesAndComments(s.code, i+2)
			alias, i = parseIdentifier(s.code, i)
		}
		bindings = append(bindings, Binding{Name: "*", Alias: alias, IsType: stmtType})
	} else if i < s.n && s.code[i] == '{' {
		bindings, i = parseNamedBindings(s.code, i, stmtType)
	} else {
		// export const/function/class/... declarations carry no specifier
		return i, true
	}

	i = skipSpacesAndComments(s.code, i)
	if !hasWordAt(s.code, i, "from") {
		// local export list, eg `export { A, B }`, usage detection reads it
		// straight from the source text
		return i, true
	}

	i = skipSpaces(s.code, i+len("from"))
	if i < s.n && (s.code[i] == '"' || s.code[i] == '\'') {
		specifier, next := parseStringLiteral(s.code, i)
		end := skipOptionalSemicolon(s.code, next)
		if specifier != "" {
			s.emit(ImportRecord{Kind: ReExport, Specifier: specifier, Bindings: bindings}, stmtStart, end)
		}
		return next, true
	}
	return i, true
}

// parseRequireDeclaration handles `const X = require('m')` and
// `const { a, b } = require('m')` at top level.
func (s *parseState) parseRequireDeclaration(i int) (int, bool) {
	stmtStart := i
	var kwLen int
	switch {
	case hasWordAt(s.code, i, "const"):
		kwLen = 5
	case hasWordAt(s.code, i, "let"):
		kwLen = 3
	case hasWordAt(s.code, i, "var"):
		kwLen = 3
	default:
		return i, false
	}

	j := skipSpacesAndComments(s.code, i+kwLen)

	var bindings []Binding
	hasDefault := false
	if j < s.n && s.code[j] == '{' {
		bindings, j = parseNamedBindings(s.code, j, false)
	} else {
		name, next := parseIdentifier(s.code, j)
		if name == "" {
			return i, false
		}
		bindings = append(bindings, Binding{Name: name})
		hasDefault = true
		j = next
	}

	j = skipSpacesAndComments(s.code, j)
	if j >= s.n || s.code[j] != '=' {
		return i, false
	}
	j = skipSpacesAndComments(s.code, j+1)
	if !hasWordAt(s.code, j, "require") {
		return i, false
	}
	specifier, next := parseCallSpecifier(s.code, j+len("require"))
	if specifier == "" {
		return i, false
	}
	end := skipOptionalSemicolon(s.code, next)

	kind := NamedImport
	if hasDefault {
		kind = DefaultImport
	}
	s.emit(ImportRecord{Kind: kind, Specifier: specifier, Bindings: bindings}, stmtStart, end)
	return next, true
}

func (s *parseState) parseBareRequire(i int) (int, bool) {
	if !hasWordAt(s.code, i, "require") {
		return i, false
	}
	stmtStart := i
	specifier, next := parseCallSpecifier(s.code, i+len("require"))
	if specifier == "" {
		return next, true
	}
	s.emit(ImportRecord{Kind: DynamicImport, Specifier: specifier}, stmtStart, next)
	return next, true
}

// ParseImports scans JS/TS source and extracts every import, require and
// re-export as an ImportRecord, in source order. It never fails: malformed
// statements degrade to partial records.
func ParseImports(code []byte, filePath string) []ImportRecord {
	state := &parseState{
		code:     code,
		n:        len(code),
		filePath: filePath,
		records:  make([]ImportRecord, 0, 16),
	}
	i := 0
	n := state.n
	depth := 0 // brace depth: static import/export only appear at depth 0

	for i < n {
		// Fast path inside braces: only dynamic import() and require() can
		// occur, so a tight byte switch replaces full keyword detection.
		if depth > 0 {
			b := state.code[i]
			switch b {
			case '{':
				depth++
				i++
			case '}':
				depth--
				i++
			case '\'', '"', '`':
				i = skipToStringEnd(state.code, i, b)
				if i < n {
					i++
				}
			case '/':
				if i+1 < n && state.code[i+1] == '/' {
					i = skipLineComment(state.code, i)
				} else if i+1 < n && state.code[i+1] == '*' {
					i = skipBlockComment(state.code, i)
				} else {
					i++
				}
			case 'i':
				if hasWordAt(state.code, i, "import") {
					stmtStart := i
					j := skipSpaces(state.code, i+6)
					if j < n && state.code[j] == '(' {
						specifier, next := parseCallSpecifier(state.code, j)
						if specifier != "" {
							state.emit(ImportRecord{Kind: DynamicImport, Specifier: specifier}, stmtStart, next)
						}
						i = next
						continue
					}
				}
				i++
			case 'r':
				if next, ok := state.parseBareRequire(i); ok {
					i = next
				} else {
					i++
				}
			default:
				i++
			}
			continue
		}

		i = skipSpaces(state.code, i)
		if i >= n {
			break
		}

		switch state.code[i] {
		case '\'', '"', '`':
			i = skipToStringEnd(state.code, i, state.code[i])
			if i < n {
				i++
			}
			continue
		case '/':
			if i+1 < n && state.code[i+1] == '/' {
				i = skipLineComment(state.code, i)
				continue
			}
			if i+1 < n && state.code[i+1] == '*' {
				i = skipBlockComment(state.code, i)
				continue
			}
		case 'i':
			if next, ok := state.parseImportStatement(i); ok {
				i = next
				continue
			}
		case 'e':
			if next, ok := state.parseExportStatement(i); ok {
				i = next
				continue
			}
		case 'r':
			if next, ok := state.parseBareRequire(i); ok {
				i = next
				continue
			}
		case 'c', 'l', 'v':
			if next, ok := state.parseRequireDeclaration(i); ok {
				i = next
				continue
			}
		}

		if state.code[i] == '{' {
			depth++
		}
		i++
	}

	return state.records
}
