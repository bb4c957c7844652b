package main

import (
	"bytes"
	"regexp"
	"strings"
)

// UsageResult holds per-binding usage flags for one ImportRecord, in binding
// order.
type UsageResult struct {
	Used []bool `json:"used,omitempty"`
}

// FullyUnused reports whether the record has bindings and every one of them
// is unused. Side-effect, dynamic and re-export records never qualify.
func (u UsageResult) FullyUnused() bool {
	if len(u.Used) == 0 {
		return false
	}
	for _, used := range u.Used {
		if used {
			return false
		}
	}
	return true
}

func (u UsageResult) AnyUnused() bool {
	for _, used := range u.Used {
		if !used {
			return true
		}
	}
	return false
}

// UnusedNames returns the local names of unused bindings in source order.
func (u UsageResult) UnusedNames(rec ImportRecord) []string {
	var names []string
	for i, used := range u.Used {
		if !used && i < len(rec.Bindings) {
			names = append(names, rec.Bindings[i].LocalName())
		}
	}
	return names
}

// TypeScript built-in utility and global type names. Skipped when harvesting
// generic type arguments so that `Record<string, Foo>` does not manufacture a
// phantom `Record` usage; a binding's own import is still checked by the
// identifier pass.
var typescriptBuiltinTypes = map[string]bool{
	"Array": true, "Promise": true, "Record": true, "Partial": true,
	"Required": true, "Readonly": true, "Pick": true, "Omit": true,
	"Exclude": true, "Extract": true, "NonNullable": true, "Parameters": true,
	"ConstructorParameters": true, "ReturnType": true, "InstanceType": true,
	"ThisParameterType": true, "OmitThisParameter": true, "ThisType": true,
	"Uppercase": true, "Lowercase": true, "Capitalize": true, "Uncapitalize": true,
	"String": true, "Number": true, "Boolean": true, "Object": true,
	"Function": true, "Date": true, "RegExp": true, "Error": true,
	"Map": true, "Set": true, "WeakMap": true, "WeakSet": true,
	"ArrayBuffer": true, "DataView": true, "Int8Array": true, "Uint8Array": true,
	"Uint8ClampedArray": true, "Int16Array": true, "Uint16Array": true,
	"Int32Array": true, "Uint32Array": true, "Float32Array": true,
	"Float64Array": true, "BigInt64Array": true, "BigUint64Array": true,
}

var (
	typeAnnotationRegexp   = regexp.MustCompile(`:\s*([A-Za-z_$][\w$]*)`)
	genericArgsRegexp      = regexp.MustCompile(`<([^<>]+)>`)
	extendsRegexp          = regexp.MustCompile(`\b(?:extends|implements)\s+([A-Za-z_$][\w$]*)`)
	typeAssertionRegexp    = regexp.MustCompile(`\bas\s+([A-Z][\w$]*)`)
	capitalIdentRegexp     = regexp.MustCompile(`\b([A-Z][\w$]*)\b`)
	destructuredCallRegexp = regexp.MustCompile(`(?:const|let|var)\s*(?:\[[^\]]*\]|\{[^}]*\})\s*=\s*(?:await\s+)?([A-Za-z_$][\w$]*)\s*\(`)
	localExportRegexp      = regexp.MustCompile(`\bexport\s*\{([^}]*)\}`)
)

// sanitizeSource blanks comments and string-literal contents with spaces,
// preserving byte offsets and newlines so statement ranges stay valid.
// Template literal text is blanked but `${}` interpolations are kept as code.
func sanitizeSource(code []byte) []byte {
	out := make([]byte, len(code))
	copy(out, code)
	i := 0
	n := len(code)

	blank := func(from, to int) {
		for k := from; k < to && k < n; k++ {
			if out[k] != '\n' {
				out[k] = ' '
			}
		}
	}

	for i < n {
		switch code[i] {
		case '/':
			if i+1 < n && code[i+1] == '/' {
				end := skipLineComment(code, i)
				blank(i, end)
				i = end
				continue
			}
			if i+1 < n && code[i+1] == '*' {
				end := skipBlockComment(code, i)
				blank(i, end)
				i = end
				continue
			}
			i++
		case '\'', '"':
			end := skipToStringEnd(code, i, code[i])
			blank(i+1, end)
			if end < n {
				end++
			}
			i = end
		case '`':
			i++
			for i < n && code[i] != '`' {
				if code[i] == '\\' && i+1 < n {
					blank(i, i+2)
					i += 2
					continue
				}
				if code[i] == '$' && i+1 < n && code[i+1] == '{' {
					// keep interpolation code, skip to matching brace
					depth := 1
					i += 2
					for i < n && depth > 0 {
						if code[i] == '{' {
							depth++
						} else if code[i] == '}' {
							depth--
						}
						i++
					}
					continue
				}
				out[i] = ' '
				if code[i] == '\n' {
					out[i] = '\n'
				}
				i++
			}
			if i < n {
				i++ // closing backtick
			}
		default:
			i++
		}
	}
	return out
}

// usageScan is the per-file read-only context shared by all detection passes.
type usageScan struct {
	text          []byte // sanitized source with import statements blanked
	typeIdents    map[string]bool
	invokedNames  map[string]bool
	localExported map[string]bool
}

func newUsageScan(code []byte, records []ImportRecord) *usageScan {
	text := sanitizeSource(code)
	for _, rec := range records {
		for k := rec.start; k < rec.end && k < len(text); k++ {
			if text[k] != '\n' {
				text[k] = ' '
			}
		}
	}

	scan := &usageScan{
		text:          text,
		typeIdents:    map[string]bool{},
		invokedNames:  map[string]bool{},
		localExported: map[string]bool{},
	}
	scan.harvest()
	return scan
}

func (s *usageScan) harvest() {
	text := s.text

	for _, m := range typeAnnotationRegexp.FindAllSubmatch(text, -1) {
		s.typeIdents[string(m[1])] = true
	}
	for _, m := range extendsRegexp.FindAllSubmatch(text, -1) {
		s.typeIdents[string(m[1])] = true
	}
	for _, m := range typeAssertionRegexp.FindAllSubmatch(text, -1) {
		s.typeIdents[string(m[1])] = true
	}
	for _, m := range genericArgsRegexp.FindAllSubmatch(text, -1) {
		for _, ident := range capitalIdentRegexp.FindAllSubmatch(m[1], -1) {
			name := string(ident[1])
			if !typescriptBuiltinTypes[name] {
				s.typeIdents[name] = true
			}
		}
	}

	for _, m := range destructuredCallRegexp.FindAllSubmatch(text, -1) {
		s.invokedNames[string(m[1])] = true
	}

	for _, m := range localExportRegexp.FindAllSubmatch(text, -1) {
		for _, entry := range strings.Split(string(m[1]), ",") {
			entry = strings.TrimSpace(entry)
			entry = strings.TrimPrefix(entry, "type ")
			// `export { local as publicName }` references the local name
			if idx := strings.Index(entry, " as "); idx >= 0 {
				entry = strings.TrimSpace(entry[:idx])
			}
			if entry != "" {
				s.localExported[entry] = true
			}
		}
	}
}

// identifierOccurs finds a word-boundary occurrence of name that is not a
// property access (`obj.name`).
func (s *usageScan) identifierOccurs(name string) bool {
	if name == "" {
		return false
	}
	needle := []byte(name)
	from := 0
	for {
		idx := bytes.Index(s.text[from:], needle)
		if idx < 0 {
			return false
		}
		idx += from
		before := byte(0)
		if idx > 0 {
			before = s.text[idx-1]
		}
		after := byte(0)
		if idx+len(needle) < len(s.text) {
			after = s.text[idx+len(needle)]
		}
		if !isByteIdentifierChar(before) && before != '.' && !isByteIdentifierChar(after) {
			return true
		}
		from = idx + len(needle)
	}
}

// jsxTagUsage matches `<Name`, `<Name.Sub` and `</Name` for capitalized
// component bindings.
func (s *usageScan) jsxTagUsage(name string) bool {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for _, prefix := range []string{"<" + name, "</" + name} {
		needle := []byte(prefix)
		from := 0
		for {
			idx := bytes.Index(s.text[from:], needle)
			if idx < 0 {
				break
			}
			idx += from
			after := byte(0)
			if idx+len(needle) < len(s.text) {
				after = s.text[idx+len(needle)]
			}
			if !isByteIdentifierChar(after) {
				return true
			}
			from = idx + len(needle)
		}
	}
	return false
}

func (s *usageScan) typePositionUsage(name string) bool {
	return s.typeIdents[name]
}

func (s *usageScan) destructuredCallUsage(name string) bool {
	return s.invokedNames[name]
}

func (s *usageScan) reExportUsage(name string) bool {
	return s.localExported[name]
}

// usagePasses is the fixed detection order: cheapest first, first match wins.
var usagePasses = []func(*usageScan, string) bool{
	(*usageScan).identifierOccurs,
	(*usageScan).jsxTagUsage,
	(*usageScan).typePositionUsage,
	(*usageScan).destructuredCallUsage,
	(*usageScan).reExportUsage,
}

func (s *usageScan) bindingUsed(b Binding) bool {
	name := b.LocalName()
	if name == "*" {
		// namespace re-export or bare star, nothing to reference locally
		return true
	}
	for _, pass := range usagePasses {
		if pass(s, name) {
			return true
		}
	}
	return false
}

// DetectUsage runs the ordered detection passes for every binding of every
// record. Records without bindings (side-effect, dynamic, partial) are never
// reported unused.
func DetectUsage(code []byte, records []ImportRecord) []UsageResult {
	scan := newUsageScan(code, records)
	results := make([]UsageResult, len(records))

	for i, rec := range records {
		if len(rec.Bindings) == 0 {
			continue
		}
		switch rec.Kind {
		case SideEffectImport, DynamicImport, ReExport:
			// re-exported symbols count as used by definition
			used := make([]bool, len(rec.Bindings))
			for k := range used {
				used[k] = true
			}
			results[i] = UsageResult{Used: used}
			continue
		}
		used := make([]bool, len(rec.Bindings))
		for k, b := range rec.Bindings {
			used[k] = scan.bindingUsed(b)
		}
		results[i] = UsageResult{Used: used}
	}
	return results
}
