package main

import (
	"testing"
)

func detectForTest(code string) ([]ImportRecord, []UsageResult) {
	records := ParseImports([]byte(code), "/project/src/test.tsx")
	return records, DetectUsage([]byte(code), records)
}

func TestUsedIdentifier(t *testing.T) {
	code := `
import { helper } from './helpers'
helper()
`
	_, usage := detectForTest(code)

	if len(usage) != 1 || usage[0].AnyUnused() {
		t.Errorf("helper is called and should be used: %+v", usage)
	}
}

func TestUnusedIdentifier(t *testing.T) {
	code := `
import { helper } from './helpers'
const x = 1
`
	records, usage := detectForTest(code)

	if len(usage) != 1 || !usage[0].FullyUnused() {
		t.Fatalf("helper should be unused: %+v", usage)
	}
	names := usage[0].UnusedNames(records[0])
	if len(names) != 1 || names[0] != "helper" {
		t.Errorf("unexpected unused names: %v", names)
	}
}

func TestPropertyAccessIsNotUsage(t *testing.T) {
	code := `
import { helper } from './helpers'
other.helper()
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("property access should not count as usage")
	}
}

func TestAliasCountsNotOriginalName(t *testing.T) {
	code := `
import { useEffect as effect } from 'react'
useEffect()
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("only the alias introduces a local name, original name usage should not count")
	}
}

func TestUsageInsideStringDoesNotCount(t *testing.T) {
	code := `
import { helper } from './helpers'
const note = "call helper later"
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("mention inside a string literal should not count as usage")
	}
}

func TestUsageInsideCommentDoesNotCount(t *testing.T) {
	code := `
import { helper } from './helpers'
// helper will be needed eventually
/* helper */
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("mention inside comments should not count as usage")
	}
}

func TestUsageInTemplateInterpolationCounts(t *testing.T) {
	code := "import { name } from './config'\nconst msg = `hello ${name}`\n"

	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("template interpolation should count as usage")
	}
}

func TestTemplateTextDoesNotCount(t *testing.T) {
	code := "import { name } from './config'\nconst msg = `name is fixed`\n"

	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("template literal text should not count as usage")
	}
}

func TestJsxComponentUsage(t *testing.T) {
	code := `
import Button from './Button'
export const App = () => <Button label="ok" />
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("JSX tag should count as usage")
	}
}

func TestJsxMemberComponentUsage(t *testing.T) {
	code := `
import Menu from './Menu'
export const Nav = () => <Menu.Item />
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("JSX member expression tag should count as usage")
	}
}

func TestTypeAnnotationUsage(t *testing.T) {
	code := `
import type { Props } from './types'
function render(props: Props) {}
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("type annotation should count as usage")
	}
}

func TestGenericArgumentUsage(t *testing.T) {
	code := `
import type { User } from './models'
const users: Array<User> = []
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("generic type argument should count as usage")
	}
}

func TestExtendsClauseUsage(t *testing.T) {
	code := `
import { BaseService } from './base'
class UserService extends BaseService {}
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("extends clause should count as usage")
	}
}

func TestBuiltinUtilityTypeImportStillChecked(t *testing.T) {
	// Importing a symbol that shadows a TS builtin name still gets a real
	// usage check on its own occurrences.
	code := `
import { Omit } from './compat'
const x: Omit<Foo, 'bar'> = y
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("imported Omit appears in a type position and should be used")
	}
}

func TestDestructuredHookCallUsage(t *testing.T) {
	code := `
import { useCounter } from './hooks'
const [count, setCount] = useCounter()
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("destructured hook call should count as usage")
	}
}

func TestLocalReExportUsage(t *testing.T) {
	code := `
import { internal } from './internal'
export { internal }
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("local re-export should count as usage")
	}
}

func TestPartiallyUnusedImport(t *testing.T) {
	code := `
import { used, unused } from './mixed'
used()
`
	records, usage := detectForTest(code)

	if usage[0].FullyUnused() {
		t.Fatalf("one binding is used, record must not be fully unused")
	}
	if !usage[0].AnyUnused() {
		t.Fatalf("the second binding is unused")
	}
	names := usage[0].UnusedNames(records[0])
	if len(names) != 1 || names[0] != "unused" {
		t.Errorf("unexpected unused names: %v", names)
	}
}

func TestSideEffectImportNeverUnused(t *testing.T) {
	code := `import './polyfills'`

	_, usage := detectForTest(code)

	if len(usage) != 1 || usage[0].FullyUnused() {
		t.Errorf("side-effect imports must never be reported unused")
	}
}

func TestReExportNeverUnused(t *testing.T) {
	code := `export { a, b } from './mod'`

	_, usage := detectForTest(code)

	if len(usage) != 1 || usage[0].AnyUnused() {
		t.Errorf("re-exported bindings count as used by definition")
	}
}

func TestNamespaceImportUsage(t *testing.T) {
	code := `
import * as utils from './utils'
utils.format()
`
	_, usage := detectForTest(code)

	if usage[0].AnyUnused() {
		t.Errorf("namespace member access should count as usage")
	}
}

func TestUnusedNamespaceImport(t *testing.T) {
	code := `
import * as utils from './utils'
const x = 1
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("unreferenced namespace import should be unused")
	}
}

func TestImportStatementDoesNotCountItself(t *testing.T) {
	code := `
import { helper } from './helpers'
import { helperTwo } from './helper-helpers'
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() || !usage[1].FullyUnused() {
		t.Errorf("import statements must not count as usage of their own bindings")
	}
}

func TestShorterNameNotMatchedInsideLonger(t *testing.T) {
	code := `
import { use } from './hooks'
const reuse = userName
`
	_, usage := detectForTest(code)

	if !usage[0].FullyUnused() {
		t.Errorf("word boundary check failed, 'use' matched inside longer identifiers")
	}
}
