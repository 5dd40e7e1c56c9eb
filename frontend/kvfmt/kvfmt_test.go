package kvfmt

import (
	"strings"
	"testing"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
	"github.com/kvlift/kvlift/frontend/parser"
)

func compile(t *testing.T, code string) *ast.Module {
	t.Helper()
	tokens, lexErr := lexer.Lex("test.kv", code)
	if lexErr != nil {
		t.Fatalf("Lex failed: %v", lexErr)
	}
	m, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func TestFormatCanonical(t *testing.T) {
	code := strings.Join([]string{
		"#:kivy 2.0",
		"<Chrome@BoxLayout>:",
		"  orientation: 'vertical'",
		"  Label:",
		"    id: header",
		"    text: self.parent.title",
		"  canvas:",
		"    Rectangle:",
		"      pos: self.pos",
		"",
	}, "\n")
	got := Format(compile(t, code))
	want := strings.Join([]string{
		"#:kivy 2.0",
		"",
		"<Chrome@BoxLayout>:",
		"    orientation: 'vertical'",
		"    canvas:",
		"        Rectangle:",
		"            pos: self.pos",
		"    Label:",
		"        id: header",
		"        text: self.parent.title",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("formatted:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIdempotent(t *testing.T) {
	sources := []string{
		"<A>:\n    text: 'x'\n    Label:\n        text: self.parent.text\n",
		"#:import np numpy\n#:set red (1, 0, 0, 1)\n<B>:\n    -width: 5\n",
		"[Header@Label]:\n    text: 'hi'\n",
		"BoxLayout:\n    orientation: 'horizontal'\n",
		"<W>:\n    canvas.before:\n        Color:\n            rgb: 1, 0, 0\n    canvas.after:\n        PopMatrix:\n",
	}
	for _, src := range sources {
		once := Format(compile(t, src))
		twice := Format(compile(t, once))
		if once != twice {
			t.Errorf("formatting not idempotent for %q:\nfirst:\n%s\nsecond:\n%s", src, once, twice)
		}
	}
}

func TestFormatRoundTripsStructure(t *testing.T) {
	code := strings.Join([]string{
		"<Form>:",
		"    height: self.parent.height / 2",
		"    on_press: print('hi')",
		"    TextInput:",
		"        id: name_input",
		"",
	}, "\n")
	m1 := compile(t, code)
	m2 := compile(t, Format(m1))

	r1, r2 := m1.Rules[0], m2.Rules[0]
	if r1.Selector.PrimaryName() != r2.Selector.PrimaryName() {
		t.Fatal("selector changed across formatting")
	}
	if len(r1.Properties) != len(r2.Properties) || len(r1.Handlers) != len(r2.Handlers) {
		t.Fatal("property shape changed across formatting")
	}
	if r1.Properties[0].RawValue != r2.Properties[0].RawValue {
		t.Fatalf("raw value changed: %q vs %q", r1.Properties[0].RawValue, r2.Properties[0].RawValue)
	}
	if _, ok := r2.IDs["name_input"]; !ok {
		t.Fatal("id lost across formatting")
	}
}
