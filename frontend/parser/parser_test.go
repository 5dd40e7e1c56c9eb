package parser

import (
	"strings"
	"testing"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
)

func mustParse(t *testing.T, code string) *ast.Module {
	t.Helper()
	tokens, lexErr := lexer.Lex("test.kv", code)
	if lexErr != nil {
		t.Fatalf("Lex failed: %v", lexErr)
	}
	m, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return m
}

func parseErr(t *testing.T, code string) *ParsingError {
	t.Helper()
	tokens, lexErr := lexer.Lex("test.kv", code)
	if lexErr != nil {
		t.Fatalf("Lex failed: %v", lexErr)
	}
	_, err := Parse(tokens)
	if err == nil {
		t.Fatal("expected parse error")
	}
	return err
}

func TestParseRuleSelectors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		primary string
	}{
		{"plain", "<Button>:\n    text: 'x'\n", "Button"},
		{"class selector", "<.danger>:\n    color: 1, 0, 0, 1\n", ".danger"},
		{"multiple", "<Button,ToggleButton>:\n    text: 'x'\n", "Button,ToggleButton"},
		{"dynamic", "<MyButton@Button>:\n    text: 'x'\n", "MyButton"},
		{"no colon", "<Button>\n    text: 'x'\n", "Button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.code)
			if len(m.Rules) != 1 {
				t.Fatalf("got %d rules", len(m.Rules))
			}
			if got := m.Rules[0].Selector.PrimaryName(); got != tt.primary {
				t.Fatalf("PrimaryName = %q, want %q", got, tt.primary)
			}
		})
	}
}

func TestParseDynamicClassRegistration(t *testing.T) {
	m := mustParse(t, "<ImageButton@ButtonBehavior+Image>:\n    source: 'a.png'\n")
	bases, ok := m.DynamicClasses["ImageButton"]
	if !ok {
		t.Fatal("dynamic class not registered")
	}
	if len(bases) != 2 || bases[0] != "ButtonBehavior" || bases[1] != "Image" {
		t.Fatalf("bases = %v", bases)
	}
}

func TestParseAvoidPreviousSelector(t *testing.T) {
	m := mustParse(t, "<-Button>:\n    text: 'x'\n")
	if !m.Rules[0].AvoidPrevious {
		t.Fatal("AvoidPrevious not set")
	}
}

func TestParseChildVersusProperty(t *testing.T) {
	code := strings.Join([]string{
		"<Chrome>:",
		"    orientation: 'vertical'",
		"    Label:",
		"        text: 'hi'",
		"",
	}, "\n")
	m := mustParse(t, code)
	rule := m.Rules[0]
	if len(rule.Properties) != 1 || rule.Properties[0].Name != "orientation" {
		t.Fatalf("properties = %+v", rule.Properties)
	}
	if len(rule.Children) != 1 || rule.Children[0].Name != "Label" {
		t.Fatalf("children = %+v", rule.Children)
	}
	if len(rule.Children[0].Properties) != 1 || rule.Children[0].Properties[0].Name != "text" {
		t.Fatalf("child properties = %+v", rule.Children[0].Properties)
	}
}

func TestParseHandlersSeparated(t *testing.T) {
	code := "<B>:\n    text: 'x'\n    on_press: print('hi')\n"
	m := mustParse(t, code)
	rule := m.Rules[0]
	if len(rule.Handlers) != 1 || rule.Handlers[0].Name != "on_press" {
		t.Fatalf("handlers = %+v", rule.Handlers)
	}
	if rule.Handlers[0].Compiled.Kind != ast.ValueCode {
		t.Fatalf("handler kind = %v", rule.Handlers[0].Compiled.Kind)
	}
}

func TestParseIDCollection(t *testing.T) {
	code := strings.Join([]string{
		"<Form>:",
		"    BoxLayout:",
		"        TextInput:",
		"            id: name_input",
		"",
	}, "\n")
	m := mustParse(t, code)
	rule := m.Rules[0]
	w, ok := rule.IDs["name_input"]
	if !ok {
		t.Fatal("id not collected")
	}
	if w.Name != "TextInput" || w.ID != "name_input" {
		t.Fatalf("collected widget = %+v", w)
	}
}

func TestParseRuleLevelIDRecorded(t *testing.T) {
	m := mustParse(t, "<Form>:\n    id: nonsense\n    text: 'x'\n")
	rule := m.Rules[0]
	if rule.RootID != "nonsense" {
		t.Fatalf("RootID = %q", rule.RootID)
	}
	if len(rule.Properties) != 1 {
		t.Fatalf("stray id leaked into properties: %+v", rule.Properties)
	}
}

func TestParseValueContinuation(t *testing.T) {
	code := strings.Join([]string{
		"<B>:",
		"    text:",
		"        'line one'",
		"        'line two'",
		"",
	}, "\n")
	m := mustParse(t, code)
	raw := m.Rules[0].Properties[0].RawValue
	if raw != "'line one'\n'line two'" {
		t.Fatalf("RawValue = %q", raw)
	}
}

func TestParseValueSpacing(t *testing.T) {
	tests := []struct {
		value string
	}{
		{"self.parent.width"},
		{"self.width / 2 + 10"},
		{"f'Width: {self.width}'"},
		{"(1, 0, 0, 1)"},
		{"'a' + str(self.x)"},
	}
	for _, tt := range tests {
		m := mustParse(t, "<B>:\n    v: "+tt.value+"\n")
		if got := m.Rules[0].Properties[0].RawValue; got != tt.value {
			t.Errorf("value %q round-tripped as %q", tt.value, got)
		}
	}
}

func TestParseIgnorePreviousProperty(t *testing.T) {
	m := mustParse(t, "<B>:\n    -text: 'x'\n")
	p := m.Rules[0].Properties[0]
	if !p.IgnorePrevious {
		t.Fatal("IgnorePrevious not set")
	}
	if p.Name != "text" {
		t.Fatalf("name = %q", p.Name)
	}
}

func TestParseCanvasLayers(t *testing.T) {
	code := strings.Join([]string{
		"<W>:",
		"    canvas.before:",
		"        Color:",
		"            rgb: 0, 1, 0",
		"    canvas:",
		"        Rectangle:",
		"            pos: self.pos",
		"    canvas.after:",
		"        PushMatrix:",
		"",
	}, "\n")
	m := mustParse(t, code)
	rule := m.Rules[0]
	if rule.CanvasBefore == nil || rule.Canvas == nil || rule.CanvasAfter == nil {
		t.Fatal("missing canvas layer")
	}
	if rule.Canvas.Instructions[0].InstructionType != "Rectangle" {
		t.Fatalf("instruction = %+v", rule.Canvas.Instructions[0])
	}
	if len(rule.CanvasAfter.Instructions[0].Properties) != 0 {
		t.Fatal("context instruction grew properties")
	}
}

func TestParseDuplicateCanvasLayer(t *testing.T) {
	code := "<W>:\n    canvas:\n        PushMatrix:\n    canvas:\n        PopMatrix:\n"
	err := parseErr(t, code)
	if !strings.Contains(err.Message, "duplicate") {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestParseDirectives(t *testing.T) {
	code := strings.Join([]string{
		"#:kivy 2.0",
		"#:import np numpy",
		"#:set red (1, 0, 0, 1)",
		"#:include force other.kv",
		"<B>:",
		"    text: 'x'",
		"",
	}, "\n")
	m := mustParse(t, code)
	if len(m.Directives) != 4 {
		t.Fatalf("got %d directives", len(m.Directives))
	}
	if d := m.Directives[0].(ast.KivyDirective); d.Version != "2.0" {
		t.Fatalf("kivy version = %q", d.Version)
	}
	if d := m.Directives[1].(ast.ImportDirective); d.Alias != "np" || d.Module != "numpy" {
		t.Fatalf("import = %+v", d)
	}
	if d := m.Directives[2].(ast.SetDirective); d.Name != "red" || d.Value != "(1, 0, 0, 1)" {
		t.Fatalf("set = %+v", d)
	}
	if d := m.Directives[3].(ast.IncludeDirective); d.Path != "other.kv" || !d.Force {
		t.Fatalf("include = %+v", d)
	}
}

func TestParseUnknownDirective(t *testing.T) {
	err := parseErr(t, "#:frobnicate yes\n")
	if !strings.Contains(err.Message, "frobnicate") {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestParseSecondRootRejected(t *testing.T) {
	err := parseErr(t, "BoxLayout:\n    width: 5\nLabel:\n    text: 'x'\n")
	if !strings.Contains(err.Message, "root widget") {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestParseTemplate(t *testing.T) {
	m := mustParse(t, "[Header@Label]:\n    text: 'hi'\n")
	if len(m.Templates) != 1 {
		t.Fatalf("got %d templates", len(m.Templates))
	}
	tpl := m.Templates[0]
	if tpl.Name != "Header" || len(tpl.BaseClasses) != 1 || tpl.BaseClasses[0] != "Label" {
		t.Fatalf("template = %+v", tpl)
	}
	if len(tpl.Rule.Properties) != 1 {
		t.Fatalf("template rule = %+v", tpl.Rule)
	}
}

func TestParseWithRecovery(t *testing.T) {
	code := strings.Join([]string{
		"<Good>:",
		"    text: 'a'",
		"<@Broken",
		"<AlsoGood>:",
		"    text: 'b'",
		"",
	}, "\n")
	tokens, lexErr := lexer.Lex("test.kv", code)
	if lexErr != nil {
		t.Fatalf("Lex failed: %v", lexErr)
	}
	res := ParseWithRecovery(tokens)
	if len(res.Errors) == 0 {
		t.Fatal("expected at least one error")
	}
	var names []string
	for _, r := range res.Module.Rules {
		names = append(names, r.Selector.PrimaryName())
	}
	if len(names) != 2 || names[0] != "Good" || names[1] != "AlsoGood" {
		t.Fatalf("recovered rules = %v", names)
	}
}

func TestParsePropertyCompiledAtConstruction(t *testing.T) {
	m := mustParse(t, "<B>:\n    height: self.parent.height / 2\n")
	p := m.Rules[0].Properties[0]
	if len(p.Watched) != 1 {
		t.Fatalf("watched = %v", p.Watched)
	}
	if strings.Join(p.Watched[0], ".") != "self.parent.height" {
		t.Fatalf("watched key = %v", p.Watched[0])
	}
}
