package codegen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/kvlift/kvlift/frontend/ast"
	"github.com/kvlift/kvlift/frontend/lexer"
	"github.com/kvlift/kvlift/frontend/parser"
	"github.com/kvlift/kvlift/registry"
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

func generate(t *testing.T, code string) string {
	t.Helper()
	return Generate(compile(t, code), Options{})
}

func py(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestGenerateSetterShortcut(t *testing.T) {
	got := generate(t, "<MyWidget>:\n    height: self.width\n")
	want := py(
		"from kivy.uix.widget import Widget",
		"",
		"",
		"class MyWidget(Widget):",
		"",
		"    def __init__(self, **kwargs):",
		"        super().__init__(**kwargs)",
		"        self._bindings = []",
		"        self.height = self.width",
		"        self.bind(width=self.setter(\"height\"))",
		"",
		"    def __del__(self):",
		"        for (obj, prop, callback) in self._bindings:",
		"            try:",
		"                obj.unbind(**{prop: callback})",
		"            except:",
		"                pass",
	)
	if got != want {
		t.Fatalf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateBindingPerWatchedKey(t *testing.T) {
	got := generate(t, "<StatusBar>:\n    text: str(self.width) + str(self.height)\n")
	want := py(
		"from kivy.uix.widget import Widget",
		"from kivy.properties import ObjectProperty",
		"",
		"",
		"class StatusBar(Widget):",
		"",
		"    text = ObjectProperty(None)",
		"",
		"    def __init__(self, **kwargs):",
		"        super().__init__(**kwargs)",
		"        self._bindings = []",
		"        self.text = str(self.width) + str(self.height)",
		"        _callback_0 = lambda instance, value: setattr(self, \"text\", str(self.width) + str(value))",
		"        self.bind(height=_callback_0)",
		"        _callback_1 = lambda instance, value: setattr(self, \"text\", str(value) + str(self.height))",
		"        self.bind(width=_callback_1)",
		"        self._bindings.append((self, \"height\", _callback_0))",
		"        self._bindings.append((self, \"width\", _callback_1))",
		"",
		"    def __del__(self):",
		"        for (obj, prop, callback) in self._bindings:",
		"            try:",
		"                obj.unbind(**{prop: callback})",
		"            except:",
		"                pass",
	)
	if got != want {
		t.Fatalf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateTupleExpression(t *testing.T) {
	got := generate(t, "<Tracker>:\n    pos: self.x, self.y\n")
	want := py(
		"from kivy.uix.widget import Widget",
		"",
		"",
		"class Tracker(Widget):",
		"",
		"    def __init__(self, **kwargs):",
		"        super().__init__(**kwargs)",
		"        self._bindings = []",
		"        self.pos = self.x, self.y",
		"        _callback_0 = lambda instance, value: setattr(self, \"pos\", (value, self.y))",
		"        self.bind(x=_callback_0)",
		"        _callback_1 = lambda instance, value: setattr(self, \"pos\", (self.x, value))",
		"        self.bind(y=_callback_1)",
		"        self._bindings.append((self, \"x\", _callback_0))",
		"        self._bindings.append((self, \"y\", _callback_1))",
		"",
		"    def __del__(self):",
		"        for (obj, prop, callback) in self._bindings:",
		"            try:",
		"                obj.unbind(**{prop: callback})",
		"            except:",
		"                pass",
	)
	if got != want {
		t.Fatalf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetattrValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"value", "value"},
		{"value, self.y", "(value, self.y)"},
		{"max(self.x, 1)", "max(self.x, 1)"},
		{"[value, 1]", "[value, 1]"},
		{"'a, b' + value", "'a, b' + value"},
	}
	for _, tt := range tests {
		if got := setattrValue(tt.in); got != tt.want {
			t.Errorf("setattrValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateChildWidgets(t *testing.T) {
	code := strings.Join([]string{
		"<LoginForm>:",
		"    orientation: 'vertical'",
		"    Label:",
		"        text: 'Name'",
		"    TextInput:",
		"        id: name_input",
		"        text: root.default_name",
		"",
	}, "\n")
	got := generate(t, code)
	want := py(
		"from kivy.uix.label import Label",
		"from kivy.uix.textinput import TextInput",
		"from kivy.uix.widget import Widget",
		"from kivy.properties import ObjectProperty",
		"",
		"",
		"class LoginForm(Widget):",
		"",
		"    orientation = ObjectProperty(None)",
		"",
		"    def __init__(self, **kwargs):",
		"        super().__init__(**kwargs)",
		"        self._bindings = []",
		"        self.orientation = \"vertical\"",
		"        label_0 = Label(text=\"Name\")",
		"        self.add_widget(label_0)",
		"        name_input = TextInput()",
		"        name_input.text = self.default_name",
		"        self.bind(default_name=name_input.setter(\"text\"))",
		"        self.ids.name_input = name_input",
		"        self.add_widget(name_input)",
		"",
		"    def __del__(self):",
		"        for (obj, prop, callback) in self._bindings:",
		"            try:",
		"                obj.unbind(**{prop: callback})",
		"            except:",
		"                pass",
	)
	if got != want {
		t.Fatalf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateCanvas(t *testing.T) {
	code := strings.Join([]string{
		"<ColorPanel>:",
		"    canvas.before:",
		"        Color:",
		"            rgb: 1, 0, 0",
		"        Rectangle:",
		"            pos: self.pos",
		"            size: self.size",
		"",
	}, "\n")
	got := generate(t, code)
	want := py(
		"from kivy.uix.widget import Widget",
		"from kivy.graphics import Color, Rectangle",
		"",
		"",
		"class ColorPanel(Widget):",
		"",
		"    def __init__(self, **kwargs):",
		"        super().__init__(**kwargs)",
		"        self._bindings = []",
		"        self.canvas.before.add(Color(rgb=(1.0, 0.0, 0.0)))",
		"        self._canvas_rectangle_0 = Rectangle()",
		"        self.canvas.before.add(self._canvas_rectangle_0)",
		"        self._canvas_rectangle_0.pos = self.pos",
		"        _callback_0 = lambda instance, value: setattr(self._canvas_rectangle_0, \"pos\", value)",
		"        self.bind(pos=_callback_0)",
		"        self._canvas_rectangle_0.size = self.size",
		"        _callback_1 = lambda instance, value: setattr(self._canvas_rectangle_0, \"size\", value)",
		"        self.bind(size=_callback_1)",
		"        self._bindings.append((self, \"pos\", _callback_0))",
		"        self._bindings.append((self, \"size\", _callback_1))",
		"",
		"    def __del__(self):",
		"        for (obj, prop, callback) in self._bindings:",
		"            try:",
		"                obj.unbind(**{prop: callback})",
		"            except:",
		"                pass",
	)
	if got != want {
		t.Fatalf("generated:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateHandlers(t *testing.T) {
	code := strings.Join([]string{
		"<SubmitButton>:",
		"    on_press: root.submit()",
		"    Button:",
		"        on_release: print('released')",
		"",
	}, "\n")
	got := generate(t, code)
	for _, want := range []string{
		"self.bind(on_press=self._on_press_handler)",
		"    def _on_press_handler(self, instance):",
		"        self.submit()",
		"_callback_0 = lambda instance: print(\"released\")",
		"button_0.bind(on_release=_callback_0)",
		"self._bindings.append((self, \"on_press\", self._on_press_handler))",
		"self._bindings.append((button_0, \"on_release\", _callback_0))",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateAppSingleton(t *testing.T) {
	got := generate(t, "<TitleBar>:\n    text: app.title\n")
	for _, want := range []string{
		"from kivy.app import App",
		"app = App.get_running_app()",
		"self.text = app.title",
		"app.bind(title=self.setter(\"text\"))",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateAppWordInLiteral(t *testing.T) {
	got := generate(t, "<TitleBar>:\n    text: 'open the app'\n")
	for _, absent := range []string{
		"from kivy.app import App",
		"App.get_running_app()",
	} {
		if strings.Contains(got, absent) {
			t.Errorf("output contains %q for a literal-only value:\n%s", absent, got)
		}
	}
}

func TestGenerateAppInFStringSlot(t *testing.T) {
	got := generate(t, "<TitleBar>:\n    text: f\"hi {app.name}\"\n")
	for _, want := range []string{
		"from kivy.app import App",
		"app = App.get_running_app()",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestGenerateBases(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"dynamic class", "<IconButton@Button>:\n    text: 'x'\n", "class IconButton(Button):"},
		{"registry base", "<Button>:\n    text: 'x'\n", "class Button(Label):"},
		{"template", "[Header@Label]:\n    text: 'x'\n", "class Header(Label):"},
		{"unknown type", "<Mystery>:\n    text: 'x'\n", "class Mystery(Widget):"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generate(t, tt.code)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("output missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestGenerateMultipleSelector(t *testing.T) {
	got := generate(t, "<Button,ToggleButton>:\n    font_size: 20\n")
	if !strings.Contains(got, "class Button(Label):") {
		t.Fatalf("missing Button class:\n%s", got)
	}
	if !strings.Contains(got, "class ToggleButton(Button):") {
		t.Fatalf("missing ToggleButton class:\n%s", got)
	}
	// The generated Button satisfies ToggleButton's base; only Label is
	// imported.
	if strings.Contains(got, "from kivy.uix.button import") {
		t.Fatalf("generated base imported anyway:\n%s", got)
	}
}

func TestGenerateClassSelectorSkipped(t *testing.T) {
	got := generate(t, "<.danger>:\n    color: 1, 0, 0, 1\n")
	if strings.Contains(got, "class ") {
		t.Fatalf("style-class selector produced a class:\n%s", got)
	}
}

func TestGenerateClassInfoOverride(t *testing.T) {
	m := compile(t, "<Dashboard>:\n    rows: 2\n")
	opts := Options{ClassInfo: map[string]ClassInfo{
		"Dashboard": {Bases: []string{"GridLayout"}},
	}}
	got := Generate(m, opts)
	if !strings.Contains(got, "class Dashboard(GridLayout):") {
		t.Fatalf("ClassInfo bases ignored:\n%s", got)
	}
	// rows exists on GridLayout; no promotion.
	if strings.Contains(got, "ObjectProperty") {
		t.Fatalf("known base property promoted:\n%s", got)
	}
}

func TestGenerateUUIDNames(t *testing.T) {
	m := compile(t, "<Box>:\n    Label:\n        text: 'x'\n")
	got := Generate(m, Options{UUIDNames: true})
	re := regexp.MustCompile(`label_[0-9A-F]{8} = Label\(`)
	if !re.MatchString(got) {
		t.Fatalf("no UUID-suffixed variable:\n%s", got)
	}
}

func TestConvertLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		kind registry.PropertyKind
		want string
	}{
		{"24", registry.Numeric, "24.0"},
		{"0.5", registry.Numeric, "0.5"},
		{"True", registry.Boolean, "True"},
		{"None", registry.Object, "None"},
		{"'hello'", registry.String, "\"hello\""},
		{"hello", registry.String, "\"hello\""},
		{"1, 0, 0, 1", registry.Color, "(1.0, 0.0, 0.0, 1.0)"},
		{"10, 20", registry.List, "[10.0, 20.0]"},
		{"(1, 2)", registry.Object, "(1, 2)"},
		{"{'a': 1}", registry.Dict, "{'a': 1}"},
		{"'a', 'b'", registry.List, "[\"a\", \"b\"]"},
	}
	for _, tt := range tests {
		if got := convertLiteral(tt.raw, tt.kind); got != tt.want {
			t.Errorf("convertLiteral(%q, %v) = %q, want %q", tt.raw, tt.kind, got, tt.want)
		}
	}
}

func TestSubstituteChain(t *testing.T) {
	tests := []struct {
		expr  string
		chain string
		want  string
	}{
		{"self.width + 1", "self.width", "value + 1"},
		{"str(self.width)", "self.width", "str(value)"},
		{"self.width + self.width", "self.width", "value + value"},
		{"myself.width", "self.width", "myself.width"},
	}
	for _, tt := range tests {
		if got := substituteChain(tt.expr, tt.chain, "value"); got != tt.want {
			t.Errorf("substituteChain(%q, %q) = %q, want %q", tt.expr, tt.chain, got, tt.want)
		}
	}
}

func TestRewriteScope(t *testing.T) {
	tests := []struct {
		expr    string
		selfVar string
		want    string
	}{
		{"self.width", "label_0", "label_0.width"},
		{"root.title + self.text", "label_0", "self.title + label_0.text"},
		{"self.width", "self", "self.width"},
		{"herself.width", "label_0", "herself.width"},
	}
	for _, tt := range tests {
		if got := rewriteScope(tt.expr, tt.selfVar, "self"); got != tt.want {
			t.Errorf("rewriteScope(%q, %q) = %q, want %q", tt.expr, tt.selfVar, got, tt.want)
		}
	}
}
