package frontend

import (
	"strings"
	"testing"
)

func TestAnalyzeCollectsAllStages(t *testing.T) {
	code := strings.Join([]string{
		"<Good>:",
		"    text: 'a'",
		"<@broken",
		"<BoxLayout>:",
		"    Frobnicator:",
		"        x: 1",
		"",
	}, "\n")
	a := Analyze("test.kv", code)
	if a.Module == nil {
		t.Fatal("tolerant analysis lost the module")
	}
	if len(a.Module.Rules) != 2 {
		t.Fatalf("recovered %d rules", len(a.Module.Rules))
	}
	if !a.HasErrors() {
		t.Fatal("parse error not surfaced")
	}
	var warnings int
	for _, d := range a.Diags {
		if strings.Contains(d.Message, "Frobnicator") {
			warnings++
		}
	}
	if warnings == 0 {
		t.Fatal("validator issues not merged into analysis")
	}
}

func TestAnalyzeLexFailure(t *testing.T) {
	a := Analyze("test.kv", "<W>:\n    text: 'oops\n")
	if a.Module != nil {
		t.Fatal("lex failure still produced a module")
	}
	if !a.HasErrors() {
		t.Fatal("lex error not surfaced")
	}
}

func TestCompileStrict(t *testing.T) {
	m, err := Compile("test.kv", "<W>:\n    text: 'x'\n")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(m.Rules) != 1 {
		t.Fatalf("rules = %d", len(m.Rules))
	}
	_, err = Compile("test.kv", "<@broken\n")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test.kv") {
		t.Fatalf("error lacks source name: %v", err)
	}
}

func TestHandleKvliftToml(t *testing.T) {
	content := strings.Join([]string{
		`name = "demo"`,
		`uuid_names = true`,
		``,
		`[classes.Dashboard]`,
		`bases = ["GridLayout"]`,
		``,
		`[classes.Dashboard.properties]`,
		`refresh_rate = "numeric"`,
		``,
	}, "\n")
	kt, err := HandleKvliftToml(content)
	if err != nil {
		t.Fatalf("HandleKvliftToml failed: %v", err)
	}
	if kt.Name != "demo" || !kt.UUIDNames {
		t.Fatalf("manifest = %+v", kt)
	}
	cls, ok := kt.Classes["Dashboard"]
	if !ok {
		t.Fatal("class missing")
	}
	if len(cls.Bases) != 1 || cls.Bases[0] != "GridLayout" {
		t.Fatalf("bases = %v", cls.Bases)
	}
	if cls.Properties["refresh_rate"] != "numeric" {
		t.Fatalf("properties = %v", cls.Properties)
	}
}

func TestHandleKvliftTomlRejectsBadManifest(t *testing.T) {
	if _, err := HandleKvliftToml(`version = "1.0"`); err == nil {
		t.Fatal("missing name accepted")
	}
	bad := strings.Join([]string{
		`name = "demo"`,
		`[classes.X.properties]`,
		`p = "frobnic"`,
		``,
	}, "\n")
	if _, err := HandleKvliftToml(bad); err == nil {
		t.Fatal("bad property kind accepted")
	}
}
