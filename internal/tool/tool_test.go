package tool

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/atlas-sim/harness/internal/envelope"
	"github.com/atlas-sim/harness/internal/world"
)

func echoTool() *Unit {
	return New(
		"manage_widget",
		"Create or update a widget.",
		[]Param{
			{Name: "action", Type: "string", Required: true, Enum: []string{"create", "update"}, Discriminator: true},
			{Name: "widget_data", Type: "object", Required: true},
			{Name: "color", Type: "string", Enum: []string{"red", "blue"}},
		},
		func(w world.World, args map[string]any) string {
			return envelope.Success(map[string]any{
				"action":  args["action"],
				"message": "ok",
			})
		},
	)
}

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("invoke result is not valid JSON: %v\n%s", err, s)
	}
	return out
}

func TestDescribeShape(t *testing.T) {
	s := echoTool().Describe()
	if s.Type != "function" {
		t.Fatalf("expected type function, got %q", s.Type)
	}
	if s.Function.Name != "manage_widget" || s.Function.Description == "" {
		t.Fatalf("unexpected function block: %+v", s.Function)
	}

	props := s.Function.Parameters["properties"].(map[string]any)
	action := props["action"].(map[string]any)
	enum := action["enum"].([]any)
	if len(enum) != 2 || enum[0] != "create" {
		t.Fatalf("enum list not published: %v", enum)
	}
	required := s.Function.Parameters["required"].([]string)
	if len(required) != 2 {
		t.Fatalf("required list wrong: %v", required)
	}
}

func TestDescribeSerializesToFunctionCallingShape(t *testing.T) {
	data, err := json.Marshal(echoTool().Describe())
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["type"] != "function" {
		t.Fatalf("wire shape wrong: %v", out)
	}
	fn := out["function"].(map[string]any)
	if fn["name"] != "manage_widget" || fn["parameters"] == nil {
		t.Fatalf("wire shape wrong: %v", fn)
	}
}

func TestInvokeMissingRequired(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, map[string]any{"action": "create"}))
	if env["success"] != false {
		t.Fatal("expected failure")
	}
	if !strings.Contains(env["error"].(string), "missing required field: widget_data") {
		t.Fatalf("unexpected prose: %v", env["error"])
	}
}

func TestInvokeUnknownField(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, map[string]any{
		"action":      "create",
		"widget_data": map[string]any{},
		"bogus":       1,
	}))
	if !strings.Contains(env["error"].(string), "unknown fields: bogus") {
		t.Fatalf("unexpected prose: %v", env["error"])
	}
}

func TestInvokeBadDiscriminatorHalts(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, map[string]any{
		"action":      "delete",
		"widget_data": map[string]any{},
	}))
	got := env["error"].(string)
	if !strings.HasPrefix(got, envelope.HaltPrefix) {
		t.Fatalf("bad discriminator must halt: %q", got)
	}
	if !strings.Contains(got, "create, update") {
		t.Fatalf("error must list the admissible set: %q", got)
	}
}

func TestInvokeBadEnumDoesNotHalt(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, map[string]any{
		"action":      "create",
		"widget_data": map[string]any{},
		"color":       "green",
	}))
	got := env["error"].(string)
	if strings.HasPrefix(got, envelope.HaltPrefix) {
		t.Fatalf("plain enum failure must not halt: %q", got)
	}
	if !strings.Contains(got, "invalid color") {
		t.Fatalf("unexpected prose: %q", got)
	}
}

func TestInvokeWrongType(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, map[string]any{
		"action":      "create",
		"widget_data": "not an object",
	}))
	if env["success"] != false || !strings.Contains(env["error"].(string), "invalid arguments") {
		t.Fatalf("wrong-typed argument accepted: %v", env)
	}
}

func TestInvokeRecoversPanic(t *testing.T) {
	boom := New("boom", "Panics.", []Param{}, func(w world.World, args map[string]any) string {
		panic("kaboom")
	})
	env := decode(t, boom.Invoke(world.World{}, nil))
	if env["success"] != false {
		t.Fatal("panic must fold into a failure envelope")
	}
	if !strings.Contains(env["error"].(string), "internal error") {
		t.Fatalf("unexpected prose: %v", env["error"])
	}
}

func TestInvokeNilArgs(t *testing.T) {
	env := decode(t, echoTool().Invoke(world.World{}, nil))
	if env["success"] != false {
		t.Fatal("nil args with required params must fail, not panic")
	}
}

func TestRegistryOrderAndLookup(t *testing.T) {
	a := echoTool()
	reg := NewRegistry("interface_1", a)
	if reg.Name() != "interface_1" {
		t.Fatalf("unexpected name: %s", reg.Name())
	}
	if _, ok := reg.Get("manage_widget"); !ok {
		t.Fatal("tool not found by name")
	}
	if _, ok := reg.Get("nope"); ok {
		t.Fatal("unknown tool found")
	}
	if got := len(reg.Describe()); got != 1 {
		t.Fatalf("describe count: %d", got)
	}
}

func TestDeriveRenamesLexicallyOnly(t *testing.T) {
	reg := NewRegistry("interface_1", echoTool())
	derived := reg.Derive("interface_3", map[string]string{"manage_widget": "administer_widget"})

	renamed, ok := derived.Get("administer_widget")
	if !ok {
		t.Fatal("renamed tool not found")
	}
	if _, ok := derived.Get("manage_widget"); ok {
		t.Fatal("old name still visible in derived interface")
	}
	if renamed.Describe().Function.Name != "administer_widget" {
		t.Fatal("schema must carry the renamed tool name")
	}

	// Semantics are shared: identical arguments produce identical envelopes.
	args := map[string]any{"action": "create", "widget_data": map[string]any{}}
	orig, _ := reg.Get("manage_widget")
	if orig.Invoke(world.World{}, args) != renamed.Invoke(world.World{}, args) {
		t.Fatal("renamed tool diverged from its body")
	}

	// The original registry is untouched.
	if _, ok := reg.Get("manage_widget"); !ok {
		t.Fatal("derive mutated the source registry")
	}
}
