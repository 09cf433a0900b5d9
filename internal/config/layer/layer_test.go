package layer

import (
	"reflect"
	"testing"
)

func TestManagerMergePriority(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer("env", SourceEnv, map[string]any{
		"textobject": map[string]any{"function_char": "m"},
	}))
	m.AddLayer(NewLayer("defaults", SourceBuiltin, map[string]any{
		"logging":    map[string]any{"level": "info"},
		"textobject": map[string]any{"function_char": "f", "trim_policy": "text"},
	}))
	m.AddLayer(NewLayer("file", SourceFile, map[string]any{
		"textobject": map[string]any{"function_char": "g", "brace_languages": []any{"go"}},
	}))

	merged := m.Merge()

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "info"},
		{"textobject.function_char", "m"},
		{"textobject.trim_policy", "text"},
		{"textobject.brace_languages", []any{"go"}},
	}
	for _, tc := range tests {
		got, ok := GetByPath(merged, tc.path)
		if !ok || !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s = %#v, want %#v", tc.path, got, tc.want)
		}
	}

	names := []string{}
	for _, l := range m.Layers() {
		names = append(names, l.Name)
	}
	if !reflect.DeepEqual(names, []string{"defaults", "file", "env"}) {
		t.Errorf("layer order = %v", names)
	}
}

func TestManagerWhichLayer(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer("defaults", SourceBuiltin, map[string]any{
		"textobject": map[string]any{"function_char": "f", "trim_policy": "text"},
	}))
	m.AddLayer(NewLayer("pack", SourceRulePack, map[string]any{
		"textobject": map[string]any{"trim_policy": "language"},
	}))

	if got := m.WhichLayer("textobject.trim_policy"); got != "pack" {
		t.Errorf("trim_policy from %q", got)
	}
	if got := m.WhichLayer("textobject.function_char"); got != "defaults" {
		t.Errorf("function_char from %q", got)
	}
	if got := m.WhichLayer("textobject.missing"); got != "" {
		t.Errorf("missing from %q", got)
	}
}

func TestManagerReplaceLayer(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer("file", SourceFile, map[string]any{"a": 1}))
	m.Merge()
	m.AddLayer(NewLayer("file", SourceFile, map[string]any{"a": 2}))

	if len(m.Layers()) != 1 {
		t.Fatalf("layers = %d, want 1", len(m.Layers()))
	}
	if got := m.Merge()["a"]; got != 2 {
		t.Errorf("a = %v, want 2", got)
	}
	if m.GetLayer("file") == nil || m.GetLayer("nope") != nil {
		t.Error("GetLayer mismatch")
	}
}

func TestMergeReturnsCopy(t *testing.T) {
	m := NewManager()
	m.AddLayer(NewLayer("defaults", SourceBuiltin, map[string]any{
		"textobject": map[string]any{"brace_languages": []any{"go"}},
	}))

	first := m.Merge()
	first["textobject"].(map[string]any)["brace_languages"].([]any)[0] = "mutated"

	got, _ := GetByPath(m.Merge(), "textobject.brace_languages")
	if !reflect.DeepEqual(got, []any{"go"}) {
		t.Errorf("merge cache mutated: %#v", got)
	}
}

func TestDeepMergeReplacesLists(t *testing.T) {
	dst := map[string]any{"k": []any{"a", "b"}, "m": map[string]any{"x": 1}}
	src := map[string]any{"k": []any{"c"}, "m": map[string]any{"y": 2}}

	got := DeepMerge(dst, src)
	want := map[string]any{"k": []any{"c"}, "m": map[string]any{"x": 1, "y": 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %#v", got)
	}
}

func TestSourcePriority(t *testing.T) {
	order := []Source{SourceBuiltin, SourceRulePack, SourceFile, SourceEnv, SourceArgs}
	for i := 1; i < len(order); i++ {
		if order[i].Priority() <= order[i-1].Priority() {
			t.Errorf("%s priority %d not above %s", order[i], order[i].Priority(), order[i-1])
		}
	}
}
