package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTOMLLoaderMissingFile(t *testing.T) {
	m, err := NewTOMLLoader(filepath.Join(t.TempDir(), "absent.toml")).Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if m != nil {
		t.Errorf("missing file should yield nil map, got %v", m)
	}
}

func TestTOMLLoaderLoad(t *testing.T) {
	path := writeTOML(t, "[editor]\nundoDepth = 42\n\n[logging]\nlevel = \"debug\"\n")
	m, err := NewTOMLLoader(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v, ok := GetInt(m, "editor.undoDepth"); !ok || v != 42 {
		t.Errorf("editor.undoDepth = %d, %v", v, ok)
	}
	if v, ok := GetString(m, "logging.level"); !ok || v != "debug" {
		t.Errorf("logging.level = %q, %v", v, ok)
	}
}

func TestTOMLLoaderParseError(t *testing.T) {
	path := writeTOML(t, "not = [valid")
	_, err := NewTOMLLoader(path).Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("load = %v, want ParseError", err)
	}
	if perr.Unwrap() == nil {
		t.Error("ParseError should wrap the underlying error")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{
			"undoDepth":             int64(50),
			"autoConsolidateBlanks": true,
		},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"editor":   map[string]any{"undoDepth": int64(200)},
		"sequence": map[string]any{"fps": 30.0},
	}

	out := DeepMerge(dst, src)
	if v, _ := GetInt(out, "editor.undoDepth"); v != 200 {
		t.Errorf("editor.undoDepth = %d, want src override 200", v)
	}
	if v, ok := GetBool(out, "editor.autoConsolidateBlanks"); !ok || !v {
		t.Error("sibling keys in dst should survive the merge")
	}
	if v, ok := GetString(out, "logging.level"); !ok || v != "info" {
		t.Error("sections absent from src should survive the merge")
	}
	if v, ok := GetFloat(out, "sequence.fps"); !ok || v != 30.0 {
		t.Error("sections only in src should be added")
	}
}

func TestDeepMergeNilDst(t *testing.T) {
	out := DeepMerge(nil, map[string]any{"a": int64(1)})
	if v, ok := GetInt(out, "a"); !ok || v != 1 {
		t.Errorf("a = %d, %v", v, ok)
	}
}

func TestDeepMergeScalarReplacesMap(t *testing.T) {
	dst := map[string]any{"editor": map[string]any{"undoDepth": int64(50)}}
	src := map[string]any{"editor": "off"}
	out := DeepMerge(dst, src)
	if v, ok := GetString(out, "editor"); !ok || v != "off" {
		t.Errorf("editor = %v, want scalar replacement", out["editor"])
	}
}

func TestGetHelpers(t *testing.T) {
	m := map[string]any{
		"a": map[string]any{
			"i64":   int64(7),
			"f":     1.5,
			"whole": 3.0,
			"b":     true,
			"s":     "hello",
		},
	}

	if v, ok := GetInt(m, "a.i64"); !ok || v != 7 {
		t.Errorf("GetInt i64 = %d, %v", v, ok)
	}
	if v, ok := GetInt(m, "a.whole"); !ok || v != 3 {
		t.Errorf("GetInt float = %d, %v", v, ok)
	}
	if v, ok := GetFloat(m, "a.i64"); !ok || v != 7 {
		t.Errorf("GetFloat i64 = %v, %v", v, ok)
	}
	if v, ok := GetFloat(m, "a.f"); !ok || v != 1.5 {
		t.Errorf("GetFloat = %v, %v", v, ok)
	}
	if v, ok := GetBool(m, "a.b"); !ok || !v {
		t.Errorf("GetBool = %v, %v", v, ok)
	}
	if v, ok := GetString(m, "a.s"); !ok || v != "hello" {
		t.Errorf("GetString = %q, %v", v, ok)
	}

	if _, ok := GetInt(m, "a.missing"); ok {
		t.Error("missing path should report not found")
	}
	if _, ok := GetInt(m, "a.s"); ok {
		t.Error("wrong type should report not found")
	}
	if _, ok := GetString(m, "a.b.deeper"); ok {
		t.Error("path through a scalar should report not found")
	}
}
