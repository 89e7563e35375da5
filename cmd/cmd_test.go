package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const program = `
class Main inherits IO {
	main() : Object { out_string("hi") };
};
class Helper { x : Int <- 1; };
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("COOLFE_CONFIG", "")
	var stdout, stderr bytes.Buffer
	root, o := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := execute(root, o)
	return stdout.String(), stderr.String(), err
}

func TestShow(t *testing.T) {
	out, _, err := run(t, "show", writeFile(t, "main.cl", program))
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if out != "Class: Main\nClass: Helper\n" {
		t.Errorf("output = %q", out)
	}
}

func TestShowBasicClasses(t *testing.T) {
	cfg := writeFile(t, "coolfe.yaml", "parser:\n  inject_basic_classes: true\n")
	out, _, err := run(t, "--config", cfg, "show", writeFile(t, "main.cl", program))
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out, "Class: Object\nClass: IO\n") || !strings.HasSuffix(out, "Class: Helper\n") {
		t.Errorf("output = %q", out)
	}
}

func TestShowSyntaxErrors(t *testing.T) {
	src := "class A { x : Int <- ; };\nclass B { };"
	out, stderr, err := run(t, "show", writeFile(t, "bad.cl", src))
	if err == nil {
		t.Fatal("expected an error")
	}
	if out != "Class: A\nClass: B\n" {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(stderr, "[Parser Error] line 1") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestShowOutOfMemory(t *testing.T) {
	cfg := writeFile(t, "coolfe.toml", "[limits]\nmax_nodes = 3\n")
	_, _, err := run(t, "--config", cfg, "show", writeFile(t, "main.cl", program))
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("err = %v", err)
	}
}

func TestDumpJSON(t *testing.T) {
	out, _, err := run(t, "dump", writeFile(t, "main.cl", program))
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var doc []map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(doc) != 2 || doc[0]["name"] != "Main" || doc[0]["parent"] != "IO" {
		t.Errorf("doc = %v", doc)
	}
}

func TestDumpYAMLToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "ast.yaml")
	out, _, err := run(t, "dump", "--format", "yaml", "-o", dest, writeFile(t, "main.cl", program))
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: Helper") {
		t.Errorf("dump = %s", data)
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	if _, _, err := run(t, "dump", "--format", "xml", writeFile(t, "main.cl", program)); err == nil {
		t.Error("expected an error")
	}
}

func TestMissingFile(t *testing.T) {
	if _, _, err := run(t, "show", filepath.Join(t.TempDir(), "none.cl")); err == nil {
		t.Error("expected an error")
	}
}

func TestShowImports(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.cl"), []byte("class Lib { };\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	main := filepath.Join(dir, "main.cl")
	if err := os.WriteFile(main, []byte("import lib.cl;\nclass Main { };\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "show", main)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if out != "Class: Lib\nClass: Main\n" {
		t.Errorf("output = %q", out)
	}
}

func TestLogFileClosedOnFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "coolfe.log")
	cfg := writeFile(t, "coolfe.toml", "[log]\nlevel = \"debug\"\nfile = \""+filepath.ToSlash(logPath)+"\"\n")
	src := writeFile(t, "bad.cl", "class A { x : Int <- ; };")

	root, o := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "show", src})
	if err := execute(root, o); err == nil {
		t.Fatal("expected an error")
	}
	if o.closer != nil {
		t.Error("log file left open after a failed command")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "diagnostic") {
		t.Errorf("log file = %q", data)
	}
}
