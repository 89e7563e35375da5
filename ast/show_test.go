package ast

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestShowClassList(t *testing.T) {
	tree := NewTree()
	classes := sampleProgram(t, tree)

	var out bytes.Buffer
	if err := ShowClassList(&out, classes); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "Class: Main\nClass: B\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	out.Reset()
	if err := ShowClassList(&out, nil); err != nil || out.Len() != 0 {
		t.Errorf("nil list printed %q, err %v", out.String(), err)
	}
}

func TestDumpJSON(t *testing.T) {
	tree := NewTree()
	classes := sampleProgram(t, tree)

	var out bytes.Buffer
	if err := Dump(&out, classes, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var doc []struct {
		Node     string `json:"node"`
		Name     string `json:"name"`
		Parent   string `json:"parent"`
		Features []struct {
			Node    string           `json:"node"`
			Name    string           `json:"name"`
			Formals []map[string]any `json:"formals"`
			Body    map[string]any   `json:"body"`
		} `json:"features"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if len(doc) != 2 || doc[0].Name != "Main" || doc[0].Parent != "IO" || doc[1].Parent != "" {
		t.Fatalf("unexpected classes: %+v", doc)
	}
	main := doc[0].Features[1]
	if main.Node != "method" || len(main.Formals) != 2 || main.Body["node"] != "block" {
		t.Errorf("unexpected method: %+v", main)
	}
}

func TestDumpYAML(t *testing.T) {
	tree := NewTree()
	classes := sampleProgram(t, tree)

	var out bytes.Buffer
	if err := Dump(&out, classes, FormatYAML); err != nil {
		t.Fatal(err)
	}
	var doc []map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(doc) != 2 || doc[1]["name"] != "B" {
		t.Errorf("unexpected document: %v", doc)
	}
	if !strings.Contains(out.String(), "node: binary") {
		t.Errorf("binary operator missing:\n%s", out.String())
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	if err := Dump(&bytes.Buffer{}, nil, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
