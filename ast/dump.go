package ast

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Dump.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dump writes the whole tree rooted at list to w.
func Dump(w io.Writer, list *ClassList, format Format) error {
	doc := ToDocument(list)
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("ast: unknown dump format %q", format)
	}
}

// ToDocument converts the tree into plain maps and slices. Every map
// carries a "node" key naming what it represents.
func ToDocument(list *ClassList) []map[string]any {
	classes := []map[string]any{}
	for _, c := range list.All() {
		doc := map[string]any{"node": "class", "name": c.Name()}
		if c.HasParent() {
			doc["parent"] = c.Parent()
		}
		doc["features"] = featureDocs(c.Features())
		classes = append(classes, doc)
	}
	return classes
}

func featureDocs(list *FeatureList) []map[string]any {
	docs := []map[string]any{}
	for _, f := range list.All() {
		doc := map[string]any{"node": f.Kind().String(), "name": f.Name(), "type": f.Type()}
		if f.IsMethod() {
			formals := []map[string]any{}
			for _, p := range f.Formals().All() {
				formals = append(formals, map[string]any{"node": "formal", "name": p.Name(), "type": p.Type()})
			}
			doc["formals"] = formals
		}
		if f.Body() != nil {
			doc["body"] = exprDoc(f.Body())
		}
		docs = append(docs, doc)
	}
	return docs
}

func exprDocs(list *ExprList) []map[string]any {
	docs := []map[string]any{}
	for _, e := range list.All() {
		docs = append(docs, exprDoc(e))
	}
	return docs
}

func exprDoc(e Expr) map[string]any {
	doc := map[string]any{"node": e.Kind().String()}
	switch e := e.(type) {
	case *AssignExpr:
		doc["name"] = e.Name()
		doc["value"] = exprDoc(e.Value())
	case *IfExpr:
		doc["cond"] = exprDoc(e.Cond())
		doc["then"] = exprDoc(e.Then())
		doc["else"] = exprDoc(e.Else())
	case *WhileExpr:
		doc["cond"] = exprDoc(e.Cond())
		doc["body"] = exprDoc(e.Body())
	case *BlockExpr:
		doc["body"] = exprDocs(e.Body())
	case *LetExpr:
		doc["name"] = e.Name()
		doc["type"] = e.Type()
		if e.Init() != nil {
			doc["init"] = exprDoc(e.Init())
		}
		doc["body"] = exprDoc(e.Body())
	case *CaseExpr:
		doc["scrutinee"] = exprDoc(e.Scrutinee())
		branches := []map[string]any{}
		for _, b := range e.Branches().All() {
			branches = append(branches, map[string]any{
				"node": "branch", "name": b.Name(), "type": b.Type(), "body": exprDoc(b.Body()),
			})
		}
		doc["branches"] = branches
	case *NewExpr:
		doc["type"] = e.Type()
	case *IsVoidExpr:
		doc["operand"] = exprDoc(e.Operand())
	case *NotExpr:
		doc["operand"] = exprDoc(e.Operand())
	case *NegExpr:
		doc["operand"] = exprDoc(e.Operand())
	case *ObjectExpr:
		doc["name"] = e.Name()
	case *IntExpr:
		doc["value"] = e.Value()
	case *StringExpr:
		doc["value"] = e.Value()
	case *BoolExpr:
		doc["value"] = e.Value()
	case *BinaryExpr:
		doc["op"] = e.Op().String()
		doc["left"] = exprDoc(e.Left())
		doc["right"] = exprDoc(e.Right())
	case *DispatchExpr:
		doc["receiver"] = exprDoc(e.Receiver())
		doc["method"] = e.Method()
		doc["args"] = exprDocs(e.Args())
	case *StaticDispatchExpr:
		doc["receiver"] = exprDoc(e.Receiver())
		doc["type"] = e.Type()
		doc["method"] = e.Method()
		doc["args"] = exprDocs(e.Args())
	}
	return doc
}
