package ast

import (
	"bytes"
	"log/slog"
	"testing"
)

// must unwraps a constructor result; a failed construction panics, which
// fails the running test.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// newLoggedTree returns a tree whose diagnostics are captured in buf.
func newLoggedTree(opts ...Option) (*Tree, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewTree(append([]Option{WithLogger(logger)}, opts...)...), &buf
}

// sampleProgram builds
//
//	class Main inherits IO {
//	    x : Int <- 1;
//	    main(a : Int, b : String) : Object { { x <- a + 2; case b of s : String => s; esac; } };
//	};
//	class B { };
func sampleProgram(t *testing.T, tree *Tree) *ClassList {
	t.Helper()
	attr := must(tree.NewAttribute("x", "Int", must(tree.NewInt(1))))

	formals := must(tree.NewFormalList(must(tree.NewFormal("a", "Int"))))
	formals = must(tree.AppendFormal(formals, must(tree.NewFormal("b", "String"))))

	sum := must(tree.NewBinary(Plus, must(tree.NewObject("a")), must(tree.NewInt(2))))
	assign := must(tree.NewAssign("x", sum))
	branches := must(tree.NewCaseList(must(tree.NewCase("s", "String", must(tree.NewObject("s"))))))
	caseExpr := must(tree.NewCaseExpr(must(tree.NewObject("b")), branches))
	stmts := must(tree.NewExprList(assign))
	stmts = must(tree.AppendExpr(stmts, caseExpr))
	body := must(tree.NewBlock(stmts))
	method := must(tree.NewMethod("main", formals, "Object", body))

	features := must(tree.NewFeatureList(attr))
	features = must(tree.AppendFeature(features, method))

	classes := must(tree.NewClassList(must(tree.NewClass("Main", "IO", features))))
	return must(tree.AppendClass(classes, must(tree.NewClass("B", "", nil))))
}
