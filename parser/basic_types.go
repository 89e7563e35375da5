package parser

import "cool-frontend/ast"

type basicMethod struct {
	name    string
	formals [][2]string // name, type
	ret     string
}

type basicClass struct {
	name    string
	parent  string
	methods []basicMethod
}

var basicClasses = []basicClass{
	{name: "Object", methods: []basicMethod{
		{name: "abort", ret: "Object"},
		{name: "type_name", ret: "String"},
		{name: "copy", ret: "SELF_TYPE"},
	}},
	{name: "IO", parent: "Object", methods: []basicMethod{
		{name: "out_string", formals: [][2]string{{"x", "String"}}, ret: "SELF_TYPE"},
		{name: "out_int", formals: [][2]string{{"x", "Int"}}, ret: "SELF_TYPE"},
		{name: "in_string", ret: "String"},
		{name: "in_int", ret: "Int"},
	}},
	{name: "Int", parent: "Object"},
	{name: "String", parent: "Object", methods: []basicMethod{
		{name: "length", ret: "Int"},
		{name: "concat", formals: [][2]string{{"s", "String"}}, ret: "String"},
		{name: "substr", formals: [][2]string{{"i", "Int"}, {"l", "Int"}}, ret: "String"},
	}},
	{name: "Bool", parent: "Object"},
}

// InjectBasicClasses appends Object, IO, Int, String and Bool to list.
// Method bodies are empty blocks. On error the list built so far is
// returned and the caller releases it.
func InjectBasicClasses(tree *ast.Tree, list *ast.ClassList) (*ast.ClassList, error) {
	for _, bc := range basicClasses {
		var features *ast.FeatureList
		for _, bm := range bc.methods {
			m, err := basicMethodFeature(tree, bm)
			if err != nil {
				_ = tree.ReleaseFeatureList(features)
				return list, err
			}
			if features, err = tree.AppendFeature(features, m); err != nil {
				_ = tree.ReleaseFeature(m)
				_ = tree.ReleaseFeatureList(features)
				return list, err
			}
		}
		cls, err := tree.NewClass(bc.name, bc.parent, features)
		if err != nil {
			_ = tree.ReleaseFeatureList(features)
			return list, err
		}
		if list, err = tree.AppendClass(list, cls); err != nil {
			_ = tree.ReleaseClass(cls)
			return list, err
		}
	}
	return list, nil
}

func basicMethodFeature(tree *ast.Tree, bm basicMethod) (*ast.Feature, error) {
	var formals *ast.FormalList
	for _, fp := range bm.formals {
		f, err := tree.NewFormal(fp[0], fp[1])
		if err != nil {
			_ = tree.ReleaseFormalList(formals)
			return nil, err
		}
		if formals, err = tree.AppendFormal(formals, f); err != nil {
			_ = tree.ReleaseFormal(f)
			_ = tree.ReleaseFormalList(formals)
			return nil, err
		}
	}
	body, err := tree.NewBlock(nil)
	if err != nil {
		_ = tree.ReleaseFormalList(formals)
		return nil, err
	}
	m, err := tree.NewMethod(bm.name, formals, bm.ret, body)
	if err != nil {
		_ = tree.ReleaseFormalList(formals)
		_ = tree.ReleaseExpr(body)
		return nil, err
	}
	return m, nil
}
