package textobject_test

import (
	"github.com/dshills/funcobj/internal/syntax/memtree"
)

// goSimpleSrc is a single brace-bodied Go function.
const goSimpleSrc = "func foo() {\n  return 1\n}"

func goSimpleTree() *memtree.Tree {
	N := memtree.N
	return memtree.MustNew("go", goSimpleSrc,
		N("source_file", 0, 25,
			N("function_declaration", 0, 25,
				N("func", 0, 4),
				N("identifier", 5, 8),
				N("parameter_list", 8, 10,
					N("(", 8, 9),
					N(")", 9, 10),
				),
				N("block", 11, 25,
					N("{", 11, 12),
					N("return_statement", 15, 23,
						N("return", 15, 21),
						N("int_literal", 22, 23),
					),
					N("}", 24, 25),
				),
			),
		),
	)
}

// goNestedSrc holds a closure inside a function.
const goNestedSrc = "func outer() {\n\tf := func() {\n\t\tx()\n\t}\n\tf()\n}"

func goNestedTree() *memtree.Tree {
	N := memtree.N
	return memtree.MustNew("go", goNestedSrc,
		N("source_file", 0, 45,
			N("function_declaration", 0, 45,
				N("func", 0, 4),
				N("identifier", 5, 10),
				N("parameter_list", 10, 12,
					N("(", 10, 11),
					N(")", 11, 12),
				),
				N("block", 13, 45,
					N("{", 13, 14),
					N("short_var_declaration", 16, 38,
						N("expression_list", 16, 17,
							N("identifier", 16, 17),
						),
						N(":=", 18, 20),
						N("expression_list", 21, 38,
							N("func_literal", 21, 38,
								N("func", 21, 25),
								N("parameter_list", 25, 27,
									N("(", 25, 26),
									N(")", 26, 27),
								),
								N("block", 28, 38,
									N("{", 28, 29),
									N("call_expression", 32, 35,
										N("identifier", 32, 33),
										N("argument_list", 33, 35,
											N("(", 33, 34),
											N(")", 34, 35),
										),
									),
									N("}", 37, 38),
								),
							),
						),
					),
					N("call_expression", 40, 43,
						N("identifier", 40, 41),
						N("argument_list", 41, 43,
							N("(", 41, 42),
							N(")", 42, 43),
						),
					),
					N("}", 44, 45),
				),
			),
		),
	)
}

// pythonSrc has an indentation-defined body.
const pythonSrc = "def f():\n    return 1\n"

func pythonTree() *memtree.Tree {
	N := memtree.N
	return memtree.MustNew("python", pythonSrc,
		N("module", 0, 22,
			N("function_definition", 0, 21,
				N("def", 0, 3),
				N("identifier", 4, 5),
				N("parameters", 5, 7,
					N("(", 5, 6),
					N(")", 6, 7),
				),
				N(":", 7, 8),
				N("block", 13, 21,
					N("return_statement", 13, 21,
						N("return", 13, 19),
						N("integer", 20, 21),
					),
				),
			),
		),
	)
}

// javaInterfaceSrc has an abstract method and a default-style method.
const javaInterfaceSrc = "interface I {\n  void f();\n  int g() { return 1; }\n}"

func javaInterfaceTree() *memtree.Tree {
	N := memtree.N
	return memtree.MustNew("java", javaInterfaceSrc,
		N("program", 0, 51,
			N("interface_declaration", 0, 51,
				N("interface", 0, 9),
				N("identifier", 10, 11),
				N("interface_body", 12, 51,
					N("{", 12, 13),
					N("method_declaration", 16, 25,
						N("void_type", 16, 20),
						N("identifier", 21, 22),
						N("formal_parameters", 22, 24,
							N("(", 22, 23),
							N(")", 23, 24),
						),
						N(";", 24, 25),
					),
					N("method_declaration", 28, 49,
						N("integral_type", 28, 31),
						N("identifier", 32, 33),
						N("formal_parameters", 33, 35,
							N("(", 33, 34),
							N(")", 34, 35),
						),
						N("block", 36, 49,
							N("{", 36, 37),
							N("return_statement", 38, 47,
								N("return", 38, 44),
								N("decimal_integer_literal", 45, 46),
								N(";", 46, 47),
							),
							N("}", 48, 49),
						),
					),
					N("}", 50, 51),
				),
			),
		),
	)
}
