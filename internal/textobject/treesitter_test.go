package textobject_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dshills/funcobj/internal/syntax/treesitter"
	"github.com/dshills/funcobj/internal/textobject"
)

func TestResolveParsedSources(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		src    string
		cursor string // cursor is placed on the first byte of this marker
		outer  string
		inner  string
	}{
		{
			name:   "go function",
			lang:   treesitter.LangGo,
			src:    "func foo() {\n  return 1\n}",
			cursor: "turn",
			outer:  "func foo() {\n  return 1\n}",
			inner:  "\n  return 1\n",
		},
		{
			name:   "go method",
			lang:   treesitter.LangGo,
			src:    "package p\n\nfunc (s *S) M() {\n\ts.x = 1\n}\n",
			cursor: "s.x",
			outer:  "func (s *S) M() {\n\ts.x = 1\n}",
			inner:  "\n\ts.x = 1\n",
		},
		{
			name:   "go closure",
			lang:   treesitter.LangGo,
			src:    "package p\n\nfunc outer() {\n\tf := func() {\n\t\tx()\n\t}\n\tf()\n}\n",
			cursor: "x()",
			outer:  "func() {\n\t\tx()\n\t}",
			inner:  "\n\t\tx()\n\t",
		},
		{
			name:   "javascript",
			lang:   treesitter.LangJavaScript,
			src:    "function add(a, b) {\n  return a + b;\n}\n",
			cursor: "a + b",
			outer:  "function add(a, b) {\n  return a + b;\n}",
			inner:  "\n  return a + b;\n",
		},
		{
			name:   "typescript",
			lang:   treesitter.LangTypeScript,
			src:    "function f(): number {\n  return 1;\n}\n",
			cursor: "return",
			outer:  "function f(): number {\n  return 1;\n}",
			inner:  "\n  return 1;\n",
		},
		{
			name:   "rust",
			lang:   treesitter.LangRust,
			src:    "fn add(a: i32) -> i32 {\n    a + 1\n}\n",
			cursor: "a + 1",
			outer:  "fn add(a: i32) -> i32 {\n    a + 1\n}",
			inner:  "\n    a + 1\n",
		},
		{
			name:   "c",
			lang:   treesitter.LangC,
			src:    "int f(int n) {\n    return n;\n}\n",
			cursor: "return",
			outer:  "int f(int n) {\n    return n;\n}",
			inner:  "\n    return n;\n",
		},
		{
			name:   "java method",
			lang:   treesitter.LangJava,
			src:    "class A {\n  int f() {\n    return 1;\n  }\n}\n",
			cursor: "return",
			outer:  "int f() {\n    return 1;\n  }",
			inner:  "\n    return 1;\n  ",
		},
	}

	p := treesitter.NewParser()
	defer p.Close()
	r := textobject.NewDefaultResolver()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := p.Parse(context.Background(), tc.lang, []byte(tc.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			defer tree.Close()

			offset := strings.Index(tc.src, tc.cursor)
			if offset < 0 {
				t.Fatalf("marker %q not in source", tc.cursor)
			}

			outer, miss := r.Resolve(tree, offset, textobject.Outer)
			if miss != textobject.MissNone {
				t.Fatalf("outer: unexpected miss %v", miss)
			}
			if got := tc.src[outer.Range.Start:outer.Range.End]; got != tc.outer {
				t.Errorf("outer = %q, want %q", got, tc.outer)
			}

			inner, miss := r.Resolve(tree, offset, textobject.Inner)
			if miss != textobject.MissNone {
				t.Fatalf("inner: unexpected miss %v", miss)
			}
			if got := tc.src[inner.Range.Start:inner.Range.End]; got != tc.inner {
				t.Errorf("inner = %q, want %q", got, tc.inner)
			}
		})
	}
}

func TestResolveParsedPython(t *testing.T) {
	src := "# A factorial function\ndef factorial(n):\n    if n < 0:\n        raise ValueError()\n    return n\n"

	p := treesitter.NewParser()
	defer p.Close()
	tree, err := p.Parse(context.Background(), treesitter.LangPython, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	r := textobject.NewDefaultResolver()
	sel, miss := r.Resolve(tree, strings.Index(src, "return"), textobject.Inner)
	if miss != textobject.MissNone {
		t.Fatalf("unexpected miss %v", miss)
	}

	if want := strings.Index(src, "if n < 0"); sel.Range.Start != want {
		t.Errorf("inner start = %d, want %d (no trimming of indentation bodies)", sel.Range.Start, want)
	}
	if got := src[sel.Range.Start:sel.Range.End]; !strings.Contains(got, "return n") {
		t.Errorf("inner = %q, want it to hold the whole body", got)
	}

	outer, _ := r.Resolve(tree, strings.Index(src, "return"), textobject.Outer)
	if got := src[outer.Range.Start:outer.Range.End]; !strings.HasPrefix(got, "def factorial(n):") {
		t.Errorf("outer = %q, want the full definition", got)
	}
}

func TestResolveParsedFileScope(t *testing.T) {
	src := "package p\n\nvar x = 1\n\nfunc f() {}\n"

	p := treesitter.NewParser()
	defer p.Close()
	tree, err := p.Parse(context.Background(), treesitter.LangGo, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	r := textobject.NewDefaultResolver()
	for _, marker := range []string{"package", "x = 1"} {
		if _, miss := r.Resolve(tree, strings.Index(src, marker), textobject.Outer); miss != textobject.MissNoFunction {
			t.Errorf("%q: miss = %v, want %v", marker, miss, textobject.MissNoFunction)
		}
	}
}

func TestResolveParsedBlankLineBetweenFunctions(t *testing.T) {
	tests := []struct {
		name  string
		lang  string
		src   string
		first string
	}{
		{"c", treesitter.LangC, "int a() {\n  x();\n}\n\n\n\nint b() {\n  y();\n}\n", "int a() {\n  x();\n}"},
		{"javascript", treesitter.LangJavaScript, "function a() {\n  x();\n}\n\n\n\nfunction b() {\n  y();\n}\n", "function a() {\n  x();\n}"},
		{"python", treesitter.LangPython, "def a():\n    x()\n\n\n\ndef b():\n    y()\n", "def a():\n    x()"},
		{"java", treesitter.LangJava, "class A {\n  void a() {\n    x();\n  }\n\n\n\n  void b() {\n    y();\n  }\n}\n", "void a() {\n    x();\n  }"},
		{"go", treesitter.LangGo, "package p\n\nfunc a() {\n\tx()\n}\n\n\n\nfunc b() {\n\ty()\n}\n", "func a() {\n\tx()\n}"},
	}

	p := treesitter.NewParser()
	defer p.Close()
	r := textobject.NewDefaultResolver()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := p.Parse(context.Background(), tc.lang, []byte(tc.src))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			defer tree.Close()

			blank := strings.Index(tc.src, "\n\n\n") + 2
			for _, mode := range []textobject.Mode{textobject.Inner, textobject.Outer} {
				if sel, miss := r.Resolve(tree, blank, mode); miss != textobject.MissNoFunction {
					t.Errorf("%v on blank line: miss = %v, selection = %v", mode, miss, sel.Range)
				}
			}

			sel, miss := r.Resolve(tree, strings.Index(tc.src, "x()"), textobject.Outer)
			if miss != textobject.MissNone {
				t.Fatalf("inside first function: unexpected miss %v", miss)
			}
			if got := strings.TrimRight(tc.src[sel.Range.Start:sel.Range.End], "\n"); got != tc.first {
				t.Errorf("outer = %q, want %q", got, tc.first)
			}
		})
	}
}

func TestResolveParsedPythonBraceStatementBody(t *testing.T) {
	src := "def keys():\n    {\"a\", \"b\"}\n"

	p := treesitter.NewParser()
	defer p.Close()
	tree, err := p.Parse(context.Background(), treesitter.LangPython, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	r := textobject.NewDefaultResolver()
	sel, miss := r.Resolve(tree, strings.Index(src, "\"a\""), textobject.Inner)
	if miss != textobject.MissNone {
		t.Fatalf("unexpected miss %v", miss)
	}
	if got := src[sel.Range.Start:sel.Range.End]; got != "{\"a\", \"b\"}" {
		t.Errorf("inner = %q, want the set literal untrimmed", got)
	}
}

func TestResolveParsedRubyMethod(t *testing.T) {
	src := "# A factorial function\n" +
		"def factorial(n)\n" +
		"  raise TypeError, \"Input must be an integer\" unless n.is_a? Integer\n" +
		"  raise ArgumentError, \"Input must be non-negative\" if n < 0\n" +
		"  result = 1\n" +
		"  (1..n).each do |i|\n" +
		"    result *= i\n" +
		"  end\n" +
		"  return result\n" +
		"end"

	p := treesitter.NewParser()
	defer p.Close()
	tree, err := p.Parse(context.Background(), treesitter.LangRuby, []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	r := textobject.NewDefaultResolver()
	for _, cursor := range []string{"result = 1", "result *= i", "return result"} {
		t.Run(cursor, func(t *testing.T) {
			offset := strings.Index(src, cursor)

			outer, miss := r.Resolve(tree, offset, textobject.Outer)
			if miss != textobject.MissNone {
				t.Fatalf("outer: unexpected miss %v", miss)
			}
			if want := src[strings.Index(src, "def"):]; src[outer.Range.Start:outer.Range.End] != want {
				t.Errorf("outer = %q, want %q", src[outer.Range.Start:outer.Range.End], want)
			}

			inner, miss := r.Resolve(tree, offset, textobject.Inner)
			if miss != textobject.MissNone {
				t.Fatalf("inner: unexpected miss %v", miss)
			}
			if inner.Body == nil || inner.Body.Kind() != treesitter.KindRubyBody {
				t.Fatalf("body = %v, want a %s node", inner.Body, treesitter.KindRubyBody)
			}
			got := src[inner.Range.Start:inner.Range.End]
			if !strings.HasPrefix(got, "raise TypeError") || !strings.HasSuffix(got, "return result") {
				t.Errorf("inner = %q, want raise TypeError ... return result", got)
			}
		})
	}
}
