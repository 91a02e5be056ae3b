package depends

import (
	"slices"
	"testing"
)

func set(names ...string) map[string]bool {
	ret := make(map[string]bool)
	for _, name := range names {
		ret[name] = true
	}
	return ret
}

func TestCode(t *testing.T) {
	cases := []struct {
		src    string
		known  map[string]bool
		reads  []string
		writes []string
	}{
		{"x = 1\ny = x + 1", set(), nil, []string{"x", "y"}},
		{"z = y + 1", set("x", "y"), []string{"y"}, []string{"z"}},
		{"x = x + 1", set("x"), []string{"x"}, []string{"x"}},
		{"x += 1", set("x"), []string{"x"}, []string{"x"}},
		// shadowed after local assignment
		{"a = 1\nb = a", set("a"), nil, []string{"a", "b"}},
		{"print(a, b)", set("a"), []string{"a"}, nil},
		{"a, (b, c) = 1, (2, 3)", set(), nil, []string{"a", "b", "c"}},
		{"_tmp = x", set("x"), []string{"x"}, nil},
		{"d['k'] = v", set("d", "v"), []string{"d", "v"}, []string{"d"}},
		{
			"def f(a, b = x, *rest, **kw):\n  c = a + y\n  return c + b\n",
			set("a", "c", "x", "y"),
			[]string{"x", "y"},
			[]string{"f"},
		},
		{"g = lambda n: n * k", set("n", "k"), []string{"k"}, []string{"g"}},
		{"s = [i * m for i in items if i > 0]", set("i", "m", "items"), []string{"items", "m"}, []string{"s"}},
		{"d = {k: v for k, v in pairs}", set("k", "v", "pairs"), []string{"pairs"}, []string{"d"}},
		{"f(key = value)", set("key", "value", "f"), []string{"f", "value"}, nil},
		{"r = obj.attr[1:n]", set("obj", "attr", "n"), []string{"n", "obj"}, []string{"r"}},
		{"for i in range(n):\n  total = total + i\n", set("n", "total"), []string{"n", "total"}, []string{"i", "total"}},
		{"if flag:\n  a = 1\nelse:\n  a = 2\n", set("flag"), []string{"flag"}, []string{"a"}},
		{"load('json', 'json')\ns = json.encode(v)", set("json", "v"), []string{"v"}, []string{"s"}},
		{"x = (", set("x"), nil, nil},
		{"", set("x"), nil, nil},
	}
	for _, c := range cases {
		reads, writes := Code(c.src, c.known)
		if !slices.Equal(reads, c.reads) {
			t.Fatalf("%q: got reads %v, expected %v", c.src, reads, c.reads)
		}
		if !slices.Equal(writes, c.writes) {
			t.Fatalf("%q: got writes %v, expected %v", c.src, writes, c.writes)
		}
	}
}

func TestExpression(t *testing.T) {
	cases := []struct {
		expr  string
		reads []string
	}{
		{"x + y * 2", []string{"x", "y"}},
		{"len(items)", []string{"items"}},
		{"a.b", []string{"a"}},
		{"[v for v in items]", []string{"items"}},
		{"42", nil},
		{"x +", nil},
		{"unknown + x", []string{"x"}},
	}
	known := set("x", "y", "items", "a", "b", "v")
	for _, c := range cases {
		reads := Expression(c.expr, known)
		if !slices.Equal(reads, c.reads) {
			t.Fatalf("%q: got %v, expected %v", c.expr, reads, c.reads)
		}
	}
}

func TestSegments(t *testing.T) {
	segs := Segments("Tell me about {topic} in {lang.upper()} {{literal}} {not a placeholder} }")
	var text string
	var names []string
	for _, seg := range segs {
		if seg.Placeholder != nil {
			names = append(names, seg.Placeholder.Name+"/"+seg.Placeholder.Method)
			text += "#"
			continue
		}
		text += seg.Text
	}
	if !slices.Equal(names, []string{"topic/", "lang/upper"}) {
		t.Fatalf("got %v", names)
	}
	if text != "Tell me about # in # {literal} {not a placeholder} }" {
		t.Fatalf("got %q", text)
	}
}

func TestPlaceholderOffsets(t *testing.T) {
	tpl := "a {b} c"
	ps := Placeholders(tpl)
	if len(ps) != 1 {
		t.Fatalf("got %v", ps)
	}
	if tpl[ps[0].Start:ps[0].End] != "{b}" {
		t.Fatalf("got %q", tpl[ps[0].Start:ps[0].End])
	}
}

func TestTemplate(t *testing.T) {
	reads := Template("{topic} {topic.title()} {missing} {{skip}}", set("topic", "skip"))
	if !slices.Equal(reads, []string{"topic"}) {
		t.Fatalf("got %v", reads)
	}
	if reads := Template("", set("x")); len(reads) != 0 {
		t.Fatalf("got %v", reads)
	}
}

func TestIsIdentifier(t *testing.T) {
	for s, expected := range map[string]bool{
		"x":       true,
		"_":       true,
		"my_var2": true,
		"2x":      false,
		"":        false,
		" x":      false,
		"a.b":     false,
		"for":     false,
		"a b":     false,
		"x-y":     false,
		"None":    false,
		"True":    false,
		"False":   false,
		"len":     false,
	} {
		if got := IsIdentifier(s); got != expected {
			t.Fatalf("%q: got %v", s, got)
		}
	}
}
