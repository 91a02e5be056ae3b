package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/configs"
	"github.com/reusee/cellbook/modes"
	"github.com/reusee/cellbook/notebooks"
	"github.com/reusee/dscope"
)

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	kind, content, err := importFile(write("a.md", []byte("# hello\n")))
	if err != nil {
		t.Fatal(err)
	}
	if kind != cells.Markdown || content != "# hello\n" {
		t.Fatalf("got %v %q", kind, content)
	}

	kind, _, err = importFile(write("b.star", []byte("x = 1\n")))
	if err != nil {
		t.Fatal(err)
	}
	if kind != cells.Computation {
		t.Fatalf("got %v", kind)
	}

	kind, _, err = importFile(write("c.mem", []byte("topic = 'go'\n")))
	if err != nil {
		t.Fatal(err)
	}
	if kind != cells.Memory {
		t.Fatalf("got %v", kind)
	}

	// png header
	_, _, err = importFile(write("d.star", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
	if err == nil {
		t.Fatal("should fail")
	}
}

func TestRunAll(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
	).Call(func(
		newNotebook notebooks.NewNotebook,
	) {
		nb := newNotebook("run")
		nb.NewMemoryCell("topic = 'Go'")
		nb.NewComputationCell("print(topic)\nn = len(topic)")
		nb.NewComputationCell("1 / 0")
		nb.NewPromptCell("about {topic}", "", nil, "")

		buf := new(bytes.Buffer)
		if err := runAll(t.Context(), buf, nb); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, expected := range []string{
			"[0] memory",
			"topic = Go",
			"[1] computation",
			"  Go",
			"[2] computation",
			"error:",
			"[3] prompt",
			"Mock response to: about Go...",
		} {
			if !strings.Contains(out, expected) {
				t.Fatalf("expected %q in\n%s", expected, out)
			}
		}

		buf.Reset()
		printGraph(buf, nb)
		if !strings.Contains(buf.String(), "[1] computation reads [topic] writes [n] <- [0]") {
			t.Fatalf("got %s", buf.String())
		}

		buf.Reset()
		printState(buf, nb.State())
		if !strings.Contains(buf.String(), "n = 2\n") {
			t.Fatalf("got %s", buf.String())
		}
	})
}

func TestRunGlob(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
	).Call(func(
		inject dscope.InjectStruct,
		newNotebook notebooks.NewNotebook,
		save notebooks.Save,
	) {
		dir := t.TempDir()
		for i, name := range []string{"a/one.json", "b/c/two.yaml", "three.json"} {
			nb := newNotebook(name)
			nb.NewComputationCell(fmt.Sprintf("print(%d * 10)", i+1))
			if err := save(t.Context(), nb, filepath.Join(dir, name)); err != nil {
				t.Fatal(err)
			}
		}

		var s Session
		inject(&s)
		buf := new(bytes.Buffer)
		s.Out = buf
		if err := runGlob(t.Context(), &s, filepath.Join(dir, "**", "*.{json,yaml}")); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		one := strings.Index(out, "one.json")
		two := strings.Index(out, "two.yaml")
		if one < 0 || two < 0 || !strings.Contains(out, "three.json") {
			t.Fatalf("got %s", out)
		}
		for _, expected := range []string{"  10\n", "  20\n", "  30\n"} {
			if !strings.Contains(out, expected) {
				t.Fatalf("expected %q in %s", expected, out)
			}
		}
		if s.notebook == nil || s.path == "" {
			t.Fatal("last notebook should be current")
		}

		buf.Reset()
		if err := runGlob(t.Context(), &s, filepath.Join(dir, "*.llmn")); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Fatalf("got %s", buf.String())
		}
	})
}
