package configs

import (
	"errors"
	"fmt"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)

	var str string
	err := loader.AssignFirst("str", &str)
	if err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	err = loader.AssignFirst("list", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"test.cue",
		"test2.cue",
	}, testSchema)

	var strs []string
	for value, err := range loader.IterCueValues("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	strs = strs[:0]
	for str, err := range All[string](loader, "str") {
		if err != nil {
			t.Fatal(err)
		}
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestZeroLoader(t *testing.T) {
	var loader Loader
	if err := loader.Err(); err != nil {
		t.Fatal(err)
	}
	if v := First[string](loader, "str"); v != "" {
		t.Fatalf("got %q", v)
	}
	for range All[string](loader, "str") {
		t.Fatal("should be empty")
	}
	if _, err := Lookup[string](loader, "str"); !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader([]string{"not-exists.cue"}, "")
	if err := loader.Err(); err == nil {
		t.Fatal("should error")
	}
	if len(loader.Paths()) != 1 {
		t.Fatalf("got %v", loader.Paths())
	}
}

func TestFirst(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)
	if str := First[string](loader, "str"); str != "bar" {
		t.Fatalf("got %v", str)
	}
	if list := First[[]int](loader, "list"); fmt.Sprint(list) != "[1 2 3]" {
		t.Fatalf("got %v", list)
	}

	loader = NewLoader([]string{"test2.cue"}, testSchema)
	if list := First[[]int](loader, "list"); list != nil {
		t.Fatalf("got %v", list)
	}
	if str := First[string](loader, "str"); str != "foo" {
		t.Fatalf("got %v", str)
	}
}

func TestAllDecodeError(t *testing.T) {
	loader := NewLoader([]string{"test.cue", "test2.cue"}, testSchema)
	n := 0
	for _, err := range All[int](loader, "str") {
		n++
		if err == nil {
			t.Fatal("should fail to decode")
		}
	}
	if n != 1 {
		t.Fatalf("should stop at the first error, got %d", n)
	}
}

func TestFirstPanicsOnBadFile(t *testing.T) {
	loader := NewLoader([]string{"bad.cue"}, testSchema)
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	First[string](loader, "str")
}
