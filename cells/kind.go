package cells

import (
	"fmt"
)

type Kind uint8

const (
	Markdown Kind = iota + 1
	Computation
	Prompt
	Memory
)

var kindTags = map[Kind]string{
	Markdown:    "MarkdownCell",
	Computation: "ComputationCell",
	Prompt:      "PromptCell",
	Memory:      "MemoryCell",
}

func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case Computation:
		return "computation"
	case Prompt:
		return "prompt"
	case Memory:
		return "memory"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tag is the persisted name of the kind.
func (k Kind) Tag() string {
	return kindTags[k]
}

// ParseKind accepts a persisted tag or a short name.
func ParseKind(s string) (Kind, error) {
	for kind, tag := range kindTags {
		if s == tag || s == kind.String() {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
