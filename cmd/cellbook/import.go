package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusee/cellbook/cells"
)

// importFile reads a text file as cell content. Markdown files become
// markdown cells, everything else computation cells.
func importFile(path string) (cells.Kind, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, "", err
	}

	isText := false
	for t := mimetype.Detect(content); t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			isText = true
			break
		}
	}
	if !isText {
		return 0, "", fmt.Errorf("%s is not a text file", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return cells.Markdown, string(content), nil
	case ".mem":
		return cells.Memory, string(content), nil
	}
	return cells.Computation, string(content), nil
}
