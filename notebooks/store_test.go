package notebooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reusee/cellbook/cells"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			newTestScope(t).Call(func(
				newNotebook NewNotebook,
				save Save,
				load Load,
			) {
				nb := newNotebook("round trip")
				nb.NewMarkdownCell("# Title\n\nsome *text*")
				nb.NewComputationCell("x = 1\nprint(x)")
				nb.NewMemoryCell("topic = 'Go'")
				temperature := 0.2
				_, err := nb.NewPromptCell("about {topic}", "model-a", &temperature, "answer")
				require.NoError(t, err)
				require.NoError(t, nb.ExecuteAll(t.Context()))
				require.True(t, nb.State().Has("answer"))

				path := filepath.Join(t.TempDir(), "nested", "dir", "book"+ext)
				require.NoError(t, save(t.Context(), nb, path))

				entries, err := os.ReadDir(filepath.Dir(path))
				require.NoError(t, err)
				require.Len(t, entries, 1, "no temporary files left")

				loaded, err := load(t.Context(), path)
				require.NoError(t, err)
				assert.Equal(t, nb.ID, loaded.ID)
				assert.Equal(t, nb.Name, loaded.Name)
				assert.Equal(t, "starlark", loaded.Metadata["kernel"])
				assert.True(t, nb.CreatedAt.Equal(loaded.CreatedAt))
				assert.True(t, nb.UpdatedAt.Equal(loaded.UpdatedAt))
				assert.Equal(t, 0, loaded.State().Len(), "state is not persisted")

				require.Equal(t, nb.Len(), loaded.Len())
				for i, cell := range nb.Cells() {
					got, err := loaded.Cell(i)
					require.NoError(t, err)
					assert.Equal(t, cell.ID, got.ID)
					assert.Equal(t, cell.Kind, got.Kind)
					assert.Equal(t, cell.Content, got.Content)
					assert.Equal(t, len(cell.Outputs), len(got.Outputs))
				}
				prompt, err := loaded.Cell(3)
				require.NoError(t, err)
				assert.Equal(t, cells.PromptConfig{
					Model:        "model-a",
					Temperature:  0.2,
					ResponseName: "answer",
				}, prompt.Prompt)
				memory, err := loaded.Cell(2)
				require.NoError(t, err)
				assert.Equal(t, []string{"topic"}, memory.Outputs[0].Added)

				// re-execution restores state
				require.NoError(t, loaded.ExecuteAll(t.Context()))
				assert.Equal(t, nb.State().Names(), loaded.State().Names())
			})
		})
	}
}

func TestDocumentFields(t *testing.T) {
	newTestScope(t).Call(func(
		newNotebook NewNotebook,
	) {
		nb := newNotebook("fields")
		nb.NewComputationCell("a = 1")
		nb.NewPromptCell("hi", "", nil, "")
		require.NoError(t, nb.ExecuteAll(t.Context()))

		doc := nb.Document()
		assert.Equal(t, nb.ID, doc.NotebookID)
		assert.Equal(t, []string{"_", "a", "response_1"}, doc.StateKeys)
		require.Len(t, doc.Cells, 2)
		assert.Equal(t, "ComputationCell", doc.Cells[0].Type)
		assert.Equal(t, "", doc.Cells[0].Model)
		assert.Nil(t, doc.Cells[0].Temperature)
		assert.Equal(t, "PromptCell", doc.Cells[1].Type)
		assert.Equal(t, "gpt-4", doc.Cells[1].Model)
		require.NotNil(t, doc.Cells[1].Temperature)
		assert.Equal(t, 0.7, *doc.Cells[1].Temperature)
		assert.Equal(t, "", doc.Cells[1].ResponseVar)

		_, err := time.Parse(time.RFC3339Nano, doc.CreatedAt)
		require.NoError(t, err)

		data, err := doc.Encode(FormatJSON)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), `"response_var": ""`))
		assert.NotContains(t, string(data), `"state":`)

		data, err = doc.Encode(FormatYAML)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), `response_var: ""`))
	})
}

func TestLoadDefaults(t *testing.T) {
	newTestScope(t).Call(func(
		load Load,
	) {
		path := filepath.Join(t.TempDir(), "old.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
  "created_at": "2024-03-01T10:20:30.123456",
  "cells": [
    {"type": "MarkdownCell", "content": "hello"},
    {"type": "PromptCell", "content": "say {x}"},
    {"type": "memory", "content": "x = 1", "outputs": []}
  ]
}`), 0644))

		nb, err := load(t.Context(), path)
		require.NoError(t, err)
		assert.Equal(t, DefaultName, nb.Name)
		assert.NotEmpty(t, nb.ID)
		assert.Equal(t, 2024, nb.CreatedAt.Year())
		assert.Equal(t, 123456000, nb.CreatedAt.Nanosecond())
		assert.True(t, nb.UpdatedAt.Equal(nb.CreatedAt))
		assert.NotNil(t, nb.Metadata)

		require.Equal(t, 3, nb.Len())
		prompt, _ := nb.Cell(1)
		assert.Equal(t, cells.Prompt, prompt.Kind)
		assert.Equal(t, "gpt-4", prompt.Prompt.Model)
		assert.Equal(t, 0.7, prompt.Prompt.Temperature)
		assert.Equal(t, "", prompt.Prompt.ResponseName)
		for _, cell := range nb.Cells() {
			assert.NotEmpty(t, cell.ID)
		}
	})
}

func TestLoadErrors(t *testing.T) {
	newTestScope(t).Call(func(
		load Load,
	) {
		dir := t.TempDir()

		path := filepath.Join(dir, "unknown.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cells": [{"type": "ChartCell", "content": ""}]}`), 0644))
		_, err := load(t.Context(), path)
		require.ErrorIs(t, err, ErrUnknownCellKind)

		path = filepath.Join(dir, "temperature.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cells:\n  - type: PromptCell\n    content: hi\n    temperature: 3\n"), 0644))
		_, err = load(t.Context(), path)
		require.ErrorIs(t, err, cells.ErrInvalidTemperature)

		path = filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"cells": [`), 0644))
		_, err = load(t.Context(), path)
		require.Error(t, err)

		_, err = load(t.Context(), filepath.Join(dir, "missing.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("a/b.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("b.YML"))
	assert.Equal(t, FormatJSON, FormatOf("b.json"))
	assert.Equal(t, FormatJSON, FormatOf("b.ipynb"))
}
