package notebooks

import (
	"fmt"
	"time"

	"github.com/reusee/cellbook/bookconfigs"
	"github.com/reusee/cellbook/cells"
	"github.com/reusee/cellbook/vars"
)

// Document is the persisted form of a notebook. State values are not
// persisted, only their names.
type Document struct {
	NotebookID string         `json:"notebook_id" yaml:"notebook_id"`
	Name       string         `json:"name" yaml:"name"`
	CreatedAt  string         `json:"created_at" yaml:"created_at"`
	UpdatedAt  string         `json:"updated_at" yaml:"updated_at"`
	Metadata   map[string]any `json:"metadata" yaml:"metadata"`
	Cells      []CellRecord   `json:"cells" yaml:"cells"`
	StateKeys  []string       `json:"state_keys" yaml:"state_keys"`
}

type CellRecord struct {
	CellID  string         `json:"cell_id" yaml:"cell_id"`
	Type    string         `json:"type" yaml:"type"`
	Content string         `json:"content" yaml:"content"`
	Outputs []cells.Output `json:"outputs" yaml:"outputs"`
	// prompt cells
	Model       string   `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	ResponseVar string   `json:"response_var" yaml:"response_var"`
}

const timeLayout = time.RFC3339Nano

// accepted when reading, including timestamps without a zone
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Document converts the notebook for persisting.
func (n *Notebook) Document() *Document {
	doc := &Document{
		NotebookID: n.ID,
		Name:       n.Name,
		CreatedAt:  n.CreatedAt.Format(timeLayout),
		UpdatedAt:  n.UpdatedAt.Format(timeLayout),
		Metadata:   n.metadata(),
		Cells:      make([]CellRecord, 0, len(n.cells)),
		StateKeys:  n.state.Names(),
	}
	for _, cell := range n.cells {
		record := CellRecord{
			CellID:  cell.ID,
			Type:    cell.Kind.Tag(),
			Content: cell.Content,
			Outputs: cell.Outputs,
		}
		if record.Outputs == nil {
			record.Outputs = []cells.Output{}
		}
		if cell.Kind == cells.Prompt {
			record.Model = cell.Prompt.Model
			record.Temperature = vars.PtrTo(cell.Prompt.Temperature)
			record.ResponseVar = cell.Prompt.ResponseName
		}
		doc.Cells = append(doc.Cells, record)
	}
	return doc
}

// FromDocument rebuilds a notebook with empty state. Missing fields take
// defaults. An unknown cell type or invalid prompt settings fail the
// whole load.
func FromDocument(doc *Document, newNotebook NewNotebook) (*Notebook, error) {
	n := newNotebook(vars.FirstNonZero(doc.Name, DefaultName))
	if doc.NotebookID != "" {
		n.ID = doc.NotebookID
	}
	if t, ok := parseTime(doc.CreatedAt); ok {
		n.CreatedAt = t
	}
	n.UpdatedAt = n.CreatedAt
	if t, ok := parseTime(doc.UpdatedAt); ok {
		n.UpdatedAt = t
	}
	if doc.Metadata != nil {
		n.Metadata = doc.Metadata
	} else {
		n.Metadata = map[string]any{}
	}

	for i, record := range doc.Cells {
		kind, err := cells.ParseKind(record.Type)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w: %q", i, ErrUnknownCellKind, record.Type)
		}
		cell := cells.New(kind, record.Content)
		if record.CellID != "" {
			cell.ID = record.CellID
		}
		if kind == cells.Prompt {
			temperature := bookconfigs.FallbackTemperature
			if record.Temperature != nil {
				temperature = *record.Temperature
			}
			config, err := cells.NewPromptConfig(
				vars.FirstNonZero(record.Model, bookconfigs.FallbackModel),
				temperature,
				record.ResponseVar,
			)
			if err != nil {
				return nil, fmt.Errorf("cell %d: %w", i, err)
			}
			cell.Prompt = config
		}
		cell.Outputs = record.Outputs
		n.cells = append(n.cells, cell)
	}

	return n, nil
}
