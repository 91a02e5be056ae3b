package notebooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reusee/cellbook/logs"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding by file extension. Anything but .yaml and
// .yml is JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

func (d *Document) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		buf := new(bytes.Buffer)
		encoder := yaml.NewEncoder(buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(d); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(d, "", "  ")
	}
}

func DecodeDocument(data []byte, format Format) (*Document, error) {
	doc := new(Document)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Save writes the notebook to path, creating parent directories. The
// file is replaced atomically.
type Save func(ctx context.Context, notebook *Notebook, path string) error

func (Module) Save(
	logger logs.Logger,
) Save {
	return func(ctx context.Context, notebook *Notebook, path string) (err error) {
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, fmt.Errorf("save %s: %w", path, err))
			}
		}()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}

		notebook.touch()
		data, err := notebook.Document().Encode(FormatOf(path))
		if err != nil {
			return err
		}

		f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
		if err != nil {
			return err
		}
		tmpPath := f.Name()
		defer func() {
			if err != nil {
				_ = os.Remove(tmpPath)
			}
		}()
		if _, err := f.Write(data); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		if err := os.Chmod(tmpPath, 0644); err != nil {
			return err
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return err
		}

		logger.InfoContext(ctx, "notebook saved",
			"path", path,
			"id", notebook.ID,
			"cells", notebook.Len(),
		)
		return nil
	}
}

// Load reads a notebook. The loaded notebook has empty state.
type Load func(ctx context.Context, path string) (*Notebook, error)

func (Module) Load(
	logger logs.Logger,
	newNotebook NewNotebook,
) Load {
	return func(ctx context.Context, path string) (ret *Notebook, err error) {
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, fmt.Errorf("load %s: %w", path, err))
			}
		}()

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		doc, err := DecodeDocument(data, FormatOf(path))
		if err != nil {
			return nil, err
		}
		ret, err = FromDocument(doc, newNotebook)
		if err != nil {
			return nil, err
		}

		logger.InfoContext(ctx, "notebook loaded",
			"path", path,
			"id", ret.ID,
			"cells", ret.Len(),
		)
		return ret, nil
	}
}
