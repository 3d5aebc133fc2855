package app

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/kiln/internal/engine/document"
)

// Open loads path into a new document. A file that does not exist yet
// opens as an empty document with that name.
func (e *Editor) Open(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		e.setDocument(e.newDocument(), path)
		e.logger.Info("new file", zap.String("path", path))
		return nil
	}
	if err != nil {
		return &OperationError{Op: "open", Target: path, Err: err}
	}
	defer f.Close()

	doc, err := document.ReadFrom(f, document.WithTabStop(e.cfg.Editor.TabStop))
	if err != nil {
		return &OperationError{Op: "read", Target: path, Err: err}
	}
	e.setDocument(doc, path)
	e.logger.Info("opened file", zap.String("path", path), zap.Int("rows", doc.NumRows()))
	return nil
}

func (e *Editor) setDocument(doc *document.Document, path string) {
	e.doc = doc
	e.filename = path
	e.cur = document.Point{}
	e.renderer.SetOffsets(0, 0)
	doc.SelectSyntax(e.registry, path)
	doc.ResetDirty()
}

// Save writes the document to its file, prompting for a name if it has
// none. The outcome is reported in the status bar.
func (e *Editor) Save() error {
	if e.filename == "" {
		name, ok := e.prompt("Save as: %s", nil)
		if !ok {
			e.setStatus("Save aborted")
			return ErrSaveAborted
		}
		e.filename = name
		e.doc.SelectSyntax(e.registry, name)
	}

	data := e.doc.Bytes()
	if err := writeFile(e.filename, data); err != nil {
		e.setStatus("Can't save! I/O error: %v", err)
		e.logger.Error("save failed", zap.String("path", e.filename), zap.Error(err))
		return &OperationError{Op: "save", Target: e.filename, Err: err}
	}

	e.doc.ResetDirty()
	e.setStatus("%d bytes written to disk", len(data))
	e.logger.Info("saved file", zap.String("path", e.filename), zap.Int("bytes", len(data)))
	return nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
