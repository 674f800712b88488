package storefs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Children-Of-Regions/pdf-service/report"
)

// Store writes finished PDFs under a fixed output directory.
type Store struct {
	Root string
}

// NewStore creates a filesystem-backed report store.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Save writes the PDF to disk atomically, creating the output directory
// if absent. The folder id only applies to remote stores and is ignored.
func (s *Store) Save(ctx context.Context, name, folderID string, pdf []byte) (report.StoredFile, error) {
	_ = ctx
	_ = folderID
	if s == nil {
		return report.StoredFile{}, report.NewError(report.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return report.StoredFile{}, report.NewError(report.KindValidation, "store root is required", nil)
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(os.PathSeparator) {
		return report.StoredFile{}, report.NewError(report.KindValidation, "file name is required", nil)
	}

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "output directory unavailable", err)
	}

	target := filepath.Join(s.Root, name)
	tmp, err := os.CreateTemp(s.Root, ".report-*")
	if err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "report write failed", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(pdf); err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "report write failed", err)
	}
	if err := tmp.Sync(); err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "report write failed", err)
	}
	if err := tmp.Close(); err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "report write failed", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return report.StoredFile{}, report.NewError(report.KindStorage, "report write failed", err)
	}

	return report.StoredFile{FileName: name, LocalPath: target}, nil
}
