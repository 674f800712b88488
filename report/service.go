package report

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Request describes one report generation call.
type Request struct {
	Fields   FieldMap
	FileName string
	FolderID string
	// Local stores the PDF on disk instead of uploading it.
	Local bool
}

// StoredFile references a persisted PDF: either a local path or a remote
// file id with a viewable link.
type StoredFile struct {
	FileName  string
	LocalPath string
	FileID    string
	ViewLink  string
}

// Store persists a finished PDF under a file name, optionally inside a
// remote parent folder.
type Store interface {
	Save(ctx context.Context, name, folderID string, pdf []byte) (StoredFile, error)
}

// Result is the outcome of a generation request.
type Result struct {
	StoredFile
	Bytes int64
}

// Generator runs the full pipeline: render the template, prune optional
// sections on the live surface, rasterize charts, size the page to the
// content, capture the PDF, and persist it. Each request is independent
// and strictly ordered; the rendering surface is released on every exit
// path.
type Generator struct {
	TemplatePath string
	Surface      Surface
	Store        Store
	LocalStore   Store
	Tracker      Tracker
	Options      Options
	Logger       *zap.Logger
	Now          func() time.Time
	IDGenerator  func() string
}

// Generate produces and persists one report.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if g == nil {
		return Result{}, NewError(KindInternal, "generator is nil", nil)
	}
	if g.Surface == nil {
		return Result{}, NewError(KindInternal, "rendering surface not configured", nil)
	}

	template, err := os.ReadFile(g.TemplatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, NewError(KindNotFound, "report template not found", err)
		}
		return Result{}, NewError(KindInternal, "report template unreadable", err)
	}

	name, err := resolveFilename(req.FileName, g.now())
	if err != nil {
		return Result{}, NewError(KindValidation, "invalid file name", err)
	}

	html := Render(string(template), req.Fields)

	pdf, err := g.capture(ctx, html, req.Fields)
	if err != nil {
		return Result{}, err
	}

	store, destination, err := g.resolveStore(req)
	if err != nil {
		return Result{}, err
	}
	stored, err := store.Save(ctx, name, req.FolderID, pdf)
	if err != nil {
		if KindFromError(err) == KindInternal {
			err = NewError(KindStorage, "report storage failed", err)
		}
		return Result{}, err
	}

	result := Result{StoredFile: stored, Bytes: int64(len(pdf))}
	g.track(ctx, destination, result)
	return result, nil
}

// capture runs the surface-bound part of the pipeline. The session is
// closed before returning, whichever path is taken.
func (g *Generator) capture(ctx context.Context, html string, fields FieldMap) ([]byte, error) {
	session, err := g.Surface.Open(ctx)
	if err != nil {
		return nil, NewError(KindRendering, "rendering surface unavailable", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			g.logger().Warn("surface close failed", zap.Error(err))
		}
	}()

	if err := session.SetContent(ctx, html); err != nil {
		if KindFromError(err) == KindTimeout {
			return nil, err
		}
		return nil, NewError(KindRendering, "content load failed", err)
	}
	if err := session.WaitSettled(ctx); err != nil {
		return nil, NewError(KindRendering, "content settle failed", err)
	}

	if err := PruneSections(ctx, session, fields, g.Options); err != nil {
		return nil, err
	}
	if err := RasterizeCanvases(ctx, session); err != nil {
		return nil, err
	}

	height, err := ContentHeight(ctx, session)
	if err != nil {
		return nil, err
	}

	pdf, err := session.PDF(ctx, PageSizeForContent(height))
	if err != nil {
		return nil, NewError(KindRendering, "pdf capture failed", err)
	}
	return pdf, nil
}

func (g *Generator) resolveStore(req Request) (Store, string, error) {
	if req.Local {
		if g.LocalStore == nil {
			return nil, "", NewError(KindInternal, "local store not configured", nil)
		}
		return g.LocalStore, DestinationLocal, nil
	}
	if g.Store == nil {
		if g.LocalStore != nil {
			return g.LocalStore, DestinationLocal, nil
		}
		return nil, "", NewError(KindInternal, "store not configured", nil)
	}
	return g.Store, DestinationDrive, nil
}

// track records history best-effort; a tracker failure never fails the
// request that already produced a stored PDF.
func (g *Generator) track(ctx context.Context, destination string, result Result) {
	if g.Tracker == nil {
		return
	}
	rec := Record{
		ID:          g.nextID(),
		FileName:    result.FileName,
		Destination: destination,
		FileID:      result.FileID,
		LocalPath:   result.LocalPath,
		Bytes:       result.Bytes,
		CreatedAt:   g.now(),
	}
	if err := g.Tracker.Save(ctx, rec); err != nil {
		g.logger().Warn("report history save failed", zap.Error(err))
	}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) nextID() string {
	if g.IDGenerator == nil {
		return uuid.NewString()
	}
	return g.IDGenerator()
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}
