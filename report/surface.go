package report

import "context"

// A4 geometry and the 96 DPI pixel-to-millimeter factor used when sizing
// the output page to the pruned content.
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
	PixelToMM  = 0.264583
)

// PageSize describes the PDF paper dimensions in millimeters.
type PageSize struct {
	WidthMM  float64
	HeightMM float64
}

// PageSizeForContent returns a single variable-length page: fixed A4
// width, height scaled to the content but never shorter than one A4 page.
func PageSizeForContent(contentHeightPx float64) PageSize {
	height := contentHeightPx * PixelToMM
	if height < A4HeightMM {
		height = A4HeightMM
	}
	return PageSize{WidthMM: A4WidthMM, HeightMM: height}
}

// Document is the narrow live-document capability the pruner depends on.
// Implementations adapt whatever rendering surface the platform offers.
type Document interface {
	// RemoveByID removes the element with the given id. Missing elements
	// are tolerated; removal is idempotent.
	RemoveByID(ctx context.Context, id string) error
	// Evaluate runs a script against the loaded document. When out is
	// non-nil the script's result is unmarshaled into it.
	Evaluate(ctx context.Context, script string, out any) error
}

// Session is an open rendering surface scoped to a single request. It
// must be closed on every exit path.
type Session interface {
	Document

	// SetContent loads an HTML string and waits for it to settle, bounded
	// by the surface's load timeout.
	SetContent(ctx context.Context, html string) error
	// WaitSettled blocks until chart scripts report completion, falling
	// back to a fixed settle delay as the upper bound.
	WaitSettled(ctx context.Context) error
	// PDF captures the document as a PDF with the given page dimensions.
	PDF(ctx context.Context, size PageSize) ([]byte, error)
	Close() error
}

// Surface launches isolated browsing contexts, one per request.
type Surface interface {
	Open(ctx context.Context) (Session, error)
}
