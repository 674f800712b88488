package report

import (
	"context"
	_ "embed"
)

// Scripts evaluated against the live document. They are embedded so the
// service binary carries no runtime asset directory.
var (
	//go:embed assets/rasterize_canvases.js
	rasterizeCanvasesScript string

	//go:embed assets/content_height.js
	contentHeightScript string

	//go:embed assets/charts_ready.js
	chartsReadyScript string
)

// ChartsReadyScript returns the probe surfaces poll while waiting for
// chart drawing to finish. Chart scripts signal completion by setting
// window.__chartsReady.
func ChartsReadyScript() string {
	return chartsReadyScript
}

// RasterizeCanvases replaces every canvas element with a static PNG image
// of its current pixel content, sized to the canvas's style dimensions
// (intrinsic pixels when no style size is set). Must run after charts
// have finished drawing.
func RasterizeCanvases(ctx context.Context, doc Document) error {
	if doc == nil {
		return NewError(KindInternal, "document is nil", nil)
	}
	if err := doc.Evaluate(ctx, rasterizeCanvasesScript, nil); err != nil {
		return NewError(KindRendering, "canvas rasterization failed", err)
	}
	return nil
}

// ContentHeight measures the document's rendered pixel height.
func ContentHeight(ctx context.Context, doc Document) (float64, error) {
	if doc == nil {
		return 0, NewError(KindInternal, "document is nil", nil)
	}
	var height float64
	if err := doc.Evaluate(ctx, contentHeightScript, &height); err != nil {
		return 0, NewError(KindRendering, "content height measurement failed", err)
	}
	return height, nil
}
