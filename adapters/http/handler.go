package reporthttp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	errorslib "github.com/goliatone/go-errors"
	"go.uber.org/zap"

	"github.com/Children-Of-Regions/pdf-service/report"
)

// GeneratorService is the slice of the report generator the handler needs.
type GeneratorService interface {
	Generate(ctx context.Context, req report.Request) (report.Result, error)
}

// Handler exposes the report endpoints.
type Handler struct {
	Generator GeneratorService
	Tracker   report.Tracker
	Logger    *zap.Logger
}

// Register mounts the report routes on a fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/reports", h.CreateReport)
	app.Get("/reports", h.ListReports)
	app.Get("/healthz", h.Health)
}

// CreateReport handles POST /reports: flat JSON field payload in, stored
// PDF reference out.
func (h *Handler) CreateReport(c *fiber.Ctx) error {
	if h == nil || h.Generator == nil {
		return writeError(c, report.NewError(report.KindInternal, "report generator not configured", nil))
	}

	payload := map[string]any{}
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return writeError(c, report.NewError(report.KindValidation, "invalid JSON payload", err))
	}

	req := report.Request{
		Fields:   report.FieldMapFromPayload(payload),
		FileName: stringValue(payload, "fileName"),
		FolderID: stringValue(payload, "folderId"),
		Local:    boolValue(payload, "local"),
	}

	result, err := h.Generator.Generate(c.UserContext(), req)
	if err != nil {
		h.logger().Warn("report generation failed",
			zap.String("fileName", req.FileName),
			zap.Error(err))
		return writeError(c, err)
	}

	h.logger().Info("report generated",
		zap.String("fileName", result.FileName),
		zap.Int64("bytes", result.Bytes))

	body := fiber.Map{"success": true, "fileName": result.FileName}
	if result.LocalPath != "" {
		body["localPath"] = result.LocalPath
	} else {
		body["fileId"] = result.FileID
		body["viewLink"] = result.ViewLink
	}
	return c.Status(http.StatusOK).JSON(body)
}

// ListReports handles GET /reports with the tracked history.
func (h *Handler) ListReports(c *fiber.Ctx) error {
	if h == nil || h.Tracker == nil {
		return writeError(c, report.NewError(report.KindInternal, "report tracker not configured", nil))
	}
	records, err := h.Tracker.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"reports": records})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) logger() *zap.Logger {
	if h == nil || h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeError(c *fiber.Ctx, err error) error {
	ge := report.AsGoError(err)
	return c.Status(statusForError(ge)).JSON(fiber.Map{"error": ge.Message})
}

func statusForError(err *errorslib.Error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	switch err.Category {
	case errorslib.CategoryValidation:
		return http.StatusBadRequest
	case errorslib.CategoryNotFound:
		return http.StatusNotFound
	case errorslib.CategoryOperation:
		switch err.TextCode {
		case "timeout":
			return http.StatusGatewayTimeout
		case "canceled":
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func stringValue(payload map[string]any, key string) string {
	value, ok := payload[key]
	if !ok {
		return ""
	}
	return report.Stringify(value)
}

func boolValue(payload map[string]any, key string) bool {
	value, ok := payload[key].(bool)
	return ok && value
}
