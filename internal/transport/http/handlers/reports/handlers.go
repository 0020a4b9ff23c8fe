package reportshandler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"hrplus/internal/domain/analytics"
	"hrplus/internal/domain/auth"
	"hrplus/internal/transport/http/api"
	"hrplus/internal/transport/http/middleware"
)

type Handler struct {
	Engine *analytics.Service
	Perms  middleware.PermissionStore
}

func NewHandler(engine *analytics.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Engine: engine, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsExport, h.Perms)).Get("/managers/{managerID}/scorecard.pdf", h.handleScorecardPDF)
		r.With(middleware.RequirePermission(auth.PermReportsExport, h.Perms)).Get("/flags.xlsx", h.handleFlagsExport)
	})
}

func (h *Handler) handleScorecardPDF(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	managerID := chi.URLParam(r, "managerID")
	// Dispatch rather than a direct call so the export leaves a decision-log
	// entry like every other engine invocation.
	result, err := h.Engine.Dispatch(r.Context(), user.TenantID, analytics.ActionRequest{
		Action:    analytics.ActionGenerateScorecard,
		ManagerID: managerID,
		CycleID:   r.URL.Query().Get("cycleId"),
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "scorecard_failed", "failed to build scorecard", middleware.GetRequestID(r.Context()))
		return
	}
	scorecard, ok := result.(analytics.CapabilityScorecard)
	if !ok {
		api.Fail(w, http.StatusInternalServerError, "scorecard_failed", "failed to build scorecard", middleware.GetRequestID(r.Context()))
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Manager Capability Scorecard")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Manager: %s", scorecard.ManagerID))
	pdf.Ln(7)
	if scorecard.CycleID != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s", scorecard.CycleID))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Overall: %.2f (%s)", scorecard.OverallScore, scorecard.Trend))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Timeliness: %.2f", scorecard.TimelinessScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Comment quality: %.2f", scorecard.CommentQualityScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Differentiation: %.2f", scorecard.DifferentiationScore))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Calibration: %.2f", scorecard.CalibrationScore))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=scorecard-%s.pdf", managerID))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleFlagsExport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	flags, err := h.Engine.ListFlags(r.Context(), user.TenantID, r.URL.Query().Get("managerId"), nil, 1000, 0)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "flags_export_failed", "failed to load flags", middleware.GetRequestID(r.Context()))
		return
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	headers := []string{"ID", "Manager", "Cycle", "Type", "Severity", "Title", "Affected", "Resolved", "Created"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}
	for row, flag := range flags {
		values := []any{
			flag.ID,
			flag.ManagerID,
			flag.CycleID,
			flag.FlagType,
			flag.Severity,
			flag.Title,
			flag.AffectedEmployees,
			flag.Resolved,
			flag.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = file.SetCellValue(sheet, cell, value)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=hr-flags.xlsx")
	if _, err := file.WriteTo(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "xlsx_failed", "failed to render spreadsheet", middleware.GetRequestID(r.Context()))
	}
}
