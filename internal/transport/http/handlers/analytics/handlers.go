package analyticshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrplus/internal/domain/analytics"
	"hrplus/internal/domain/audit"
	"hrplus/internal/domain/auth"
	"hrplus/internal/platform/metrics"
	"hrplus/internal/transport/http/api"
	"hrplus/internal/transport/http/middleware"
	"hrplus/internal/transport/http/shared"
)

type Handler struct {
	Engine    *analytics.Service
	Decisions *audit.Service
	Perms     middleware.PermissionStore
	Collector *metrics.Collector
}

func NewHandler(engine *analytics.Service, decisions *audit.Service, perms middleware.PermissionStore, collector *metrics.Collector) *Handler {
	return &Handler{Engine: engine, Decisions: decisions, Perms: perms, Collector: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAnalyticsRun, h.Perms)).Post("/actions", h.handleAction)

		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/managers/{managerID}/timeliness", h.handleTimeliness)
		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/managers/{managerID}/comment-quality", h.handleCommentQuality)
		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/managers/{managerID}/variance", h.handleVariance)
		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/managers/{managerID}/scorecard", h.handleScorecard)
		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/managers/{managerID}/coaching", h.handleCoaching)

		r.With(middleware.RequirePermission(auth.PermAnalyticsRead, h.Perms)).Get("/flags", h.handleListFlags)
		r.With(middleware.RequirePermission(auth.PermFlagsResolve, h.Perms)).Post("/flags/{flagID}/resolve", h.handleResolveFlag)

		r.With(middleware.RequirePermission(auth.PermDecisionsRead, h.Perms)).Get("/decisions", h.handleListDecisions)
	})
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req analytics.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("action", string(req.Action), "action is required")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Engine.Dispatch(r.Context(), user.TenantID, req)
	if err != nil {
		h.failDispatch(w, r, err)
		return
	}

	if h.Collector != nil {
		h.Collector.RecordAction(string(req.Action))
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failDispatch(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, analytics.ErrUnknownAction):
		api.Fail(w, http.StatusBadRequest, "unknown_action", "unsupported analytics action", requestID)
	case errors.Is(err, analytics.ErrManagerRequired):
		api.Fail(w, http.StatusBadRequest, "manager_required", "managerId is required for this action", requestID)
	case errors.Is(err, analytics.ErrSessionRequired):
		api.Fail(w, http.StatusBadRequest, "session_required", "sessionId is required for this action", requestID)
	case errors.Is(err, analytics.ErrCommentRequired):
		api.Fail(w, http.StatusBadRequest, "comment_required", "comment or managerId is required for this action", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "analysis_failed", "analysis failed", requestID)
	}
}

func (h *Handler) handleTimeliness(w http.ResponseWriter, r *http.Request) {
	h.serveManagerMetric(w, r, analytics.ActionCalculateTimeliness)
}

func (h *Handler) handleCommentQuality(w http.ResponseWriter, r *http.Request) {
	h.serveManagerMetric(w, r, analytics.ActionAnalyzeCommentQuality)
}

func (h *Handler) handleVariance(w http.ResponseWriter, r *http.Request) {
	h.serveManagerMetric(w, r, analytics.ActionCalculateVariance)
}

func (h *Handler) handleScorecard(w http.ResponseWriter, r *http.Request) {
	h.serveManagerMetric(w, r, analytics.ActionGenerateScorecard)
}

func (h *Handler) handleCoaching(w http.ResponseWriter, r *http.Request) {
	h.serveManagerMetric(w, r, analytics.ActionGenerateCoaching)
}

// serveManagerMetric runs the convenience GETs through the same dispatcher
// as POST /actions, so every read leaves a decision-log entry too.
func (h *Handler) serveManagerMetric(w http.ResponseWriter, r *http.Request, action analytics.Action) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	req := analytics.ActionRequest{
		Action:    action,
		ManagerID: chi.URLParam(r, "managerID"),
		CycleID:   r.URL.Query().Get("cycleId"),
	}
	result, err := h.Engine.Dispatch(r.Context(), user.TenantID, req)
	if err != nil {
		h.failDispatch(w, r, err)
		return
	}

	if h.Collector != nil {
		h.Collector.RecordAction(string(action))
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListFlags(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	managerID := r.URL.Query().Get("managerId")
	var resolved *bool
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		value := raw == "true"
		resolved = &value
	}

	flags, err := h.Engine.ListFlags(r.Context(), user.TenantID, managerID, resolved, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "flags_list_failed", "failed to list flags", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, flags, middleware.GetRequestID(r.Context()))
}

type resolveFlagRequest struct {
	Note string `json:"note"`
}

func (h *Handler) handleResolveFlag(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req resolveFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}

	flagID := chi.URLParam(r, "flagID")
	err := h.Engine.ResolveFlag(r.Context(), user.TenantID, flagID, user.UserID, req.Note)
	if errors.Is(err, analytics.ErrFlagNotFound) {
		api.Fail(w, http.StatusNotFound, "flag_not_found", "flag not found or already resolved", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "flag_resolve_failed", "failed to resolve flag", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"flagId": flagID, "status": "resolved"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDecisions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	filter := audit.Filter{Action: r.URL.Query().Get("action")}
	if raw := r.URL.Query().Get("humanReview"); raw != "" {
		value := raw == "true"
		filter.HumanReview = &value
	}

	total, err := h.Decisions.Count(r.Context(), user.TenantID, filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "decisions_count_failed", "failed to count decisions", middleware.GetRequestID(r.Context()))
		return
	}

	decisions, err := h.Decisions.List(r.Context(), user.TenantID, filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "decisions_list_failed", "failed to list decisions", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, decisions, middleware.GetRequestID(r.Context()))
}
