package appraisalhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrplus/internal/domain/appraisal"
	"hrplus/internal/domain/auth"
	"hrplus/internal/transport/http/api"
	"hrplus/internal/transport/http/middleware"
	"hrplus/internal/transport/http/shared"
)

type Handler struct {
	Service *appraisal.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *appraisal.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisal", func(r chi.Router) {
		read := middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)
		write := middleware.RequirePermission(auth.PermAppraisalWrite, h.Perms)

		r.With(write).Post("/cycles", h.handleCreateCycle)
		r.With(read).Get("/cycles", h.handleListCycles)
		r.With(read).Get("/cycles/{cycleID}", h.handleGetCycle)
		r.With(write).Post("/cycles/{cycleID}/close", h.handleCloseCycle)
		r.With(write).Post("/cycles/{cycleID}/enroll", h.handleEnroll)

		r.With(read).Get("/assignments", h.handleListAssignments)
		r.With(write).Post("/assignments/{assignmentID}/submit", h.handleSubmitReview)

		r.With(write).Post("/sessions", h.handleCreateSession)
		r.With(read).Get("/sessions", h.handleListSessions)
		r.With(write).Post("/sessions/{sessionID}/adjustments", h.handleRecordAdjustments)
		r.With(write).Post("/sessions/{sessionID}/close", h.handleCloseSession)
	})
}

type createCycleRequest struct {
	Name               string `json:"name"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	EvaluationDeadline string `json:"evaluationDeadline"`
}

func (h *Handler) handleCreateCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req createCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("name", req.Name, "name is required")
	start, _ := validator.Date("startDate", req.StartDate)
	end, _ := validator.Date("endDate", req.EndDate)
	deadline, _ := validator.Date("evaluationDeadline", req.EvaluationDeadline)
	validator.DateOrder("startDate", start, "endDate", end)
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateCycle(r.Context(), user.TenantID, req.Name, start, end, deadline)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_create_failed", "failed to create review cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListCycles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	cycles, err := h.Service.ListCycles(r.Context(), user.TenantID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_list_failed", "failed to list review cycles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	cycle, err := h.Service.CycleByID(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"))
	if errors.Is(err, appraisal.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_get_failed", "failed to load review cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cycle, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCloseCycle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	err := h.Service.CloseCycle(r.Context(), user.TenantID, cycleID)
	if errors.Is(err, appraisal.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "cycle_close_failed", "failed to close review cycle", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": cycleID, "status": appraisal.CycleStatusClosed}, middleware.GetRequestID(r.Context()))
}

type enrollRequest struct {
	Pairs []appraisal.EnrollmentPair `json:"pairs"`
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}
	if len(req.Pairs) == 0 {
		api.Fail(w, http.StatusBadRequest, "pairs_required", "at least one evaluator/employee pair is required", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.EnrollParticipants(r.Context(), user.TenantID, chi.URLParam(r, "cycleID"), req.Pairs)
	if errors.Is(err, appraisal.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, appraisal.ErrCycleClosed) {
		api.Fail(w, http.StatusConflict, "cycle_closed", "review cycle is not active", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll participants", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]int{"created": created}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	assignments, err := h.Service.ListAssignments(r.Context(), user.TenantID, r.URL.Query().Get("cycleId"), r.URL.Query().Get("evaluatorId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var submission appraisal.ReviewSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	for i, entry := range submission.Scores {
		validator.Required(fmt.Sprintf("scores[%d].competency", i), entry.Competency, "competency is required")
		validator.ScoreRange(fmt.Sprintf("scores[%d].score", i), entry.Score, appraisal.MinScore, appraisal.MaxScore)
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	assignmentID := chi.URLParam(r, "assignmentID")
	err := h.Service.SubmitReview(r.Context(), user.TenantID, assignmentID, submission)
	switch {
	case errors.Is(err, appraisal.ErrAssignmentNotFound):
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, appraisal.ErrAlreadySubmitted):
		api.Fail(w, http.StatusConflict, "already_submitted", "review already submitted", middleware.GetRequestID(r.Context()))
	case errors.Is(err, appraisal.ErrCycleClosed):
		api.Fail(w, http.StatusConflict, "cycle_closed", "review cycle is not active", middleware.GetRequestID(r.Context()))
	case errors.Is(err, appraisal.ErrNoScores):
		api.Fail(w, http.StatusBadRequest, "no_scores", "at least one score is required", middleware.GetRequestID(r.Context()))
	case errors.Is(err, appraisal.ErrScoreOutOfRange):
		api.Fail(w, http.StatusBadRequest, "score_out_of_range", "scores must be within the rating scale", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit review", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]string{"assignmentId": assignmentID, "status": appraisal.AssignmentStatusCompleted}, middleware.GetRequestID(r.Context()))
	}
}

type createSessionRequest struct {
	CycleID string `json:"cycleId"`
	Name    string `json:"name"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("cycleId", req.CycleID, "cycleId is required")
	validator.Required("name", req.Name, "name is required")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateSession(r.Context(), user.TenantID, req.CycleID, req.Name)
	if errors.Is(err, appraisal.ErrCycleNotFound) {
		api.Fail(w, http.StatusNotFound, "cycle_not_found", "review cycle not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_create_failed", "failed to create calibration session", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	sessions, err := h.Service.ListSessions(r.Context(), user.TenantID, r.URL.Query().Get("cycleId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_list_failed", "failed to list calibration sessions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sessions, middleware.GetRequestID(r.Context()))
}

type adjustmentsRequest struct {
	Adjustments []appraisal.CalibrationAdjustment `json:"adjustments"`
}

func (h *Handler) handleRecordAdjustments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var req adjustmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return
	}
	if len(req.Adjustments) == 0 {
		api.Fail(w, http.StatusBadRequest, "adjustments_required", "at least one adjustment is required", middleware.GetRequestID(r.Context()))
		return
	}

	recorded, err := h.Service.RecordAdjustments(r.Context(), user.TenantID, chi.URLParam(r, "sessionID"), req.Adjustments)
	switch {
	case errors.Is(err, appraisal.ErrSessionNotFound):
		api.Fail(w, http.StatusNotFound, "session_not_found", "calibration session not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, appraisal.ErrSessionClosed):
		api.Fail(w, http.StatusConflict, "session_closed", "calibration session is closed", middleware.GetRequestID(r.Context()))
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "adjustments_failed", "failed to record adjustments", middleware.GetRequestID(r.Context()))
	default:
		api.Success(w, map[string]int{"recorded": recorded}, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	err := h.Service.CloseSession(r.Context(), user.TenantID, sessionID)
	if errors.Is(err, appraisal.ErrSessionNotFound) {
		api.Fail(w, http.StatusNotFound, "session_not_found", "calibration session not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "session_close_failed", "failed to close calibration session", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"id": sessionID, "status": appraisal.SessionStatusClosed}, middleware.GetRequestID(r.Context()))
}
