// Package handlers provides the HTTP handlers for the pantry API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/alchemorsel/pantry/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/pantry/internal/ports/inbound"
	apperrors "github.com/alchemorsel/pantry/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PantryHandler serves the ledger endpoints.
type PantryHandler struct {
	service  inbound.PantryService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPantryHandler creates the pantry API handler.
func NewPantryHandler(service inbound.PantryService, logger *zap.Logger) *PantryHandler {
	return &PantryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.Named("pantry-handler"),
	}
}

// Routes mounts the pantry endpoints.
func (h *PantryHandler) Routes(r chi.Router) {
	r.Post("/pantry/match", h.Match)
	r.Post("/pantry/score", h.Score)
	r.Post("/pantry/cook", h.Cook)
	r.Post("/pantry/undo", h.Undo)
	r.Post("/recipes/{recipeID}/confirm-use", h.ConfirmUse)
}

type matchRequest struct {
	Line string `json:"line" validate:"required"`
}

type matchResponse struct {
	Status     pantry.MatchStatus `json:"status"`
	Ingredient string             `json:"ingredient"`
	ItemID     *uuid.UUID         `json:"item_id,omitempty"`
	HasEnough  bool               `json:"has_enough"`
	Percentage float64            `json:"percentage"`
	Comparable bool               `json:"comparable"`
}

// Match classifies pantry coverage for one ingredient line.
func (h *PantryHandler) Match(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, apperrors.NewUnauthorizedError(""))
		return
	}
	var req matchRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	match, err := h.service.MatchIngredient(r.Context(), userID, req.Line)
	if err != nil {
		h.respondError(w, err)
		return
	}
	resp := matchResponse{
		Status:     match.Status,
		Ingredient: match.Parsed.Name,
		HasEnough:  match.HasEnough,
		Percentage: match.Percentage,
		Comparable: match.Comparable,
	}
	if match.Item != nil {
		resp.ItemID = &match.Item.ID
	}
	h.respond(w, http.StatusOK, resp)
}

type scoreRequest struct {
	Lines []string `json:"lines" validate:"required,min=1,dive,required"`
}

// Score computes the recipe feasibility score.
func (h *PantryHandler) Score(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, apperrors.NewUnauthorizedError(""))
		return
	}
	var req scoreRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.service.ScoreRecipe(r.Context(), userID, req.Lines)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, result)
}

type cookRequest struct {
	Lines []string `json:"lines" validate:"required,min=1,dive,required"`
}

type deductionPayload struct {
	ItemID           uuid.UUID `json:"item_id" validate:"required"`
	PreviousQuantity float64   `json:"previous_quantity"`
	NewQuantity      float64   `json:"new_quantity"`
}

type cookResponse struct {
	Deductions    []deductionPayload `json:"deductions"`
	DeductedCount int                `json:"deducted_count"`
}

// Cook applies the recipe's deductions and returns the undo journal
// records, which the client holds until undone or discarded.
func (h *PantryHandler) Cook(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, apperrors.NewUnauthorizedError(""))
		return
	}
	var req cookRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.service.Cook(r.Context(), userID, req.Lines)
	if err != nil {
		h.respondError(w, err)
		return
	}
	resp := cookResponse{DeductedCount: result.DeductedCount}
	for _, rec := range result.Deductions {
		resp.Deductions = append(resp.Deductions, deductionPayload{
			ItemID:           rec.ItemID,
			PreviousQuantity: rec.PreviousQuantity,
			NewQuantity:      rec.NewQuantity,
		})
	}
	h.respond(w, http.StatusOK, resp)
}

type undoRequest struct {
	Deductions []deductionPayload `json:"deductions" validate:"required,min=1,dive"`
}

// Undo restores the quantities of the client-held journal.
func (h *PantryHandler) Undo(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, apperrors.NewUnauthorizedError(""))
		return
	}
	var req undoRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	records := make([]pantry.DeductionRecord, 0, len(req.Deductions))
	for _, d := range req.Deductions {
		records = append(records, pantry.DeductionRecord{
			ItemID:           d.ItemID,
			PreviousQuantity: d.PreviousQuantity,
			NewQuantity:      d.NewQuantity,
		})
	}
	journal := pantry.NewJournal(records)
	if err := h.service.Undo(r.Context(), userID, &journal); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]int{"restored": len(records)})
}

// ConfirmUse permanently deducts a recipe's ingredients under the
// ownership and sufficiency gates.
func (h *PantryHandler) ConfirmUse(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, apperrors.NewUnauthorizedError(""))
		return
	}
	recipeID, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		h.respondError(w, apperrors.NewValidationError("recipeID must be a UUID"))
		return
	}

	if err := h.service.ConfirmUse(r.Context(), recipeID, userID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *PantryHandler) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("invalid JSON body")
	}
	if err := h.validate.Struct(v); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func (h *PantryHandler) respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *PantryHandler) respondError(w http.ResponseWriter, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.FromDomain(err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(appErr))
	}
	h.respond(w, appErr.StatusCode(), appErr)
}
