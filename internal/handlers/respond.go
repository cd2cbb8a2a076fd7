package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// handleServiceError maps typed service errors onto HTTP statuses.
// Authorization denials keep their specific reason in the body; a
// missing resource stays 404 (existence is intentionally not hidden).
func handleServiceError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, models.ErrListNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrFamilyNotFound):
		status = http.StatusNotFound

	case errors.Is(err, models.ErrListNotOwner),
		errors.Is(err, models.ErrListNotOwnerOrShared),
		errors.Is(err, models.ErrListNotShared),
		errors.Is(err, models.ErrListInsufficientSharePermission),
		errors.Is(err, models.ErrNotFamilyOwner),
		errors.Is(err, models.ErrNotAMember):
		status = http.StatusForbidden

	case errors.Is(err, models.ErrAlreadyMember):
		status = http.StatusConflict

	case errors.Is(err, models.ErrCannotRemoveOwner),
		errors.Is(err, models.ErrListNameRequired),
		errors.Is(err, models.ErrItemNameRequired),
		errors.Is(err, models.ErrFamilyNameRequired):
		status = http.StatusBadRequest

	default:
		var inconsistency *models.InconsistencyError
		if errors.As(err, &inconsistency) {
			observability.Errorf("partial write detected: %v", inconsistency)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal error"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
