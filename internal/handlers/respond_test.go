package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"list not found", models.ErrListNotFound, http.StatusNotFound},
		{"item not found", models.ErrItemNotFound, http.StatusNotFound},
		{"family not found", models.ErrFamilyNotFound, http.StatusNotFound},
		{"not owner", models.ErrListNotOwner, http.StatusForbidden},
		{"not owner or shared", models.ErrListNotOwnerOrShared, http.StatusForbidden},
		{"not shared", models.ErrListNotShared, http.StatusForbidden},
		{"insufficient share permission", models.ErrListInsufficientSharePermission, http.StatusForbidden},
		{"not family owner", models.ErrNotFamilyOwner, http.StatusForbidden},
		{"not a member", models.ErrNotAMember, http.StatusForbidden},
		{"already a member", models.ErrAlreadyMember, http.StatusConflict},
		{"cannot remove owner", models.ErrCannotRemoveOwner, http.StatusBadRequest},
		{"list name required", models.ErrListNameRequired, http.StatusBadRequest},
		{"item name required", models.ErrItemNameRequired, http.StatusBadRequest},
		{"unexpected error", errors.New("database down"), http.StatusInternalServerError},
		{"inconsistency", &models.InconsistencyError{Op: "create family", Err: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "error")
		})
	}

	t.Run("internal errors do not leak details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, errors.New("pq: connection refused"))

		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("wrapped errors still map", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleServiceError(rec, errors.Join(errors.New("context"), models.ErrListNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
