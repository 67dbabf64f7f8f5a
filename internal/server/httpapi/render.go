package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mzaikin/rosterd/internal/common"
)

type errorBody struct {
	ErrorKind          string `json:"error_kind"`
	Details            string `json:"details"`
	ConflictingEntryID string `json:"conflicting_entry_id,omitempty"`
	Reference          string `json:"reference,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, details string) {
	writeJSON(w, http.StatusBadRequest, errorBody{ErrorKind: "bad_request", Details: details})
}

// writeError maps domain errors onto the HTTP taxonomy:
// SlotOccupied and EmployeeDoubleBooked are state conflicts (409),
// InactiveOrUnknownReference is stale client master data (422),
// NotFound is 404. Everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var doubleBooked *common.DoubleBookedError
	if errors.As(err, &doubleBooked) {
		writeJSON(w, http.StatusConflict, errorBody{
			ErrorKind:          "employee_double_booked",
			Details:            doubleBooked.Error(),
			ConflictingEntryID: doubleBooked.ConflictingEntryID,
		})
		return
	}

	var refErr *common.ReferenceError
	if errors.As(err, &refErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			ErrorKind: "inactive_or_unknown_reference",
			Details:   refErr.Error(),
			Reference: refErr.Kind,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrSlotOccupied):
		writeJSON(w, http.StatusConflict, errorBody{ErrorKind: "slot_occupied", Details: err.Error()})
	case errors.Is(err, common.ErrEmployeeDoubleBooked):
		writeJSON(w, http.StatusConflict, errorBody{ErrorKind: "employee_double_booked", Details: err.Error()})
	case errors.Is(err, common.ErrInactiveOrUnknownReference):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{ErrorKind: "inactive_or_unknown_reference", Details: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{ErrorKind: "not_found", Details: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{ErrorKind: "internal", Details: "internal error"})
	}
}
