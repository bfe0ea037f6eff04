package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harborview/signals/core"
	"github.com/harborview/signals/jobs"
	"github.com/harborview/signals/pipeline"
	"github.com/harborview/signals/storage"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeRepoError maps domain errors onto HTTP statuses.
func writeRepoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, jobs.ErrJobNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidProfile),
		errors.Is(err, storage.ErrInvalidQuery),
		errors.Is(err, pipeline.ErrNoIdentifier):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
