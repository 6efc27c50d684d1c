package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"grantmatch-engine/internal/match"
	"grantmatch-engine/internal/store"
)

type MatchHandler struct {
	DB *sql.DB
}

func (h MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)

	var payload profilePayload
	if err := dec.Decode(&payload); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	grants, err := store.ListGrants(r.Context(), h.DB, store.ListGrantsOpts{})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	scored := match.Match(payload.toDomain(), grants)
	if scored == nil {
		scored = []match.ScoredGrant{}
	}
	writeJSON(w, scored)
}
