package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/store"
)

type GrantsHandler struct {
	DB *sql.DB
}

func (h GrantsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, r, http.StatusBadRequest, "bad_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	grants, err := store.ListGrants(r.Context(), h.DB, store.ListGrantsOpts{
		Sort: q.Get("sort"), Limit: limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if grants == nil {
		grants = []domain.GrantRecord{}
	}
	writeJSON(w, grants)
}
