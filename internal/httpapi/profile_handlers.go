package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"grantmatch-engine/internal/domain"
	"grantmatch-engine/internal/store"
)

// profilePayload accepts both "race" (legacy clients) and
// "race_or_ethnicity" for the same field.
type profilePayload struct {
	UserType        string   `json:"user_type"`
	Location        string   `json:"location"`
	Major           string   `json:"major"`
	Race            string   `json:"race"`
	RaceOrEthnicity string   `json:"race_or_ethnicity"`
	Interests       []string `json:"interests"`
}

func (p profilePayload) toDomain() domain.UserProfile {
	race := p.RaceOrEthnicity
	if race == "" {
		race = p.Race
	}
	return domain.UserProfile{
		UserType:        p.UserType,
		Location:        p.Location,
		Major:           p.Major,
		RaceOrEthnicity: race,
		Interests:       p.Interests,
	}
}

type ProfileHandler struct {
	DB          *sql.DB
	ResolveUser func(ctx context.Context, token string) (string, error)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func (h ProfileHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	tok := bearerToken(r)
	if tok == "" {
		WriteError(w, r, http.StatusUnauthorized, "missing_token", "Authorization: Bearer token required")
		return "", false
	}
	id, err := h.ResolveUser(r.Context(), tok)
	if err != nil {
		WriteError(w, r, http.StatusUnauthorized, "bad_token", err.Error())
		return "", false
	}
	return id, true
}

func (h ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	p, err := store.GetProfile(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if p == nil {
		WriteError(w, r, http.StatusNotFound, "no_profile", "no profile saved for this user")
		return
	}
	writeJSON(w, map[string]any{"user_id": id, "profile": p})
}

func (h ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var payload profilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON: "+err.Error())
		return
	}

	p := payload.toDomain()
	if err := store.UpsertProfile(r.Context(), h.DB, id, p); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "user_id": id, "profile": p})
}
