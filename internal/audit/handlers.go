package audit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fleetbook/internal/api"
	"fleetbook/internal/user"
)

type Handlers struct {
	Repo *Repository
}

// ListRecent serves the admin activity feed.
func (h Handlers) ListRecent(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if !u.HasRole(user.RoleAdmin) {
		api.WriteError(w, http.StatusForbidden, api.CodeUnauthorized, "admin role required")
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	logs, err := h.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	if logs == nil {
		logs = []Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"logs": logs})
}
