package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fleetbook/internal/api"
	"fleetbook/internal/user"
	"fleetbook/pkg/config"
	"fleetbook/pkg/session"
)

type Handlers struct {
	Cfg   config.Config
	Users *user.Repository
	Log   *zap.Logger
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, api.CodeValidationFailed, "email and password are required")
		return
	}

	u, err := h.Users.FindByEmail(r.Context(), req.Email)
	if err != nil || !CheckPassword(req.Password, u.PasswordHash) {
		// Same response for unknown user and bad password.
		api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "invalid credentials")
		return
	}

	now := time.Now()
	token, err := session.IssueToken(u.ID, h.Cfg.JWTSecret, h.Cfg.JWTTTL, now)
	if err != nil {
		h.Log.Error("issue session token", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(h.Cfg.JWTTTL),
		User:      u,
	})
}
