package httpapi

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"movieCatalog/internal/auth"
	"movieCatalog/models"
	"movieCatalog/repository"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges username and password for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	u, err := h.Users.GetByUsername(r.Context(), in.Username)
	if err != nil {
		storageError(w, r, "get user by username", err)
		return
	}
	// Unknown user and wrong password are indistinguishable to the caller.
	if u == nil || !auth.CheckPassword(in.Password, u.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, _, err := h.Signer.Issue(u)
	if err != nil {
		storageError(w, r, "issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// Register creates an account with role user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleUser)
}

// RegisterAdmin creates an account with role admin.
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleAdmin)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request, role models.Role) {
	var in registration
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.Username == "":
		writeError(w, http.StatusBadRequest, "username is required")
		return
	case in.Email == "":
		writeError(w, http.StatusBadRequest, "email is required")
		return
	case in.Password == "":
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}

	ctx := r.Context()
	existing, err := h.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		storageError(w, r, "get user by username", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "username already taken")
		return
	}
	existing, err = h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		storageError(w, r, "get user by email", err)
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	u, err := h.Users.Create(ctx, models.NewUser{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race against a concurrent registration.
		writeError(w, http.StatusConflict, "username or email already registered")
		return
	}
	if err != nil {
		storageError(w, r, "create user", err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Logout revokes the presented token until its natural expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.MsgNoUserContext)
		return
	}
	if c.ExpiresAt == nil {
		writeError(w, http.StatusForbidden, auth.MsgInvalidToken)
		return
	}
	if err := h.Revoked.Revoke(r.Context(), c.ID, c.ExpiresAt.Time); err != nil {
		storageError(w, r, "revoke token", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me echoes the verified claims of the caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.MsgNoUserContext)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
