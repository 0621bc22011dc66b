package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const adminRole = "admin"

// AuthHandler signs in the single configured administrator.
type AuthHandler struct {
	adminEmail    string
	passwordHash  string
	jwtSecret     string
	tokenDuration time.Duration
	now           func() time.Time
}

// NewAuthHandler creates an AuthHandler. With an empty email or hash every
// sign-in is rejected.
func NewAuthHandler(adminEmail, passwordHash, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		adminEmail:    adminEmail,
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if h.adminEmail == "" || h.passwordHash == "" {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Email)), []byte(strings.ToLower(h.adminEmail))) == 1
	if bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)) != nil || !emailOK {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	exp := h.now().Add(h.tokenDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": h.adminEmail,
		"role":  adminRole,
		"exp":   exp.Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, ExpiresAt: exp.UTC()}, http.StatusOK)
}
