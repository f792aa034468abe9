package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/AnshRaj112/aed-backend/internal/middleware"
	"github.com/AnshRaj112/aed-backend/internal/services"
)

// Credentials is the body of the register and login requests.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// decodeCredentials reads a JSON body, or a form when the client sent one.
func decodeCredentials(r *http.Request) (Credentials, error) {
	var c Credentials
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return c, err
		}
		c.Name = r.FormValue("name")
		c.Email = r.FormValue("email")
		c.Password = r.FormValue("password")
		return c, nil
	default:
		err := json.NewDecoder(r.Body).Decode(&c)
		return c, err
	}
}

func (h *Handler) sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteNoneMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().Add(maxAge)
	} else {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// Register handles POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}

	summary, err := h.accounts.Register(r.Context(), creds.Name, creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, err, "Error registering user")
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// Login handles POST /api/auth/login. The token travels only in the cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		h.badRequest(w, "Invalid request body")
		return
	}

	summary, err := h.accounts.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		h.fail(w, r, err, "Error logging in")
		return
	}

	http.SetCookie(w, h.sessionCookie(summary.Token, services.TokenTTL))
	summary.Token = ""
	writeJSON(w, http.StatusOK, summary)
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", 0))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
