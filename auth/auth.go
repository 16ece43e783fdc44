package auth

import (
	"crypto/sha256"
	"net/http"

	"hospedajes/config"

	"github.com/gorilla/sessions"
)

var Store *sessions.CookieStore

func InitStore() {
	// Derive two 32-byte keys from the session key to ensure secure encryption
	// Auth key for signing (HMAC)
	authKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "auth"))
	// Encryption key for content encryption (AES)
	encKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "encryption"))

	Store = sessions.NewCookieStore(authKey[:], encKey[:])

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

const SessionName = "hospedajes-session"

// IsAdmin reports whether the request carries an authenticated admin session.
// Every protected handler checks this before doing anything else.
func IsAdmin(r *http.Request) bool {
	session, _ := Store.Get(r, SessionName)
	if admin, ok := session.Values["admin"].(bool); ok {
		return admin
	}
	return false
}

func Username(r *http.Request) string {
	session, _ := Store.Get(r, SessionName)
	if usuario, ok := session.Values["usuario"].(string); ok {
		return usuario
	}
	return ""
}

func SetSession(w http.ResponseWriter, r *http.Request, usuario string) {
	session, _ := Store.Get(r, SessionName)
	session.Values["admin"] = true
	session.Values["usuario"] = usuario
	session.Save(r, w)
}

func ClearSession(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, SessionName)
	// Drop the values too: an expired cookie a client keeps sending must not
	// still decode to an authenticated session.
	session.Values = make(map[any]any)
	session.Options.MaxAge = -1
	session.Save(r, w)
}
