package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"hospedajes/auth"
	"hospedajes/config"
	"hospedajes/db"
	"hospedajes/i18n"
	"hospedajes/models"

	"github.com/dchest/captcha"
	"github.com/gorilla/csrf"
)

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/{$}", IndexHandler)
	mux.HandleFunc("/login", LoginHandler)
	mux.HandleFunc("/logout", LogoutHandler)
	mux.HandleFunc("/panel", PanelHandler)
	mux.HandleFunc("/nuevo", NuevoHandler)
	mux.HandleFunc("/editar/{id}", EditarHandler)
	mux.HandleFunc("/eliminar/{id}", EliminarHandler)
}

// IndexHandler is the public landing page listing every hospedaje.
func IndexHandler(w http.ResponseWriter, r *http.Request) {
	hospedajes, err := db.ListHospedajes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "index.html", map[string]any{"Hospedajes": hospedajes})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)

	if r.Method == http.MethodPost {
		ip := getClientIP(r)
		if !loginLimiter.Allow(ip) {
			renderTemplate(w, r, "login.html", loginData(map[string]any{
				"Error": i18n.T(lang, "TooManyAttempts"),
			}))
			return
		}

		if config.AppConfig.EnableCaptcha &&
			!captcha.VerifyString(r.FormValue("captcha_id"), r.FormValue("captcha_solution")) {
			renderTemplate(w, r, "login.html", loginData(map[string]any{
				"Error": i18n.T(lang, "InvalidCaptcha"),
			}))
			return
		}

		usuario := r.FormValue("usuario")
		clave := r.FormValue("clave")

		u, err := db.GetUsuario(usuario)
		if err != nil || !db.CheckPasswordHash(clave, u.Clave) {
			// Same generic message for unknown user and wrong password
			loginLimiter.RecordFailure(ip)
			renderTemplate(w, r, "login.html", loginData(map[string]any{
				"Error": i18n.T(lang, "InvalidCredentials"),
			}))
			return
		}

		loginLimiter.Reset(ip)
		auth.SetSession(w, r, u.Usuario)
		http.Redirect(w, r, "/panel", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "login.html", loginData(map[string]any{}))
}

// loginData adds a fresh captcha id to the login view when captchas are on.
func loginData(m map[string]any) map[string]any {
	if config.AppConfig.EnableCaptcha {
		m["CaptchaID"] = captcha.New()
	}
	return m
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PanelHandler is the admin view of the same list the landing page shows.
func PanelHandler(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	hospedajes, err := db.ListHospedajes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	renderTemplate(w, r, "panel.html", map[string]any{
		"Hospedajes": hospedajes,
		"Usuario":    auth.Username(r),
	})
}

func NuevoHandler(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		filename, err := saveUpload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		h := models.Hospedaje{
			NombreHotel: r.FormValue("nombre"),
			Ubicacion:   r.FormValue("ubicacion"),
			Contacto:    r.FormValue("contacto"),
			Precio:      r.FormValue("precio"),
			Tipo:        r.FormValue("tipo"),
			Imagen:      filename,
			Mapa:        r.FormValue("mapa"),
		}
		if _, err := db.InsertHospedaje(h); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/panel", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "nuevo.html", nil)
}

func EditarHandler(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	lang := i18n.DetectLanguage(r)
	h, err := db.GetHospedaje(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, i18n.T(lang, "ListingNotFound"), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodPost {
		filename, err := saveUpload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if filename != "" {
			// A replaced image leaves the old file on disk; only delete
			// removes files.
			h.Imagen = filename
		}

		h.NombreHotel = r.FormValue("nombre")
		h.Ubicacion = r.FormValue("ubicacion")
		h.Contacto = r.FormValue("contacto")
		h.Precio = r.FormValue("precio")
		h.Tipo = r.FormValue("tipo")
		h.Mapa = r.FormValue("mapa")

		if err := db.UpdateHospedaje(h); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/panel", http.StatusSeeOther)
		return
	}

	renderTemplate(w, r, "editar.html", map[string]any{"Hospedaje": h})
}

func EliminarHandler(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h, err := db.GetHospedaje(id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err == nil && h.Imagen != "" {
		ruta := filepath.Join(config.AppConfig.UploadDir, h.Imagen)
		if _, statErr := os.Stat(ruta); statErr == nil {
			if rmErr := os.Remove(ruta); rmErr != nil {
				http.Error(w, rmErr.Error(), http.StatusInternalServerError)
				return
			}
		}
	}

	// Deleting an unknown id is a no-op
	if err := db.DeleteHospedaje(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/panel", http.StatusSeeOther)
}

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	lang := i18n.DetectLanguage(r)

	funcMap := template.FuncMap{
		"T": func(key string) string {
			return i18n.T(lang, key)
		},
	}

	dir := config.AppConfig.TemplatesDir
	tmpl, err := template.New(name).Funcs(funcMap).ParseFiles(
		filepath.Join(dir, "layout.html"), filepath.Join(dir, name))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	csrfField := csrf.TemplateField(r)

	if m, ok := data.(map[string]any); ok {
		if _, exists := m["AppName"]; !exists {
			m["AppName"] = config.AppConfig.AppName
		}
		m["Lang"] = lang
		m["csrfField"] = csrfField
	} else if data == nil {
		data = map[string]any{
			"AppName":   config.AppConfig.AppName,
			"Lang":      lang,
			"csrfField": csrfField,
		}
	}

	tmpl.ExecuteTemplate(w, "layout", data)
}
