package core

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

// Extensions d'asset que es poden servir des de /static/.
var allowedExtensions = map[string]bool{
	".css":  true,
	".js":   true,
	".png":  true,
	".jpg":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
}

func ServeStatic(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/static/")
	realPath := filepath.Join("static", path)

	// Bloqueja Path Traversal
	if strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		Errorf("Path traversal detectat: %s", path)
		http.Error(w, "Accés denegat", http.StatusForbidden)
		return
	}

	// No permet llistar carpetes
	info, err := os.Stat(realPath)
	if err == nil && info.IsDir() {
		http.Error(w, "Accés denegat", http.StatusForbidden)
		return
	}
	if os.IsNotExist(err) {
		http.Error(w, "Fitxer no trobat", http.StatusNotFound)
		return
	}

	if !allowedExtensions[strings.ToLower(filepath.Ext(path))] {
		Errorf("Fitxer no autoritzat: %s", path)
		http.Error(w, "Aquest recurs no es pot servir", http.StatusForbidden)
		return
	}

	http.ServeFile(w, r, realPath)
}

func SecureHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self'; connect-src 'self';")

		// HSTS - força HTTPS fora de desenvolupament
		if os.Getenv("ENVIRONMENT") != "development" {
			w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

// RequireSessio protegeix una ruta: si no hi ha sessió vàlida redirigeix al
// login conservant la destinació original.
func (a *App) RequireSessio(next func(w http.ResponseWriter, r *http.Request, u *db.Usuari)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usuari, ok := a.VerificarSessio(r)
		if !ok {
			Debugf("[auth] sessió absent o caducada, redirigint a login des de %s", r.URL.Path)
			http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r, usuari)
	}
}

// getIP retorna l'adreça del client sense el port.
func getIP(r *http.Request) string {
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	return host
}
