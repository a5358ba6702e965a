package core

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"net/mail"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

const cookieSessio = "cc_session"

func generateHash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

func generateToken(length int) string {
	const letters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		result[i] = letters[num.Int64()]
	}
	return string(result)
}

func (a *App) MostrarRegistre(w http.ResponseWriter, r *http.Request) {
	RenderTemplate(w, "registre.html", nil)
}

func (a *App) RegistrarUsuari(w http.ResponseWriter, r *http.Request) {
	Infof("Iniciant registre d'usuari des de: %s", getIP(r))

	r.ParseForm()
	usuariForm := strings.TrimSpace(r.FormValue("usuari"))
	nom := strings.TrimSpace(r.FormValue("nom"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("contrassenya")
	confirmPassword := r.FormValue("confirmar_contrasenya")

	if usuariForm == "" || nom == "" || password == "" {
		RenderTemplate(w, "registre.html", map[string]interface{}{
			"Error": "Tots els camps són obligatoris",
		})
		return
	}

	if _, err := mail.ParseAddress(email); err != nil {
		Errorf("Error: correu electrònic invàlid: %s", email)
		RenderTemplate(w, "registre.html", map[string]interface{}{
			"Error": "El correu electrònic no és vàlid",
		})
		return
	}

	if password != confirmPassword {
		Errorf("Error: les contrasenyes no coincideixen")
		RenderTemplate(w, "registre.html", map[string]interface{}{
			"Error": "Les contrasenyes no coincideixen",
		})
		return
	}

	existeix, err := a.DB.ExisteixUsuariPerEmail(email)
	if err != nil {
		Errorf("Error comprovant email existent: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	if existeix {
		RenderTemplate(w, "registre.html", map[string]interface{}{
			"Error": "Ja existeix un compte amb aquest correu",
		})
		return
	}

	hash, err := generateHash(password)
	if err != nil {
		Errorf("Error generant hash: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	usuari := &db.Usuari{
		Usuari:          usuariForm,
		Nom:             nom,
		Email:           email,
		Contrasenya:     hash,
		TierSubscripcio: "free",
		Actiu:           false,
	}

	if _, err := a.DB.InsertUsuari(usuari); err != nil {
		Errorf("ERROR SQL: %v", err)
		RenderTemplate(w, "registre.html", map[string]interface{}{
			"Error": "No s'ha pogut crear el compte",
		})
		return
	}

	Infof("Usuari creat correctament: %s", email)

	token := generateToken(32)
	if err := a.DB.DesaTokenActivacio(email, token); err != nil {
		Errorf("Error guardant token: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	// De moment no hi ha correu sortint; el token surt al log.
	Debugf("URL d'activació per a %s: /activar?token=%s", email, token)

	RenderTemplate(w, "registre-correcte.html", map[string]interface{}{
		"Email": email,
	})
}

func (a *App) ActivarUsuariHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		RenderTemplate(w, "activat.html", map[string]interface{}{"Activat": false})
		return
	}

	Infof("Intentant activar usuari amb token: %s", token)
	if err := a.DB.ActivarUsuari(token); err != nil {
		Errorf("Error activant usuari: %v", err)
		RenderTemplate(w, "activat.html", map[string]interface{}{"Activat": false})
		return
	}
	RenderTemplate(w, "activat.html", map[string]interface{}{"Activat": true})
}

func (a *App) MostrarLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.VerificarSessio(r); ok {
		http.Redirect(w, r, "/inici", http.StatusSeeOther)
		return
	}
	RenderTemplate(w, "login.html", map[string]interface{}{
		"Redirect": r.URL.Query().Get("redirect"),
	})
}

// IniciarSessio autentica l'usuari i crea la sessió a BD i cookie.
func (a *App) IniciarSessio(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Mètode no permès", http.StatusMethodNotAllowed)
		return
	}

	Infof("Intent d'inici de sessió des de: %s", getIP(r))

	r.ParseForm()
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("contrassenya")
	mantenirSessio := r.FormValue("mantenir_sessio")
	redirect := r.FormValue("redirect")

	if email == "" || password == "" {
		RenderTemplate(w, "login.html", map[string]interface{}{
			"Error": "Cal indicar correu i contrasenya",
		})
		return
	}

	usuari, err := a.DB.AutenticaUsuari(email)
	if err != nil {
		Debugf("Error d'autenticació per a %s: %v", email, err)
		RenderTemplate(w, "login.html", map[string]interface{}{
			"Error": "Credencials incorrectes",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword(usuari.Contrasenya, []byte(password)); err != nil {
		Debugf("Contrasenya incorrecta per a %s", email)
		RenderTemplate(w, "login.html", map[string]interface{}{
			"Error": "Credencials incorrectes",
		})
		return
	}

	Infof("Autenticació exitosa per a usuari: %s (ID: %d)", usuari.Usuari, usuari.ID)

	sessionID := generateToken(32)
	sessionExpiry := time.Now().Add(24 * time.Hour)
	if mantenirSessio == "on" {
		sessionExpiry = time.Now().Add(7 * 24 * time.Hour)
	}

	if err := a.DB.DesaSessioWeb(sessionID, usuari.ID, sessionExpiry.Format("2006-01-02 15:04:05")); err != nil {
		Errorf("Error guardant sessió: %v", err)
		http.Error(w, "Error intern del servidor", http.StatusInternalServerError)
		return
	}

	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	secure := true
	sameSite := http.SameSiteStrictMode
	if env == "development" {
		secure = r.TLS != nil
		sameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieSessio,
		Value:    sessionID,
		Expires:  sessionExpiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})

	desti := "/inici"
	if redirect != "" && strings.HasPrefix(redirect, "/") && !strings.HasPrefix(redirect, "//") {
		desti = redirect
	}
	http.Redirect(w, r, desti, http.StatusSeeOther)
}

// VerificarSessio comprova la cookie contra la taula de sessions.
func (a *App) VerificarSessio(r *http.Request) (*db.Usuari, bool) {
	cookie, err := r.Cookie(cookieSessio)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	usuari, err := a.DB.GetUsuariSessioWeb(cookie.Value)
	if err != nil {
		Debugf("[auth] sessió no vàlida o expirada: %v", err)
		return nil, false
	}
	return usuari, true
}

// TancarSessio elimina la sessió actual (cookie + BD) i redirigeix a l'inici.
func (a *App) TancarSessio(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(cookieSessio)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := a.DB.EliminaSessioWeb(cookie.Value); err != nil {
		Errorf("[logout] error eliminant sessió: %v", err)
	}

	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	secure := true
	sameSite := http.SameSiteStrictMode
	if env == "development" {
		secure = r.TLS != nil
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSessio,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: sameSite,
		Secure:   secure,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
