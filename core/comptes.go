package core

import (
	"net/http"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

// Inici és el tauler privat: campanyes recents i comptadors del mes.
func (a *App) Inici(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, err := a.DB.ListCampanyes(u.ID)
	if err != nil {
		Errorf("Error llistant campanyes al tauler: %v", err)
	}
	us, err := a.DB.GetUsMensual(u.ID, mesActual())
	if err != nil {
		Errorf("Error llegint ús mensual al tauler: %v", err)
		us = &db.UsMensual{UsuariID: u.ID, Mes: mesActual()}
	}

	RenderPrivateTemplate(w, "inici.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
		"Us":        us,
	})
}

// Configuracio mostra el compte, el pla i l'ús del mes amb els límits.
func (a *App) Configuracio(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	us, err := a.DB.GetUsMensual(u.ID, mesActual())
	if err != nil {
		Errorf("Error llegint ús mensual: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	RenderPrivateTemplate(w, "configuracio.html", map[string]interface{}{
		"Usuari":        u,
		"Us":            us,
		"LimitPartides": LimitPartidesFree,
		"LimitResums":   LimitResumsFree,
		"EsFree":        u.TierSubscripcio == "free",
	})
}
