package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

func (a *App) ListPuntsHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	llocID := formInt(r, "lloc")
	punts, err := a.DB.ListPunts(u.ID, llocID)
	if err != nil {
		Errorf("Error llistant punts d'interès: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "punts.html", map[string]interface{}{
		"Usuari": u,
		"Punts":  punts,
	})
}

func (a *App) VeurePunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPunt(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant punt %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	pnjs, err := a.DB.ListPNJsDePunt(id)
	if err != nil {
		Errorf("Error llistant PNJs del punt %d: %v", id, err)
	}

	RenderPrivateTemplate(w, "punt.html", map[string]interface{}{
		"Usuari": u,
		"Punt":   p,
		"PNJs":   pnjs,
	})
}

func (a *App) MostrarNouPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	llocs, _ := a.DB.ListLlocs(u.ID)
	RenderPrivateTemplate(w, "punt-form.html", map[string]interface{}{
		"Usuari": u,
		"Llocs":  llocs,
	})
}

func (a *App) CrearPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()

	llocID := formInt(r, "lloc_id")
	lloc, err := a.DB.GetLloc(llocID, u.ID)
	if err != nil {
		RenderPrivateTemplate(w, "punt-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "Cal triar un lloc vàlid",
		})
		return
	}

	p := &db.PuntInteres{
		UsuariID:   u.ID,
		LlocID:     lloc.ID,
		CampanyaID: formInt(r, "campanya_id"),
		Nom:        strings.TrimSpace(r.FormValue("nom")),
		Tipus:      r.FormValue("tipus"),
		Descripcio: r.FormValue("descripcio"),
		Serveis:    r.FormValue("serveis"),
		Notes:      r.FormValue("notes"),
		ImatgeURL:  r.FormValue("image_url"),
	}

	if _, err := a.DB.CreatePunt(p); err != nil {
		Errorf("Error creant punt d'interès: %v", err)
		RenderPrivateTemplate(w, "punt-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "No s'ha pogut crear el punt d'interès",
		})
		return
	}

	Infof("Punt d'interès creat: %s (id %d) al lloc %d", p.Nom, p.ID, lloc.ID)
	http.Redirect(w, r, fmt.Sprintf("/punts/veure?id=%d", p.ID), http.StatusSeeOther)
}

func (a *App) MostrarEditarPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPunt(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "punt-form.html", map[string]interface{}{
		"Usuari": u,
		"Punt":   p,
	})
}

// ActualitzarPunt no permet canviar el lloc: el formulari d'edició no l'envia
// i la capa de BD tampoc el tocaria.
func (a *App) ActualitzarPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	p, err := a.DB.GetPunt(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if nom := strings.TrimSpace(r.FormValue("nom")); nom != "" {
		p.Nom = nom
	}
	p.CampanyaID = formInt(r, "campanya_id")
	p.Tipus = r.FormValue("tipus")
	p.Descripcio = r.FormValue("descripcio")
	p.Serveis = r.FormValue("serveis")
	p.Notes = r.FormValue("notes")
	p.ImatgeURL = r.FormValue("image_url")

	if err := a.DB.UpdatePunt(p); err != nil {
		Errorf("Error actualitzant punt %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/punts/veure?id=%d", id), http.StatusSeeOther)
}

func (a *App) EliminarPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeletePunt(id, u.ID); err != nil {
		Errorf("Error eliminant punt %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/punts", http.StatusSeeOther)
}
