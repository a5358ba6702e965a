package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

func (a *App) ListObjectesHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyaID := formInt(r, "campanya")
	objectes, err := a.DB.ListObjectes(u.ID, campanyaID)
	if err != nil {
		Errorf("Error llistant objectes: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "objectes.html", map[string]interface{}{
		"Usuari":   u,
		"Objectes": objectes,
	})
}

func (a *App) VeureObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	o, err := a.DB.GetObjecte(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "objecte.html", map[string]interface{}{
		"Usuari":  u,
		"Objecte": o,
	})
}

func (a *App) MostrarNouObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	RenderPrivateTemplate(w, "objecte-form.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
	})
}

func objecteDesDelFormulari(r *http.Request, usuariID int) *db.Objecte {
	return &db.Objecte{
		UsuariID:    usuariID,
		CampanyaID:  formInt(r, "campanya_id"),
		Nom:         strings.TrimSpace(r.FormValue("nom")),
		Tipus:       r.FormValue("tipus"),
		Raresa:      r.FormValue("raresa"),
		Valor:       r.FormValue("valor"),
		Pes:         r.FormValue("pes"),
		Sintonia:    formBool(r, "sintonia"),
		SintoniaPer: r.FormValue("sintonia_per"),
		Carregues:   formInt(r, "carregues"),
		Maleit:      formBool(r, "maleit"),
		Dany:        r.FormValue("dany"),
		TipusDany:   r.FormValue("tipus_dany"),
		BonusCA:     formInt(r, "bonus_ca"),
		Descripcio:  r.FormValue("descripcio"),
		Propietats:  r.FormValue("propietats"),
		Historia:    r.FormValue("historia"),
		Llegenda:    r.FormValue("llegenda"),
		Notes:       r.FormValue("notes"),
		ImatgeURL:   r.FormValue("image_url"),
	}
}

func (a *App) CrearObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	o := objecteDesDelFormulari(r, u.ID)
	if o.Nom == "" {
		RenderPrivateTemplate(w, "objecte-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "L'objecte necessita un nom",
		})
		return
	}

	if _, err := a.DB.CreateObjecte(o); err != nil {
		Errorf("Error creant objecte: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	Infof("Objecte creat: %s (id %d)", o.Nom, o.ID)
	http.Redirect(w, r, fmt.Sprintf("/objectes/veure?id=%d", o.ID), http.StatusSeeOther)
}

func (a *App) MostrarEditarObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	o, err := a.DB.GetObjecte(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	RenderPrivateTemplate(w, "objecte-form.html", map[string]interface{}{
		"Usuari":    u,
		"Objecte":   o,
		"Campanyes": campanyes,
	})
}

func (a *App) ActualitzarObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	existent, err := a.DB.GetObjecte(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	o := objecteDesDelFormulari(r, u.ID)
	o.ID = existent.ID
	if o.Nom == "" {
		o.Nom = existent.Nom
	}

	if err := a.DB.UpdateObjecte(o); err != nil {
		Errorf("Error actualitzant objecte %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/objectes/veure?id=%d", id), http.StatusSeeOther)
}

func (a *App) EliminarObjecte(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeleteObjecte(id, u.ID); err != nil {
		Errorf("Error eliminant objecte %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/objectes", http.StatusSeeOther)
}
