package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

func (a *App) ListNotesHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	notes, err := a.DB.ListNotes(u.ID, false)
	if err != nil {
		Errorf("Error llistant notes: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "notes.html", map[string]interface{}{
		"Usuari": u,
		"Notes":  notes,
	})
}

// ListLlibreMon mostra les entrades d'enciclopèdia del món.
func (a *App) ListLlibreMon(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	notes, err := a.DB.ListNotes(u.ID, true)
	if err != nil {
		Errorf("Error llistant el llibre del món: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "llibre-mon.html", map[string]interface{}{
		"Usuari": u,
		"Notes":  notes,
	})
}

func (a *App) VeureNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	n, err := a.DB.GetNota(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "nota.html", map[string]interface{}{
		"Usuari": u,
		"Nota":   n,
	})
}

func (a *App) MostrarNovaNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	RenderPrivateTemplate(w, "nota-form.html", map[string]interface{}{
		"Usuari":      u,
		"Campanyes":   campanyes,
		"EsLlibreMon": r.URL.Query().Get("llibre") == "1",
	})
}

func (a *App) CrearNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	n := &db.Nota{
		UsuariID:    u.ID,
		CampanyaID:  formInt(r, "campanya_id"),
		Titol:       strings.TrimSpace(r.FormValue("titol")),
		Contingut:   r.FormValue("contingut"),
		Etiquetes:   formLlista(r, "etiquetes"),
		EsLlibreMon: formBool(r, "es_llibre_mon"),
	}

	if n.Titol == "" {
		RenderPrivateTemplate(w, "nota-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "La nota necessita un títol",
		})
		return
	}

	if _, err := a.DB.CreateNota(n); err != nil {
		Errorf("Error creant nota: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/notes/veure?id=%d", n.ID), http.StatusSeeOther)
}

func (a *App) MostrarEditarNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	n, err := a.DB.GetNota(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	RenderPrivateTemplate(w, "nota-form.html", map[string]interface{}{
		"Usuari":    u,
		"Nota":      n,
		"Campanyes": campanyes,
	})
}

func (a *App) ActualitzarNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	n, err := a.DB.GetNota(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if titol := strings.TrimSpace(r.FormValue("titol")); titol != "" {
		n.Titol = titol
	}
	n.CampanyaID = formInt(r, "campanya_id")
	n.Contingut = r.FormValue("contingut")
	n.Etiquetes = formLlista(r, "etiquetes")
	n.EsLlibreMon = formBool(r, "es_llibre_mon")

	if err := a.DB.UpdateNota(n); err != nil {
		Errorf("Error actualitzant nota %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/notes/veure?id=%d", id), http.StatusSeeOther)
}

func (a *App) EliminarNota(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeleteNota(id, u.ID); err != nil {
		Errorf("Error eliminant nota %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}
