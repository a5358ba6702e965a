package core

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/magatzem"
)

const maxPortadaBytes = 10 << 20

func (a *App) ListCampanyesHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, err := a.DB.ListCampanyes(u.ID)
	if err != nil {
		Errorf("Error llistant campanyes: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "campanyes.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
	})
}

func (a *App) MostrarNovaCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	RenderPrivateTemplate(w, "campanya-form.html", map[string]interface{}{
		"Usuari": u,
	})
}

func (a *App) CrearCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	nom := strings.TrimSpace(r.FormValue("nom"))
	if nom == "" {
		RenderPrivateTemplate(w, "campanya-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "La campanya necessita un nom",
		})
		return
	}

	c := &db.Campanya{
		UsuariID:   u.ID,
		Nom:        nom,
		Descripcio: r.FormValue("descripcio"),
		NomDM:      r.FormValue("dm_name"),
		Jugadors:   formLlista(r, "jugadors"),
	}

	if _, err := a.DB.CreateCampanya(c); err != nil {
		Errorf("Error creant campanya: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	Infof("Campanya creada: %s (id %d) per usuari %d", c.Nom, c.ID, u.ID)
	http.Redirect(w, r, "/campanyes", http.StatusSeeOther)
}

func (a *App) VeureCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	c, err := a.DB.GetCampanya(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant campanya %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	partides, err := a.DB.ListPartides(u.ID, id)
	if err != nil {
		Errorf("Error llistant partides de la campanya %d: %v", id, err)
	}

	RenderPrivateTemplate(w, "campanya.html", map[string]interface{}{
		"Usuari":   u,
		"Campanya": c,
		"Partides": partides,
	})
}

func (a *App) MostrarEditarCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	c, err := a.DB.GetCampanya(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "campanya-form.html", map[string]interface{}{
		"Usuari":   u,
		"Campanya": c,
	})
}

func (a *App) ActualitzarCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	c, err := a.DB.GetCampanya(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if nom := strings.TrimSpace(r.FormValue("nom")); nom != "" {
		c.Nom = nom
	}
	c.Descripcio = r.FormValue("descripcio")
	c.NomDM = r.FormValue("dm_name")
	c.Jugadors = formLlista(r, "jugadors")

	if err := a.DB.UpdateCampanya(c); err != nil {
		Errorf("Error actualitzant campanya %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/campanyes/veure?id="+r.FormValue("id"), http.StatusSeeOther)
}

// PujarPortadaCampanya desa la imatge de portada al magatzem d'objectes,
// juntament amb una miniatura per a la llista de campanyes. Si la miniatura
// falla, la llista fa servir la imatge original.
func (a *App) PujarPortadaCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	c, err := a.DB.GetCampanya(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxPortadaBytes); err != nil {
		http.Error(w, "Formulari invàlid", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("portada")
	if err != nil {
		http.Error(w, "Falta la imatge de portada", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxPortadaBytes {
		http.Error(w, "La imatge és massa gran", http.StatusRequestEntityTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		Errorf("Error llegint la portada pujada: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext := "jpg"
	if idx := strings.LastIndex(header.Filename, "."); idx >= 0 {
		ext = header.Filename[idx+1:]
	}

	path := fmt.Sprintf("covers/%d/%s", c.ID, magatzem.NomUnic(ext))
	urlPortada, err := a.Magatzem.Puja(r.Context(), a.Cfg.BucketImatges, path, contentType, data)
	if err != nil {
		Errorf("Error pujant la portada de la campanya %d: %v", c.ID, err)
		http.Error(w, "No s'ha pogut desar la imatge", http.StatusBadGateway)
		return
	}

	urlMiniatura := urlPortada
	if mini, err := magatzem.Miniatura(data, magatzem.MidaMiniatura); err != nil {
		Errorf("Error reduint la portada de la campanya %d: %v", c.ID, err)
	} else {
		pathMini := fmt.Sprintf("covers/%d/thumbs/%s", c.ID, magatzem.NomUnic("jpg"))
		if url, err := a.Magatzem.Puja(r.Context(), a.Cfg.BucketImatges, pathMini, "image/jpeg", mini); err != nil {
			Errorf("Error pujant la miniatura de la campanya %d: %v", c.ID, err)
		} else {
			urlMiniatura = url
		}
	}

	if err := a.DB.UpdateCampanyaPortada(c.ID, u.ID, urlPortada, urlMiniatura); err != nil {
		Errorf("Error desant la referència de portada: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	Infof("Portada de la campanya %d desada a %s", c.ID, urlPortada)
	http.Redirect(w, r, fmt.Sprintf("/campanyes/veure?id=%d", c.ID), http.StatusSeeOther)
}

func (a *App) EliminarCampanya(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeleteCampanya(id, u.ID); err != nil {
		Errorf("Error eliminant campanya %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	Infof("Campanya %d eliminada per usuari %d", id, u.ID)
	http.Redirect(w, r, "/campanyes", http.StatusSeeOther)
}
