package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

func (a *App) ListPNJsHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyaID := formInt(r, "campanya")
	pnjs, err := a.DB.ListPNJs(u.ID, campanyaID)
	if err != nil {
		Errorf("Error llistant PNJs: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "pnjs.html", map[string]interface{}{
		"Usuari": u,
		"PNJs":   pnjs,
	})
}

func (a *App) VeurePNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPNJ(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant PNJ %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "pnj.html", map[string]interface{}{
		"Usuari": u,
		"PNJ":    p,
	})
}

func (a *App) MostrarNouPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	llocs, _ := a.DB.ListLlocs(u.ID)
	punts, _ := a.DB.ListPunts(u.ID, 0)
	RenderPrivateTemplate(w, "pnj-form.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
		"Llocs":     llocs,
		"Punts":     punts,
	})
}

func pnjDesDelFormulari(r *http.Request, usuariID int) *db.PNJ {
	return &db.PNJ{
		UsuariID:         usuariID,
		CampanyaID:       formInt(r, "campanya_id"),
		LlocID:           formInt(r, "lloc_id"),
		PuntID:           formInt(r, "punt_id"),
		Nom:              strings.TrimSpace(r.FormValue("nom")),
		TipusPNJ:         r.FormValue("npc_type"),
		Raca:             r.FormValue("raca"),
		ClasseOcupacio:   r.FormValue("classe_ocupacio"),
		Nivell:           formInt(r, "nivell"),
		Aliniament:       r.FormValue("aliniament"),
		Faccio:           r.FormValue("faccio"),
		Estat:            r.FormValue("estat"),
		ClasseArmadura:   formInt(r, "classe_armadura"),
		PuntsVida:        r.FormValue("punts_vida"),
		Velocitat:        r.FormValue("velocitat"),
		ValorDesafiament: r.FormValue("valor_desafiament"),
		Caracteristiques: r.FormValue("caracteristiques"),
		Habilitats:       r.FormValue("habilitats"),
		Idiomes:          r.FormValue("idiomes"),
		Aptituds:         r.FormValue("aptituds"),
		Aparenca:         r.FormValue("aparenca"),
		Personalitat:     r.FormValue("personalitat"),
		VeuManies:        r.FormValue("veu_manies"),
		Descripcio:       r.FormValue("descripcio"),
		Rerefons:         r.FormValue("rerefons"),
		Objectius:        r.FormValue("objectius"),
		SecretsPNJ:       r.FormValue("secrets"),
		Ubicacio:         r.FormValue("ubicacio"),
		Relacio:          r.FormValue("relacio"),
		Notes:            r.FormValue("notes"),
		ImatgeURL:        r.FormValue("image_url"),
	}
}

// Un PNJ penja d'un lloc O d'un punt d'interès, mai de tots dos. La regla
// s'aplica aquí, no a la BD, perquè la cascada de creació de llocs assigna
// el punt i deixa el lloc implícit pel vincle.
func validaVinclePNJ(p *db.PNJ) error {
	if p.LlocID > 0 && p.PuntID > 0 {
		return fmt.Errorf("un PNJ no pot estar vinculat alhora a un lloc i a un punt d'interès")
	}
	return nil
}

func (a *App) CrearPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	p := pnjDesDelFormulari(r, u.ID)

	if p.Nom == "" {
		RenderPrivateTemplate(w, "pnj-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "El PNJ necessita un nom",
		})
		return
	}
	if err := validaVinclePNJ(p); err != nil {
		RenderPrivateTemplate(w, "pnj-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  err.Error(),
		})
		return
	}

	if _, err := a.DB.CreatePNJ(p); err != nil {
		Errorf("Error creant PNJ: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	// Vincle opcional amb rol quan es crea directament dins d'un punt
	if p.PuntID > 0 {
		if err := a.DB.VinculaPNJPunt(p.ID, p.PuntID, r.FormValue("rol")); err != nil {
			Errorf("Error vinculant PNJ %d al punt %d: %v", p.ID, p.PuntID, err)
		}
	}

	Infof("PNJ creat: %s (id %d)", p.Nom, p.ID)
	http.Redirect(w, r, fmt.Sprintf("/pnjs/veure?id=%d", p.ID), http.StatusSeeOther)
}

func (a *App) MostrarEditarPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPNJ(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	llocs, _ := a.DB.ListLlocs(u.ID)
	punts, _ := a.DB.ListPunts(u.ID, 0)
	RenderPrivateTemplate(w, "pnj-form.html", map[string]interface{}{
		"Usuari":    u,
		"PNJ":       p,
		"Campanyes": campanyes,
		"Llocs":     llocs,
		"Punts":     punts,
	})
}

func (a *App) ActualitzarPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	existent, err := a.DB.GetPNJ(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	p := pnjDesDelFormulari(r, u.ID)
	p.ID = existent.ID
	if p.Nom == "" {
		p.Nom = existent.Nom
	}
	if p.Estat == "" {
		p.Estat = existent.Estat
	}
	if err := validaVinclePNJ(p); err != nil {
		RenderPrivateTemplate(w, "pnj-form.html", map[string]interface{}{
			"Usuari": u,
			"PNJ":    existent,
			"Error":  err.Error(),
		})
		return
	}

	if err := a.DB.UpdatePNJ(p); err != nil {
		Errorf("Error actualitzant PNJ %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/pnjs/veure?id=%d", id), http.StatusSeeOther)
}

// EliminarPNJ esborra també els vincles amb punts d'interès (ho fa la capa
// de BD abans de tocar la fila del PNJ).
func (a *App) EliminarPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeletePNJ(id, u.ID); err != nil {
		Errorf("Error eliminant PNJ %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	Infof("PNJ %d eliminat per usuari %d", id, u.ID)
	http.Redirect(w, r, "/pnjs", http.StatusSeeOther)
}
