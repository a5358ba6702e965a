package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/ia"
)

func (a *App) ListLlocsHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	llocs, err := a.DB.ListLlocs(u.ID)
	if err != nil {
		Errorf("Error llistant llocs: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "llocs.html", map[string]interface{}{
		"Usuari": u,
		"Llocs":  llocs,
	})
}

func (a *App) VeureLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	l, err := a.DB.GetLloc(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant lloc %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	punts, err := a.DB.ListPunts(u.ID, id)
	if err != nil {
		Errorf("Error llistant punts del lloc %d: %v", id, err)
	}

	RenderPrivateTemplate(w, "lloc.html", map[string]interface{}{
		"Usuari": u,
		"Lloc":   l,
		"Punts":  punts,
	})
}

func (a *App) MostrarNouLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	pnjs, _ := a.DB.ListPNJs(u.ID, 0)
	punts, _ := a.DB.ListPunts(u.ID, 0)
	RenderPrivateTemplate(w, "lloc-form.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
		"PNJs":      pnjs,
		"Punts":     punts,
	})
}

func llocDesDelFormulari(r *http.Request, usuariID int) *db.Lloc {
	return &db.Lloc{
		UsuariID:    usuariID,
		CampanyaID:  formInt(r, "campanya_id"),
		Nom:         strings.TrimSpace(r.FormValue("nom")),
		Tipus:       r.FormValue("tipus"),
		Regio:       r.FormValue("regio"),
		Clima:       r.FormValue("clima"),
		Poblacio:    r.FormValue("poblacio"),
		Mida:        r.FormValue("mida"),
		Govern:      r.FormValue("govern"),
		Economia:    r.FormValue("economia"),
		Defenses:    r.FormValue("defenses"),
		Descripcio:  r.FormValue("descripcio"),
		Atmosfera:   r.FormValue("atmosfera"),
		Historia:    r.FormValue("historia"),
		Habitants:   r.FormValue("habitants"),
		PuntsText:   r.FormValue("points_of_interest"),
		Perills:     r.FormValue("perills"),
		Ganxos:      r.FormValue("ganxos"),
		SecretsLloc: r.FormValue("secrets"),
		Notes:       r.FormValue("notes"),
		ImatgeURL:   r.FormValue("image_url"),
		MapaURL:     r.FormValue("map_url"),
	}
}

// CrearLloc desa el lloc i, si el formulari porta entitats generades o
// seleccions manuals, fa la cascada: punts d'interès, PNJs i vincles.
// La cascada és de millor esforç i no transaccional: cada error es registra
// i es continua amb la resta, el lloc ja desat no es desfà mai.
func (a *App) CrearLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()

	l := llocDesDelFormulari(r, u.ID)
	if l.Nom == "" {
		RenderPrivateTemplate(w, "lloc-form.html", map[string]interface{}{
			"Usuari": u,
			"Error":  "El lloc necessita un nom",
		})
		return
	}

	if _, err := a.DB.CreateLloc(l); err != nil {
		Errorf("Error creant lloc: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	Infof("Lloc creat: %s (id %d)", l.Nom, l.ID)

	a.cascadaEntitatsGenerades(r, u, l)
	a.vinculaSeleccionsManuals(r, u, l)

	http.Redirect(w, r, fmt.Sprintf("/llocs/veure?id=%d", l.ID), http.StatusSeeOther)
}

// cascadaEntitatsGenerades persisteix els punts i PNJs transitoris que van
// arribar de l'expansió per IA dins del camp ocult del formulari.
func (a *App) cascadaEntitatsGenerades(r *http.Request, u *db.Usuari, l *db.Lloc) {
	raw := r.FormValue("entitats_generades")
	if raw == "" {
		return
	}

	var entitats entitatsGeneradesWire
	if err := json.Unmarshal([]byte(raw), &entitats); err != nil {
		Errorf("Entitats generades il·legibles per al lloc %d: %v", l.ID, err)
		return
	}

	creatsPunts, creatsPNJs := 0, 0
	for _, pg := range entitats.Punts {
		punt := &db.PuntInteres{
			UsuariID:   u.ID,
			LlocID:     l.ID,
			CampanyaID: l.CampanyaID,
			Nom:        pg.Nom,
			Tipus:      pg.Tipus,
			Descripcio: pg.Descripcio,
			Serveis:    pg.Serveis,
		}
		if _, err := a.DB.CreatePunt(punt); err != nil {
			Errorf("Error creant punt generat '%s' al lloc %d: %v", pg.Nom, l.ID, err)
			continue
		}
		creatsPunts++

		for _, ng := range pg.PNJs {
			tipus := ng.TipusPNJ
			if tipus == "" {
				tipus = ia.RolATipusPNJ(ng.Rol)
			}
			pnj := &db.PNJ{
				UsuariID:       u.ID,
				CampanyaID:     l.CampanyaID,
				PuntID:         punt.ID,
				Nom:            ng.Nom,
				TipusPNJ:       tipus,
				Raca:           ng.Raca,
				ClasseOcupacio: ng.ClasseOcupacio,
				Descripcio:     ng.Descripcio,
				Personalitat:   ng.Personalitat,
				Aparenca:       ng.Aparenca,
				Ubicacio:       fmt.Sprintf("%s in %s", pg.Nom, l.Nom),
			}
			if _, err := a.DB.CreatePNJ(pnj); err != nil {
				Errorf("Error creant PNJ generat '%s' al punt %d: %v", ng.Nom, punt.ID, err)
				continue
			}
			creatsPNJs++

			if err := a.DB.VinculaPNJPunt(pnj.ID, punt.ID, ng.Rol); err != nil {
				Errorf("Error vinculant PNJ %d al punt %d: %v", pnj.ID, punt.ID, err)
			}
		}
	}

	if creatsPunts > 0 || creatsPNJs > 0 {
		Infof("Cascada del lloc %d: %d punts i %d PNJs creats", l.ID, creatsPunts, creatsPNJs)
	}
}

// vinculaSeleccionsManuals assigna al lloc nou els PNJs i punts preexistents
// que l'usuari hagi marcat al formulari. També de millor esforç.
func (a *App) vinculaSeleccionsManuals(r *http.Request, u *db.Usuari, l *db.Lloc) {
	for _, v := range r.Form["pnjs_existents"] {
		pnjID := atoiSegur(v)
		if pnjID <= 0 {
			continue
		}
		if _, err := a.DB.GetPNJ(pnjID, u.ID); err != nil {
			Errorf("PNJ %d seleccionat però inaccessible: %v", pnjID, err)
			continue
		}
		if err := a.DB.AssignaLlocAPNJ(pnjID, l.ID, l.Nom); err != nil {
			Errorf("Error assignant el PNJ %d al lloc %d: %v", pnjID, l.ID, err)
		}
	}

	for _, v := range r.Form["punts_existents"] {
		puntID := atoiSegur(v)
		if puntID <= 0 {
			continue
		}
		if _, err := a.DB.GetPunt(puntID, u.ID); err != nil {
			Errorf("Punt %d seleccionat però inaccessible: %v", puntID, err)
			continue
		}
		if err := a.DB.AssignaLlocAPunt(puntID, l.ID); err != nil {
			Errorf("Error assignant el punt %d al lloc %d: %v", puntID, l.ID, err)
		}
	}
}

func (a *App) MostrarEditarLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	l, err := a.DB.GetLloc(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	campanyes, _ := a.DB.ListCampanyes(u.ID)
	RenderPrivateTemplate(w, "lloc-form.html", map[string]interface{}{
		"Usuari":    u,
		"Lloc":      l,
		"Campanyes": campanyes,
	})
}

func (a *App) ActualitzarLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	existent, err := a.DB.GetLloc(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	l := llocDesDelFormulari(r, u.ID)
	l.ID = existent.ID
	if l.Nom == "" {
		l.Nom = existent.Nom
	}

	if err := a.DB.UpdateLloc(l); err != nil {
		Errorf("Error actualitzant lloc %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/llocs/veure?id=%d", id), http.StatusSeeOther)
}

func (a *App) EliminarLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeleteLloc(id, u.ID); err != nil {
		Errorf("Error eliminant lloc %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	Infof("Lloc %d eliminat per usuari %d", id, u.ID)
	http.Redirect(w, r, "/llocs", http.StatusSeeOther)
}
