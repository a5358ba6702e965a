package core

import (
	"encoding/json"
	"net/http"

	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/ia"
	"github.com/marcmoiagese/CronicaCampanyes/magatzem"
)

// Resposta estàndard dels endpoints JSON de generació: {success, error, data}.
type respostaAPI struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func escriuJSON(w http.ResponseWriter, status int, resp respostaAPI) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		Errorf("Error serialitzant resposta JSON: %v", err)
	}
}

func escriuErrorAPI(w http.ResponseWriter, status int, msg string) {
	escriuJSON(w, status, respostaAPI{Success: false, Error: msg})
}

// Format de fil per a les entitats generades; el mateix JSON viatja de l'API
// al camp ocult del formulari de lloc i torna en desar.
type pnjGeneratWire struct {
	Nom            string `json:"name"`
	Raca           string `json:"race"`
	ClasseOcupacio string `json:"class_or_occupation"`
	Rol            string `json:"role"`
	TipusPNJ       string `json:"npc_type"`
	Descripcio     string `json:"description"`
	Personalitat   string `json:"personality"`
	Aparenca       string `json:"appearance"`
}

type puntGeneratWire struct {
	Nom        string           `json:"name"`
	Tipus      string           `json:"type"`
	Descripcio string           `json:"description"`
	Serveis    string           `json:"services"`
	PNJs       []pnjGeneratWire `json:"npcs"`
}

type entitatsGeneradesWire struct {
	Punts []puntGeneratWire `json:"pois"`
}

func puntsAWire(punts []ia.PuntGenerat) entitatsGeneradesWire {
	out := entitatsGeneradesWire{Punts: make([]puntGeneratWire, 0, len(punts))}
	for _, p := range punts {
		pw := puntGeneratWire{
			Nom:        p.Nom,
			Tipus:      p.Tipus,
			Descripcio: p.Descripcio,
			Serveis:    p.Serveis,
		}
		for _, n := range p.PNJs {
			pw.PNJs = append(pw.PNJs, pnjGeneratWire{
				Nom:            n.Nom,
				Raca:           n.Raca,
				ClasseOcupacio: n.ClasseOcupacio,
				Rol:            n.Rol,
				TipusPNJ:       n.TipusPNJ,
				Descripcio:     n.Descripcio,
				Personalitat:   n.Personalitat,
				Aparenca:       n.Aparenca,
			})
		}
		out.Punts = append(out.Punts, pw)
	}
	return out
}

// GenerarEntitat genera un PNJ, lloc o objecte a demanda i retorna els camps
// coercits a text, a punt per omplir el formulari.
func (a *App) GenerarEntitat(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	if r.Method != "POST" {
		escriuErrorAPI(w, http.StatusMethodNotAllowed, "Cal POST")
		return
	}

	var payload struct {
		Tipus           string `json:"type"`
		Prompt          string `json:"prompt"`
		DetallsComplets bool   `json:"full_details"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		escriuErrorAPI(w, http.StatusBadRequest, "JSON invàlid")
		return
	}

	data, err := a.IA.Genera(r.Context(), payload.Tipus, payload.Prompt, payload.DetallsComplets)
	if err == ia.ErrPromptObligatori {
		escriuErrorAPI(w, http.StatusBadRequest, "Cal una descripció")
		return
	}
	if err != nil {
		Errorf("Error generant %s: %v", payload.Tipus, err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'ha pogut generar l'entitat")
		return
	}

	escriuJSON(w, http.StatusOK, respostaAPI{Success: true, Data: data})
}

// GenerarEntitatsLloc expandeix un lloc en punts d'interès i PNJs transitoris.
func (a *App) GenerarEntitatsLloc(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	if r.Method != "POST" {
		escriuErrorAPI(w, http.StatusMethodNotAllowed, "Cal POST")
		return
	}

	var payload struct {
		Nom       string `json:"name"`
		Tipus     string `json:"type"`
		Habitants string `json:"inhabitants"`
		Poblacio  string `json:"population"`
		PuntsText string `json:"points_of_interest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		escriuErrorAPI(w, http.StatusBadRequest, "JSON invàlid")
		return
	}
	if payload.Nom == "" {
		escriuErrorAPI(w, http.StatusBadRequest, "Cal el nom del lloc")
		return
	}

	punts, err := a.IA.GeneraEntitatsLloc(r.Context(), ia.DadesLloc{
		Nom:       payload.Nom,
		Tipus:     payload.Tipus,
		Habitants: payload.Habitants,
		Poblacio:  payload.Poblacio,
		PuntsText: payload.PuntsText,
	})
	if err != nil {
		Errorf("Error expandint el lloc %s: %v", payload.Nom, err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'han pogut generar les entitats")
		return
	}

	escriuJSON(w, http.StatusOK, respostaAPI{Success: true, Data: puntsAWire(punts)})
}

// GenerarPunt genera un punt d'interès solt.
func (a *App) GenerarPunt(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	if r.Method != "POST" {
		escriuErrorAPI(w, http.StatusMethodNotAllowed, "Cal POST")
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		escriuErrorAPI(w, http.StatusBadRequest, "JSON invàlid")
		return
	}

	punt, err := a.IA.GeneraPunt(r.Context(), payload.Prompt)
	if err == ia.ErrPromptObligatori {
		escriuErrorAPI(w, http.StatusBadRequest, "Cal una descripció")
		return
	}
	if err != nil {
		Errorf("Error generant punt d'interès: %v", err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'ha pogut generar el punt d'interès")
		return
	}

	escriuJSON(w, http.StatusOK, respostaAPI{Success: true, Data: map[string]string{
		"name":        punt.Nom,
		"type":        punt.Tipus,
		"description": punt.Descripcio,
	}})
}

// GenerarPNJ genera un PNJ solt amb tipus inclòs.
func (a *App) GenerarPNJ(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	if r.Method != "POST" {
		escriuErrorAPI(w, http.StatusMethodNotAllowed, "Cal POST")
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		escriuErrorAPI(w, http.StatusBadRequest, "JSON invàlid")
		return
	}

	pnj, err := a.IA.GeneraPNJ(r.Context(), payload.Prompt)
	if err == ia.ErrPromptObligatori {
		escriuErrorAPI(w, http.StatusBadRequest, "Cal una descripció")
		return
	}
	if err != nil {
		Errorf("Error generant PNJ: %v", err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'ha pogut generar el PNJ")
		return
	}

	escriuJSON(w, http.StatusOK, respostaAPI{Success: true, Data: map[string]string{
		"name":                pnj.Nom,
		"race":                pnj.Raca,
		"npc_type":            pnj.TipusPNJ,
		"class_or_occupation": pnj.ClasseOcupacio,
		"description":         pnj.Descripcio,
		"personality":         pnj.Personalitat,
		"appearance":          pnj.Aparenca,
	}})
}

// GenerarImatge genera una il·lustració o mapa, el puja al magatzem i retorna
// l'URL pública.
func (a *App) GenerarImatge(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	if r.Method != "POST" {
		escriuErrorAPI(w, http.StatusMethodNotAllowed, "Cal POST")
		return
	}

	var payload struct {
		Prompt string `json:"prompt"`
		EsMapa bool   `json:"is_map"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		escriuErrorAPI(w, http.StatusBadRequest, "JSON invàlid")
		return
	}

	imatge, err := a.IA.GeneraImatge(r.Context(), payload.Prompt, payload.EsMapa)
	if err == ia.ErrPromptObligatori {
		escriuErrorAPI(w, http.StatusBadRequest, "Cal una descripció")
		return
	}
	if err != nil {
		Errorf("Error generant imatge: %v", err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'ha pogut generar la imatge")
		return
	}

	path := "generated-images/" + magatzem.NomUnic("webp")
	url, err := a.Magatzem.Puja(r.Context(), a.Cfg.BucketImatges, path, "image/webp", imatge)
	if err != nil {
		Errorf("Error pujant la imatge generada: %v", err)
		escriuErrorAPI(w, http.StatusBadGateway, "No s'ha pogut desar la imatge")
		return
	}

	Infof("Imatge generada i desada a %s", url)
	escriuJSON(w, http.StatusOK, respostaAPI{Success: true, Data: map[string]string{"image_url": url}})
}
