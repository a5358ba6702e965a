package core

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/magatzem"
)

// Límits del pla gratuït per mes natural.
const (
	LimitPartidesFree = 3
	LimitResumsFree   = 2
)

const maxAudioBytes = 500 << 20 // 500 MB per sessió

func mesActual() string {
	return time.Now().Format("2006-01")
}

func (a *App) ListPartidesHTTP(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyaID := formInt(r, "campanya")
	partides, err := a.DB.ListPartides(u.ID, campanyaID)
	if err != nil {
		Errorf("Error llistant partides: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "partides.html", map[string]interface{}{
		"Usuari":   u,
		"Partides": partides,
	})
}

func (a *App) VeurePartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPartida(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant partida %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "partida.html", map[string]interface{}{
		"Usuari":  u,
		"Partida": p,
	})
}

func (a *App) MostrarNovaPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	campanyes, err := a.DB.ListCampanyes(u.ID)
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	RenderPrivateTemplate(w, "partida-form.html", map[string]interface{}{
		"Usuari":    u,
		"Campanyes": campanyes,
	})
}

// CrearPartida dona d'alta una partida nova dins la campanya: comprova el
// límit mensual del pla gratuït, numera amb max+1 i compta l'ús.
func (a *App) CrearPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	campanyaID := formInt(r, "campanya_id")

	// La campanya ha de ser de l'usuari
	if _, err := a.DB.GetCampanya(campanyaID, u.ID); err != nil {
		http.NotFound(w, r)
		return
	}

	if u.TierSubscripcio == "free" {
		us, err := a.DB.GetUsMensual(u.ID, mesActual())
		if err != nil {
			Errorf("Error llegint ús mensual: %v", err)
			http.Error(w, "Error intern", http.StatusInternalServerError)
			return
		}
		if us.PartidesGravades >= LimitPartidesFree {
			RenderPrivateTemplate(w, "limit.html", map[string]interface{}{
				"Usuari": u,
				"Limit":  LimitPartidesFree,
				"Tipus":  "partides",
			})
			return
		}
	}

	numero, err := a.DB.NextNumeroPartida(campanyaID)
	if err != nil {
		Errorf("Error numerant partida: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	titol := strings.TrimSpace(r.FormValue("titol"))
	if titol == "" {
		titol = fmt.Sprintf("Partida %d", numero)
	}

	p := &db.Partida{
		CampanyaID:   campanyaID,
		Titol:        titol,
		Numero:       numero,
		DuradaSegons: formInt(r, "durada_segons"),
		Estat:        "recording",
	}

	if _, err := a.DB.CreatePartida(p); err != nil {
		Errorf("Error creant partida: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if err := a.DB.IncrementaUs(u.ID, mesActual(), 1, 0, 0, 0); err != nil {
		Errorf("Error comptant ús de partida %d: %v", p.ID, err)
	}

	Infof("Partida %d (número %d) creada a la campanya %d", p.ID, numero, campanyaID)
	http.Redirect(w, r, fmt.Sprintf("/partides/veure?id=%d", p.ID), http.StatusSeeOther)
}

// PujarAudioPartida rep l'enregistrament, el desa al magatzem d'objectes i
// deixa la partida en estat processing a l'espera del pipeline d'IA.
func (a *App) PujarAudioPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	p, err := a.DB.GetPartida(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Formulari invàlid", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "Falta el fitxer d'àudio", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > maxAudioBytes {
		http.Error(w, "El fitxer d'àudio és massa gran", http.StatusRequestEntityTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		Errorf("Error llegint l'àudio pujat: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	ext := "mp3"
	if idx := strings.LastIndex(header.Filename, "."); idx >= 0 {
		ext = header.Filename[idx+1:]
	}

	path := fmt.Sprintf("sessions/%d/%s", p.ID, magatzem.NomUnic(ext))
	url, err := a.Magatzem.Puja(r.Context(), a.Cfg.BucketAudio, path, contentType, data)
	if err != nil {
		Errorf("Error pujant àudio de la partida %d: %v", p.ID, err)
		http.Error(w, "No s'ha pogut desar l'àudio", http.StatusBadGateway)
		return
	}

	if err := a.DB.UpdatePartidaAudio(p.ID, url, int64(len(data))); err != nil {
		Errorf("Error desant la referència d'àudio: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	if err := a.DB.UpdatePartidaEstat(p.ID, "processing", ""); err != nil {
		Errorf("Error canviant estat de la partida %d: %v", p.ID, err)
	}

	minuts := formInt(r, "durada_segons") / 60
	mb := float64(len(data)) / (1 << 20)
	if err := a.DB.IncrementaUs(u.ID, mesActual(), 0, 0, minuts, mb); err != nil {
		Errorf("Error comptant ús d'àudio: %v", err)
	}

	Infof("Àudio de la partida %d desat a %s (%.1f MB)", p.ID, url, mb)
	http.Redirect(w, r, fmt.Sprintf("/partides/veure?id=%d", p.ID), http.StatusSeeOther)
}

func (a *App) ActualitzarPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	p, err := a.DB.GetPartida(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if titol := strings.TrimSpace(r.FormValue("titol")); titol != "" {
		p.Titol = titol
	}
	if v := formInt(r, "durada_segons"); v > 0 {
		p.DuradaSegons = v
	}
	p.Resum = r.FormValue("resum")
	p.MomentsClau = r.FormValue("moments_clau")
	p.PNJsEsmentats = formLlista(r, "pnjs_esmentats")
	p.LlocsEsmentats = formLlista(r, "llocs_esmentats")
	p.BotiAconseguit = formLlista(r, "boti")

	if err := a.DB.UpdatePartida(p); err != nil {
		Errorf("Error actualitzant partida %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/partides/veure?id=%d", id), http.StatusSeeOther)
}

func (a *App) EliminarPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	if err := a.DB.DeletePartida(id, u.ID); err != nil {
		Errorf("Error eliminant partida %d: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/partides", http.StatusSeeOther)
}

// CompartirPartida crea un enllaç públic amb token i caducitat opcional en dies.
func (a *App) CompartirPartida(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	r.ParseForm()
	id := formInt(r, "id")
	p, err := a.DB.GetPartida(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	caducitat := ""
	if dies := formInt(r, "dies"); dies > 0 {
		caducitat = time.Now().AddDate(0, 0, dies).Format("2006-01-02 15:04:05")
	}

	pc := &db.PartidaCompartida{
		PartidaID: p.ID,
		Token:     generateToken(32),
		Caducitat: caducitat,
	}
	if _, err := a.DB.CreatePartidaCompartida(pc); err != nil {
		Errorf("Error creant enllaç compartit: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	Infof("Partida %d compartida amb token %s", p.ID, pc.Token)
	http.Redirect(w, r, fmt.Sprintf("/partides/veure?id=%d&token=%s", p.ID, pc.Token), http.StatusSeeOther)
}

// VeurePartidaCompartida és pública: valida token i caducitat i compta la visita.
func (a *App) VeurePartidaCompartida(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.NotFound(w, r)
		return
	}

	pc, err := a.DB.GetPartidaCompartida(token)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	if pc.Caducitat != "" {
		expira, err := time.Parse("2006-01-02 15:04:05", pc.Caducitat)
		if err == nil && time.Now().After(expira) {
			http.Error(w, "Aquest enllaç ha caducat", http.StatusGone)
			return
		}
	}

	if err := a.DB.IncrementaVisualitzacions(token); err != nil {
		Errorf("Error comptant visualització de %s: %v", token, err)
	}

	// Lectura sense abast d'usuari: l'accés el dona el token
	p, err := a.DB.GetPartidaPerID(pc.PartidaID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	RenderTemplate(w, "partida-compartida.html", map[string]interface{}{
		"Partida": p,
	})
}
