package core

import (
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

func newTestApp(t *testing.T) (*App, *db.Usuari) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.NewDB(map[string]string{"DB_ENGINE": "sqlite", "DB_PATH": path})
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(d.Close)
	if err := db.CreateDatabaseFromSQL(filepath.Join("..", "db", "SQLite.sql"), "sqlite", d); err != nil {
		t.Fatalf("no puc carregar l'esquema: %v", err)
	}

	u := &db.Usuari{Usuari: "test", Nom: "Test", Email: "test@example.com",
		Contrasenya: []byte("hash"), TierSubscripcio: "free", Actiu: true}
	if _, err := d.InsertUsuari(u); err != nil {
		t.Fatalf("InsertUsuari: %v", err)
	}

	return &App{DB: d}, u
}

// TestCascadaEntitatsGenerades: els punts i PNJs transitoris es desen en
// cascada de millor esforç; una entitat invàlida no atura la resta.
func TestCascadaEntitatsGenerades(t *testing.T) {
	a, u := newTestApp(t)

	l := &db.Lloc{UsuariID: u.ID, Nom: "Ravenport"}
	if _, err := a.DB.CreateLloc(l); err != nil {
		t.Fatalf("CreateLloc: %v", err)
	}

	entitats := `{"pois": [
		{"name": "The Drunken Gull", "type": "tavern", "services": "Drinks",
		 "npcs": [{"name": "Ruby", "race": "Halfling", "role": "Bartender"}]},
		{"name": "", "type": "shop",
		 "npcs": [{"name": "Fantasma", "role": "Owner"}]},
		{"name": "Harbormaster's Office", "type": "government"}
	]}`

	r := peticioForm(t, url.Values{"entitats_generades": {entitats}})
	if err := r.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	a.cascadaEntitatsGenerades(r, u, l)

	punts, err := a.DB.ListPunts(u.ID, l.ID)
	if err != nil {
		t.Fatalf("ListPunts: %v", err)
	}
	// El punt sense nom (el del mig) s'ha descartat; el primer i el tercer
	// s'han desat, amb el PNJ del primer inclòs.
	if len(punts) != 2 {
		t.Fatalf("punts creats = %d, vull 2", len(punts))
	}
	noms := map[string]bool{punts[0].Nom: true, punts[1].Nom: true}
	if !noms["The Drunken Gull"] || !noms["Harbormaster's Office"] {
		t.Fatalf("punts desats = %v", noms)
	}
	if punts[0].Nom != "The Drunken Gull" {
		punts[0], punts[1] = punts[1], punts[0]
	}

	vinculats, err := a.DB.ListPNJsDePunt(punts[0].ID)
	if err != nil {
		t.Fatalf("ListPNJsDePunt: %v", err)
	}
	if len(vinculats) != 1 {
		t.Fatalf("PNJs vinculats = %d, vull 1", len(vinculats))
	}
	pnj := vinculats[0].PNJ
	if pnj.Nom != "Ruby" {
		t.Errorf("PNJ = %q", pnj.Nom)
	}
	// Sense npc_type explícit, el tipus surt del rol.
	if pnj.TipusPNJ != "Bartender" {
		t.Errorf("TipusPNJ = %q, vull Bartender", pnj.TipusPNJ)
	}
	if pnj.Ubicacio != "The Drunken Gull in Ravenport" {
		t.Errorf("Ubicacio = %q", pnj.Ubicacio)
	}
	if vinculats[0].Rol != "Bartender" {
		t.Errorf("Rol del vincle = %q", vinculats[0].Rol)
	}
}

// TestCascadaSenseEntitats: un formulari sense camp ocult no crea res ni falla.
func TestCascadaSenseEntitats(t *testing.T) {
	a, u := newTestApp(t)

	l := &db.Lloc{UsuariID: u.ID, Nom: "Buit"}
	if _, err := a.DB.CreateLloc(l); err != nil {
		t.Fatalf("CreateLloc: %v", err)
	}

	r := peticioForm(t, url.Values{})
	_ = r.ParseForm()
	a.cascadaEntitatsGenerades(r, u, l)

	punts, _ := a.DB.ListPunts(u.ID, l.ID)
	if len(punts) != 0 {
		t.Errorf("no s'hauria d'haver creat cap punt, tinc %d", len(punts))
	}
}

// TestVinculaSeleccionsManuals: només es vinculen entitats de l'usuari mateix.
func TestVinculaSeleccionsManuals(t *testing.T) {
	a, u := newTestApp(t)

	altre := &db.Usuari{Usuari: "altre", Nom: "Altre", Email: "altre@example.com",
		Contrasenya: []byte("hash"), TierSubscripcio: "free", Actiu: true}
	if _, err := a.DB.InsertUsuari(altre); err != nil {
		t.Fatalf("InsertUsuari: %v", err)
	}

	l := &db.Lloc{UsuariID: u.ID, Nom: "Vila Nova"}
	if _, err := a.DB.CreateLloc(l); err != nil {
		t.Fatalf("CreateLloc: %v", err)
	}

	meu := &db.PNJ{UsuariID: u.ID, Nom: "Meu"}
	if _, err := a.DB.CreatePNJ(meu); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}
	seu := &db.PNJ{UsuariID: altre.ID, Nom: "Seu"}
	if _, err := a.DB.CreatePNJ(seu); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}

	r := peticioForm(t, url.Values{"pnjs_existents": {
		strconv.Itoa(meu.ID), strconv.Itoa(seu.ID),
	}})
	if err := r.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	a.vinculaSeleccionsManuals(r, u, l)

	trobat, err := a.DB.GetPNJ(meu.ID, u.ID)
	if err != nil {
		t.Fatalf("GetPNJ: %v", err)
	}
	if trobat.LlocID != l.ID {
		t.Errorf("el PNJ propi hauria de quedar vinculat al lloc")
	}

	alie, err := a.DB.GetPNJ(seu.ID, altre.ID)
	if err != nil {
		t.Fatalf("GetPNJ (altre usuari): %v", err)
	}
	if alie.LlocID != 0 {
		t.Error("el PNJ d'un altre usuari no s'hauria de tocar mai")
	}
}
