package ia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// servidorIA munta un proveïdor fals de chat-completions que respon amb el
// contingut indicat i deixa registrada l'última petició rebuda.
func servidorIA(t *testing.T, contingut string, captura *chatRequest) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, vull /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer clau-de-prova" {
			t.Errorf("Authorization = %q", got)
		}
		if captura != nil {
			if err := json.NewDecoder(r.Body).Decode(captura); err != nil {
				t.Errorf("petició il·legible: %v", err)
			}
		}
		resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: contingut}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	return &Client{
		BaseURL:      srv.URL,
		APIKey:       "clau-de-prova",
		Model:        "model-prova",
		ModelImatges: "model-imatges",
		HTTPClient:   srv.Client(),
	}
}

// TestGeneraPNJExigeixPrompt: npc i item no admeten descripció buida.
func TestGeneraExigeixPrompt(t *testing.T) {
	c := &Client{} // no s'arriba a fer cap petició
	if _, err := c.Genera(context.Background(), TipusPNJ, "", false); err != ErrPromptObligatori {
		t.Errorf("npc sense prompt = %v, vull ErrPromptObligatori", err)
	}
	if _, err := c.Genera(context.Background(), TipusObjecte, "", false); err != ErrPromptObligatori {
		t.Errorf("item sense prompt = %v, vull ErrPromptObligatori", err)
	}
	if _, err := c.Genera(context.Background(), "dracs", "x", false); err == nil {
		t.Error("tipus desconegut hauria de fallar")
	}
}

// TestGeneraLlocSorpresa: un lloc sense descripció fa servir el prompt
// sorpresa amb temperatura 1.0.
func TestGeneraLlocSorpresa(t *testing.T) {
	var rebuda chatRequest
	c := servidorIA(t, `{"name": "The Whispering Mire", "type": "swamp", "population": 0}`, &rebuda)

	dades, err := c.Genera(context.Background(), TipusLloc, "", true)
	if err != nil {
		t.Fatalf("Genera: %v", err)
	}

	if rebuda.Temperature != 1.0 {
		t.Errorf("temperatura = %v, vull 1.0", rebuda.Temperature)
	}
	if len(rebuda.Messages) != 2 || rebuda.Messages[1].Content != promptSorpresa {
		t.Errorf("el missatge d'usuari hauria de ser el prompt sorpresa")
	}
	if rebuda.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format = %q, vull json_object", rebuda.ResponseFormat.Type)
	}

	if dades["name"] != "The Whispering Mire" {
		t.Errorf("name = %q", dades["name"])
	}
	// Els números arriben coercits a text.
	if dades["population"] != "0" {
		t.Errorf("population = %q, vull \"0\"", dades["population"])
	}
}

// TestGeneraAmbPrompt: amb descripció, la temperatura baixa a 0.8.
func TestGeneraAmbPrompt(t *testing.T) {
	var rebuda chatRequest
	c := servidorIA(t, `{"name": "Korga", "race": "Half-Orc"}`, &rebuda)

	dades, err := c.Genera(context.Background(), TipusPNJ, "una ferrera mig-orc", false)
	if err != nil {
		t.Fatalf("Genera: %v", err)
	}
	if rebuda.Temperature != 0.8 {
		t.Errorf("temperatura = %v, vull 0.8", rebuda.Temperature)
	}
	if rebuda.Messages[1].Content != "una ferrera mig-orc" {
		t.Errorf("prompt d'usuari = %q", rebuda.Messages[1].Content)
	}
	if dades["race"] != "Half-Orc" {
		t.Errorf("race = %q", dades["race"])
	}
}

// TestGeneraEntitatsLloc: expansió d'un lloc en punts i PNJs, amb el mapatge
// de rol a tipus i els valors per defecte del prompt.
func TestGeneraEntitatsLloc(t *testing.T) {
	resposta := `{"pois": [
		{"name": "The Drunken Gull", "type": "tavern", "description": "Smoky dockside tavern", "services": "Drinks, rooms",
		 "npcs": [
			{"name": "Ruby", "race": "Halfling", "role": "Owner", "description": "Sharp-eyed owner"},
			{"name": "Old Tom", "race": "Human", "role": "Patron"}
		 ]}
	]}`

	var rebuda chatRequest
	c := servidorIA(t, resposta, &rebuda)

	punts, err := c.GeneraEntitatsLloc(context.Background(), DadesLloc{Nom: "Ravenport"})
	if err != nil {
		t.Fatalf("GeneraEntitatsLloc: %v", err)
	}

	if rebuda.Temperature != 0.9 {
		t.Errorf("temperatura = %v, vull 0.9", rebuda.Temperature)
	}
	// Sense tipus ni habitants, el prompt porta els valors per defecte.
	user := rebuda.Messages[1].Content
	for _, fragment := range []string{"Location: Ravenport", "Type: Unknown", "Population/Inhabitants: Unknown"} {
		if !strings.Contains(user, fragment) {
			t.Errorf("el prompt d'usuari no conté %q:\n%s", fragment, user)
		}
	}

	if len(punts) != 1 {
		t.Fatalf("punts = %d, vull 1", len(punts))
	}
	p := punts[0]
	if p.Nom != "The Drunken Gull" || p.Tipus != "tavern" {
		t.Errorf("punt = (%q, %q)", p.Nom, p.Tipus)
	}
	if len(p.PNJs) != 2 {
		t.Fatalf("PNJs = %d, vull 2", len(p.PNJs))
	}
	if p.PNJs[0].TipusPNJ != "Shopkeeper" {
		t.Errorf("rol Owner hauria de mapar a Shopkeeper, tinc %q", p.PNJs[0].TipusPNJ)
	}
	if p.PNJs[1].TipusPNJ != "Patron" {
		t.Errorf("rol Patron hauria de mapar a Patron, tinc %q", p.PNJs[1].TipusPNJ)
	}
}

// TestGeneraEntitatsLlocHabitants: els textos del lloc s'incrusten literals
// al prompt; sense habitants, s'usa la població.
func TestGeneraEntitatsLlocHabitants(t *testing.T) {
	resposta := `{"pois": []}`
	habitants := "a small village of mostly halflings and a few gnomes"

	t.Run("habitants literals", func(t *testing.T) {
		var rebuda chatRequest
		c := servidorIA(t, resposta, &rebuda)
		_, err := c.GeneraEntitatsLloc(context.Background(), DadesLloc{
			Nom:       "Greenhollow",
			Tipus:     "village",
			Habitants: habitants,
			PuntsText: "a mill and a shrine",
		})
		if err != nil {
			t.Fatalf("GeneraEntitatsLloc: %v", err)
		}
		user := rebuda.Messages[1].Content
		for _, fragment := range []string{
			"Location: Greenhollow",
			"Type: village",
			"Population/Inhabitants: " + habitants,
			"Points of Interest context: a mill and a shrine",
		} {
			if !strings.Contains(user, fragment) {
				t.Errorf("el prompt d'usuari no conté %q:\n%s", fragment, user)
			}
		}
	})

	t.Run("poblacio com a alternativa", func(t *testing.T) {
		var rebuda chatRequest
		c := servidorIA(t, resposta, &rebuda)
		_, err := c.GeneraEntitatsLloc(context.Background(), DadesLloc{Nom: "Greenhollow", Poblacio: "about 300"})
		if err != nil {
			t.Fatalf("GeneraEntitatsLloc: %v", err)
		}
		if !strings.Contains(rebuda.Messages[1].Content, "Population/Inhabitants: about 300") {
			t.Errorf("la població hauria de suplir els habitants:\n%s", rebuda.Messages[1].Content)
		}
	})
}

// TestRolATipusPNJ: taula de mapatge rol -> tipus.
func TestRolATipusPNJ(t *testing.T) {
	casos := map[string]string{
		"Owner":      "Shopkeeper",
		"Shopkeeper": "Shopkeeper",
		"Bartender":  "Bartender",
		"Guard":      "Guard",
		"Patron":     "Patron",
		"Assassin":   "Other",
		"":           "Other",
	}
	for rol, vull := range casos {
		if got := RolATipusPNJ(rol); got != vull {
			t.Errorf("RolATipusPNJ(%q) = %q, vull %q", rol, got, vull)
		}
	}
}

// TestGeneraPuntIPNJSolts: els generadors solts exigeixen descripció.
func TestGeneraPuntIPNJSolts(t *testing.T) {
	c := &Client{}
	if _, err := c.GeneraPunt(context.Background(), ""); err != ErrPromptObligatori {
		t.Errorf("GeneraPunt sense prompt = %v, vull ErrPromptObligatori", err)
	}
	if _, err := c.GeneraPNJ(context.Background(), ""); err != ErrPromptObligatori {
		t.Errorf("GeneraPNJ sense prompt = %v, vull ErrPromptObligatori", err)
	}

	srv := servidorIA(t, `{"name": "Temple of Tides", "type": "temple", "description": "Salt-stained shrine"}`, nil)
	punt, err := srv.GeneraPunt(context.Background(), "un temple vora el mar")
	if err != nil {
		t.Fatalf("GeneraPunt: %v", err)
	}
	if punt.Nom != "Temple of Tides" {
		t.Errorf("Nom = %q", punt.Nom)
	}
}
