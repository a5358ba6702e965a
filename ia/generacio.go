package ia

import (
	"context"
	"errors"
	"fmt"
)

// Tipus d'entitat que es poden demanar al generador lliure.
const (
	TipusPNJ     = "npc"
	TipusLloc    = "location"
	TipusObjecte = "item"
)

// ErrPromptObligatori es retorna quan el tipus demanat exigeix descripció.
// Només els llocs admeten prompt buit (generació sorpresa).
var ErrPromptObligatori = errors.New("cal una descripció per generar aquesta entitat")

// Genera demana una entitat al model i retorna tots els camps coercits a text,
// a punt per abocar en un formulari. Els camps que el model no retorni queden
// com a cadena buida.
func (c *Client) Genera(ctx context.Context, tipus, prompt string, detallsComplets bool) (map[string]string, error) {
	var system string
	switch tipus {
	case TipusPNJ:
		system = promptSistemaPNJSimple
	case TipusLloc:
		if detallsComplets {
			system = promptSistemaLlocComplet
		} else {
			system = promptSistemaLlocSimple
		}
	case TipusObjecte:
		system = promptSistemaObjecte
	default:
		return nil, fmt.Errorf("tipus de generació desconegut: %s", tipus)
	}

	if tipus != TipusLloc && prompt == "" {
		return nil, ErrPromptObligatori
	}

	// Lloc sense descripció: prompt sorpresa amb temperatura més alta.
	userPrompt := prompt
	temperature := 0.8
	if tipus == TipusLloc && prompt == "" {
		userPrompt = promptSorpresa
		temperature = 1.0
	}

	content, err := c.ChatJSON(ctx, system, userPrompt, temperature)
	if err != nil {
		return nil, err
	}

	parsed, err := parseObjecteJSON(content)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(parsed))
	for k, v := range parsed {
		result[k] = aText(v)
	}
	return result, nil
}

// DadesLloc són els camps del lloc que guien l'expansió en punts i PNJs.
type DadesLloc struct {
	Nom       string
	Tipus     string
	Habitants string
	Poblacio  string
	PuntsText string
}

// PNJGenerat és un PNJ transitori sortit del model, encara sense desar.
type PNJGenerat struct {
	Nom            string
	Raca           string
	ClasseOcupacio string
	Rol            string
	TipusPNJ       string
	Descripcio     string
	Personalitat   string
	Aparenca       string
}

// PuntGenerat és un punt d'interès transitori amb els seus PNJs.
type PuntGenerat struct {
	Nom        string
	Tipus      string
	Descripcio string
	Serveis    string
	PNJs       []PNJGenerat
}

// GeneraEntitatsLloc expandeix un lloc en 3-8 punts d'interès amb 1-3 PNJs
// cadascun, segons la demografia descrita.
func (c *Client) GeneraEntitatsLloc(ctx context.Context, dades DadesLloc) ([]PuntGenerat, error) {
	tipus := dades.Tipus
	if tipus == "" {
		tipus = "Unknown"
	}
	habitants := dades.Habitants
	if habitants == "" {
		habitants = dades.Poblacio
	}
	if habitants == "" {
		habitants = "Unknown"
	}
	puntsContext := dades.PuntsText
	if puntsContext == "" {
		puntsContext = "Generate appropriate POIs for this location type"
	}

	userPrompt := fmt.Sprintf(`Location: %s
Type: %s
Population/Inhabitants: %s
Points of Interest context: %s

Generate POIs and NPCs for this location.`, dades.Nom, tipus, habitants, puntsContext)

	content, err := c.ChatJSON(ctx, promptSistemaEntitatsLloc, userPrompt, 0.9)
	if err != nil {
		return nil, err
	}

	parsed, err := parseObjecteJSON(content)
	if err != nil {
		return nil, err
	}

	rawPunts, _ := parsed["pois"].([]interface{})
	punts := make([]PuntGenerat, 0, len(rawPunts))
	for _, rp := range rawPunts {
		mp, ok := rp.(map[string]interface{})
		if !ok {
			continue
		}
		punt := PuntGenerat{
			Nom:        camp(mp, "name"),
			Tipus:      camp(mp, "type"),
			Descripcio: camp(mp, "description"),
			Serveis:    camp(mp, "services"),
		}
		rawPNJs, _ := mp["npcs"].([]interface{})
		for _, rn := range rawPNJs {
			mn, ok := rn.(map[string]interface{})
			if !ok {
				continue
			}
			rol := camp(mn, "role")
			punt.PNJs = append(punt.PNJs, PNJGenerat{
				Nom:            camp(mn, "name"),
				Raca:           camp(mn, "race"),
				ClasseOcupacio: camp(mn, "class_or_occupation"),
				Rol:            rol,
				TipusPNJ:       RolATipusPNJ(rol),
				Descripcio:     camp(mn, "description"),
				Personalitat:   camp(mn, "personality"),
				Aparenca:       camp(mn, "appearance"),
			})
		}
		punts = append(punts, punt)
	}
	return punts, nil
}

// RolATipusPNJ tradueix el rol dins del punt al tipus genèric del PNJ.
func RolATipusPNJ(rol string) string {
	switch rol {
	case "Owner", "Shopkeeper":
		return "Shopkeeper"
	case "Bartender":
		return "Bartender"
	case "Guard":
		return "Guard"
	case "Patron":
		return "Patron"
	default:
		return "Other"
	}
}

// GeneraPunt genera un punt d'interès solt a partir d'una descripció.
func (c *Client) GeneraPunt(ctx context.Context, prompt string) (*PuntGenerat, error) {
	if prompt == "" {
		return nil, ErrPromptObligatori
	}

	userPrompt := "Generate a POI based on this description: " + prompt
	content, err := c.ChatJSON(ctx, promptSistemaPunt, userPrompt, 0.9)
	if err != nil {
		return nil, err
	}

	parsed, err := parseObjecteJSON(content)
	if err != nil {
		return nil, err
	}

	return &PuntGenerat{
		Nom:        camp(parsed, "name"),
		Tipus:      camp(parsed, "type"),
		Descripcio: camp(parsed, "description"),
	}, nil
}

// GeneraPNJ genera un PNJ solt amb tipus inclòs a partir d'una descripció.
func (c *Client) GeneraPNJ(ctx context.Context, prompt string) (*PNJGenerat, error) {
	if prompt == "" {
		return nil, ErrPromptObligatori
	}

	userPrompt := "Generate an NPC based on this description: " + prompt
	content, err := c.ChatJSON(ctx, promptSistemaPNJDetallat, userPrompt, 0.9)
	if err != nil {
		return nil, err
	}

	parsed, err := parseObjecteJSON(content)
	if err != nil {
		return nil, err
	}

	return &PNJGenerat{
		Nom:            camp(parsed, "name"),
		Raca:           camp(parsed, "race"),
		TipusPNJ:       camp(parsed, "npc_type"),
		ClasseOcupacio: camp(parsed, "class_or_occupation"),
		Descripcio:     camp(parsed, "description"),
		Personalitat:   camp(parsed, "personality"),
		Aparenca:       camp(parsed, "appearance"),
	}, nil
}
