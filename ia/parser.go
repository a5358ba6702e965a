package ia

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseObjecteJSON interpreta el text retornat pel model com un objecte JSON.
// Tot i demanar response_format json_object, alguns proveïdors compatibles
// envien el JSON embolcallat en text o en blocs de codi; es prova per ordre:
// parse directe, del primer '{' a l'últim '}', bloc ```json i bloc ```.
func parseObjecteJSON(text string) (map[string]interface{}, error) {
	text = strings.TrimSpace(text)

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return result, nil
	}

	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			if err := json.Unmarshal([]byte(text[start:end+1]), &result); err == nil {
				return result, nil
			}
		}
	}

	if idx := strings.Index(text, "```json"); idx >= 0 {
		after := text[idx+7:]
		if end := strings.Index(after, "```"); end >= 0 {
			if err := json.Unmarshal([]byte(strings.TrimSpace(after[:end])), &result); err == nil {
				return result, nil
			}
		}
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		after := text[idx+3:]
		if end := strings.Index(after, "```"); end >= 0 {
			if err := json.Unmarshal([]byte(strings.TrimSpace(after[:end])), &result); err == nil {
				return result, nil
			}
		}
	}

	return nil, fmt.Errorf("no s'ha pogut interpretar la resposta com a JSON: %.200s", text)
}

// aText coerceix qualsevol valor JSON a text pla per poder-lo abocar en un
// camp de formulari. Les llistes s'uneixen amb comes i els objectes es tornen
// a serialitzar.
func aText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, aText(e))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// camp retorna el valor coercit d'una clau; clau absent = cadena buida.
func camp(m map[string]interface{}, clau string) string {
	return aText(m[clau])
}
