package core

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func peticioForm(t *testing.T, valors url.Values) *http.Request {
	t.Helper()
	r := httptest.NewRequest("POST", "/prova", strings.NewReader(valors.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestFormLlista(t *testing.T) {
	casos := []struct {
		nom  string
		in   string
		vull []string
	}{
		{"buit", "", nil},
		{"nomes espais", "  ", nil},
		{"normal", "Arnau, Laia,Pere", []string{"Arnau", "Laia", "Pere"}},
		{"comes sobrants", ",Arnau,,  ,Laia,", []string{"Arnau", "Laia"}},
	}

	for _, c := range casos {
		t.Run(c.nom, func(t *testing.T) {
			r := peticioForm(t, url.Values{"camp": {c.in}})
			got := formLlista(r, "camp")
			if len(got) != len(c.vull) {
				t.Fatalf("formLlista(%q) = %v, vull %v", c.in, got, c.vull)
			}
			for i := range got {
				if got[i] != c.vull[i] {
					t.Errorf("element %d = %q, vull %q", i, got[i], c.vull[i])
				}
			}
		})
	}
}

func TestFormBool(t *testing.T) {
	for valor, vull := range map[string]bool{"on": true, "true": true, "1": true, "": false, "off": false, "no": false} {
		r := peticioForm(t, url.Values{"camp": {valor}})
		if got := formBool(r, "camp"); got != vull {
			t.Errorf("formBool(%q) = %v, vull %v", valor, got, vull)
		}
	}
}

func TestFormInt(t *testing.T) {
	for valor, vull := range map[string]int{"42": 42, "": 0, "abc": 0, " 7 ": 7, "-3": -3} {
		r := httptest.NewRequest("GET", "/?camp="+url.QueryEscape(valor), nil)
		if got := formInt(r, "camp"); got != vull {
			t.Errorf("formInt(%q) = %d, vull %d", valor, got, vull)
		}
	}
}

func TestAtoiSegur(t *testing.T) {
	for valor, vull := range map[string]int{"10": 10, "brossa": 0, "": 0, " 5": 5} {
		if got := atoiSegur(valor); got != vull {
			t.Errorf("atoiSegur(%q) = %d, vull %d", valor, got, vull)
		}
	}
}
