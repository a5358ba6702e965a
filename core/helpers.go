package core

import (
	"net/http"
	"strconv"
	"strings"
)

// formInt llegeix un camp numèric del formulari o la query; buit o invàlid = 0.
func formInt(r *http.Request, name string) int {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// atoiSegur converteix a enter tolerant valors bruts; invàlid = 0.
func atoiSegur(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func formBool(r *http.Request, name string) bool {
	v := r.FormValue(name)
	return v == "on" || v == "true" || v == "1"
}

// formLlista converteix un camp separat per comes en una llista neta.
func formLlista(r *http.Request, name string) []string {
	raw := r.FormValue(name)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
