package core

import (
	"html/template"
	"log"
	"net/http"
	"strings"
)

var Templates *template.Template

type DataContext struct {
	UserLoggedIn bool
	Data         interface{}
}

// Funcions personalitzades per a les plantilles
var templateFuncs = template.FuncMap{
	"default": func(value interface{}, defaultValue interface{}) interface{} {
		if value == nil || value == "" {
			return defaultValue
		}
		return value
	},
	"join": func(parts []string) string {
		return strings.Join(parts, ", ")
	},
}

// InitTemplates carrega totes les plantilles. Es crida una sola vegada des de
// main; si falla no té sentit arrencar.
func InitTemplates() {
	Templates = template.New("").Funcs(templateFuncs)
	Templates = template.Must(Templates.ParseGlob("templates/*.html"))

	log.Println("Plantilles carregades:")
	for _, t := range Templates.Templates() {
		log.Printf(" - %q", t.Name())
	}
}

func RenderTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) {
	err := Templates.ExecuteTemplate(w, templateName, &DataContext{
		UserLoggedIn: false,
		Data:         data,
	})
	if err != nil {
		Errorf("Error renderitzant plantilla %s: %v", templateName, err)
		http.Error(w, "Error intern del servidor", http.StatusInternalServerError)
	}
}

func RenderPrivateTemplate(w http.ResponseWriter, templateName string, data map[string]interface{}) {
	err := Templates.ExecuteTemplate(w, templateName, &DataContext{
		UserLoggedIn: true,
		Data:         data,
	})
	if err != nil {
		Errorf("Error renderitzant plantilla %s: %v", templateName, err)
		http.Error(w, "Error intern del servidor", http.StatusInternalServerError)
	}
}
