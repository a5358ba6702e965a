package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"

	"github.com/marcmoiagese/CronicaCampanyes/cnf"
	"github.com/marcmoiagese/CronicaCampanyes/core"
	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/ia"
	"github.com/marcmoiagese/CronicaCampanyes/magatzem"
)

// ambParamToken passa el paràmetre de ruta :token com a query string,
// de manera que el mateix handler serveix /compartit?token=x i /compartit/x.
func ambParamToken(fn http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		q := r.URL.Query()
		q.Set("token", ps.ByName("token"))
		r.URL.RawQuery = q.Encode()
		fn(w, r)
	}
}

func main() {
	// .env opcional per a desenvolupament; els secrets van sempre per entorn
	if err := godotenv.Load(); err == nil {
		log.Println("Variables d'entorn carregades de .env")
	}

	rawCfg, err := cnf.LoadConfig("cnf/config.cfg")
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := cnf.ParseConfig(rawCfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := cnf.LoadDBOverrides("cnf/db.yaml", &cfg); err != nil {
		log.Fatal(err)
	}

	core.SetLogLevel(cfg.LogLevel)
	core.InitTemplates()

	database, err := db.NewDB(cfg.ToDBConfig())
	if err != nil {
		log.Fatal(err)
	}

	iaClient, err := ia.NewClient(cfg.IAURLBase, cfg.IAModel, cfg.IAModelImatges)
	if err != nil {
		log.Fatal(err)
	}

	mgz, err := magatzem.NewClient(cfg.MagatzemURL)
	if err != nil {
		log.Fatal(err)
	}

	app := core.NewApp(&cfg, database, iaClient, mgz)
	defer app.Close()

	// Públic
	http.HandleFunc("/", core.SecureHeaders(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		core.RenderTemplate(w, "index.html", nil)
	}))
	http.HandleFunc("/static/", core.SecureHeaders(core.ServeStatic))
	http.HandleFunc("/registre", core.SecureHeaders(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			app.RegistrarUsuari(w, r)
			return
		}
		app.MostrarRegistre(w, r)
	}))
	http.HandleFunc("/activar", core.SecureHeaders(app.ActivarUsuariHTTP))
	http.HandleFunc("/login", core.SecureHeaders(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			app.IniciarSessio(w, r)
			return
		}
		app.MostrarLogin(w, r)
	}))
	http.HandleFunc("/logout", core.SecureHeaders(app.TancarSessio))
	http.HandleFunc("/compartit", core.SecureHeaders(app.VeurePartidaCompartida))

	// Rutes públiques amb el token al camí
	router := httprouter.New()
	router.GET("/compartit/:token", ambParamToken(app.VeurePartidaCompartida))
	router.GET("/activar/:token", ambParamToken(app.ActivarUsuariHTTP))
	http.Handle("/compartit/", core.SecureHeaders(router.ServeHTTP))
	http.Handle("/activar/", core.SecureHeaders(router.ServeHTTP))

	// Privat
	http.HandleFunc("/inici", core.SecureHeaders(app.RequireSessio(app.Inici)))
	http.HandleFunc("/configuracio", core.SecureHeaders(app.RequireSessio(app.Configuracio)))

	http.HandleFunc("/campanyes", core.SecureHeaders(app.RequireSessio(app.ListCampanyesHTTP)))
	http.HandleFunc("/campanyes/nova", core.SecureHeaders(app.RequireSessio(app.MostrarNovaCampanya)))
	http.HandleFunc("/campanyes/crear", core.SecureHeaders(app.RequireSessio(app.CrearCampanya)))
	http.HandleFunc("/campanyes/veure", core.SecureHeaders(app.RequireSessio(app.VeureCampanya)))
	http.HandleFunc("/campanyes/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarCampanya)))
	http.HandleFunc("/campanyes/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarCampanya)))
	http.HandleFunc("/campanyes/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarCampanya)))
	http.HandleFunc("/campanyes/portada", core.SecureHeaders(app.RequireSessio(app.PujarPortadaCampanya)))
	http.HandleFunc("/campanyes/cronica", core.SecureHeaders(app.RequireSessio(app.ExportarCronica)))

	http.HandleFunc("/partides", core.SecureHeaders(app.RequireSessio(app.ListPartidesHTTP)))
	http.HandleFunc("/partides/nova", core.SecureHeaders(app.RequireSessio(app.MostrarNovaPartida)))
	http.HandleFunc("/partides/crear", core.SecureHeaders(app.RequireSessio(app.CrearPartida)))
	http.HandleFunc("/partides/veure", core.SecureHeaders(app.RequireSessio(app.VeurePartida)))
	http.HandleFunc("/partides/audio", core.SecureHeaders(app.RequireSessio(app.PujarAudioPartida)))
	http.HandleFunc("/partides/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarPartida)))
	http.HandleFunc("/partides/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarPartida)))
	http.HandleFunc("/partides/compartir", core.SecureHeaders(app.RequireSessio(app.CompartirPartida)))

	http.HandleFunc("/llocs", core.SecureHeaders(app.RequireSessio(app.ListLlocsHTTP)))
	http.HandleFunc("/llocs/nou", core.SecureHeaders(app.RequireSessio(app.MostrarNouLloc)))
	http.HandleFunc("/llocs/crear", core.SecureHeaders(app.RequireSessio(app.CrearLloc)))
	http.HandleFunc("/llocs/veure", core.SecureHeaders(app.RequireSessio(app.VeureLloc)))
	http.HandleFunc("/llocs/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarLloc)))
	http.HandleFunc("/llocs/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarLloc)))
	http.HandleFunc("/llocs/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarLloc)))

	http.HandleFunc("/punts", core.SecureHeaders(app.RequireSessio(app.ListPuntsHTTP)))
	http.HandleFunc("/punts/nou", core.SecureHeaders(app.RequireSessio(app.MostrarNouPunt)))
	http.HandleFunc("/punts/crear", core.SecureHeaders(app.RequireSessio(app.CrearPunt)))
	http.HandleFunc("/punts/veure", core.SecureHeaders(app.RequireSessio(app.VeurePunt)))
	http.HandleFunc("/punts/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarPunt)))
	http.HandleFunc("/punts/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarPunt)))
	http.HandleFunc("/punts/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarPunt)))

	http.HandleFunc("/pnjs", core.SecureHeaders(app.RequireSessio(app.ListPNJsHTTP)))
	http.HandleFunc("/pnjs/nou", core.SecureHeaders(app.RequireSessio(app.MostrarNouPNJ)))
	http.HandleFunc("/pnjs/crear", core.SecureHeaders(app.RequireSessio(app.CrearPNJ)))
	http.HandleFunc("/pnjs/veure", core.SecureHeaders(app.RequireSessio(app.VeurePNJ)))
	http.HandleFunc("/pnjs/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarPNJ)))
	http.HandleFunc("/pnjs/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarPNJ)))
	http.HandleFunc("/pnjs/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarPNJ)))

	http.HandleFunc("/objectes", core.SecureHeaders(app.RequireSessio(app.ListObjectesHTTP)))
	http.HandleFunc("/objectes/nou", core.SecureHeaders(app.RequireSessio(app.MostrarNouObjecte)))
	http.HandleFunc("/objectes/crear", core.SecureHeaders(app.RequireSessio(app.CrearObjecte)))
	http.HandleFunc("/objectes/veure", core.SecureHeaders(app.RequireSessio(app.VeureObjecte)))
	http.HandleFunc("/objectes/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarObjecte)))
	http.HandleFunc("/objectes/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarObjecte)))
	http.HandleFunc("/objectes/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarObjecte)))

	http.HandleFunc("/notes", core.SecureHeaders(app.RequireSessio(app.ListNotesHTTP)))
	http.HandleFunc("/llibre-mon", core.SecureHeaders(app.RequireSessio(app.ListLlibreMon)))
	http.HandleFunc("/notes/nova", core.SecureHeaders(app.RequireSessio(app.MostrarNovaNota)))
	http.HandleFunc("/notes/crear", core.SecureHeaders(app.RequireSessio(app.CrearNota)))
	http.HandleFunc("/notes/veure", core.SecureHeaders(app.RequireSessio(app.VeureNota)))
	http.HandleFunc("/notes/editar", core.SecureHeaders(app.RequireSessio(app.MostrarEditarNota)))
	http.HandleFunc("/notes/actualitzar", core.SecureHeaders(app.RequireSessio(app.ActualitzarNota)))
	http.HandleFunc("/notes/eliminar", core.SecureHeaders(app.RequireSessio(app.EliminarNota)))

	// API JSON de generació per IA
	http.HandleFunc("/api/generar", core.SecureHeaders(app.RequireSessio(app.GenerarEntitat)))
	http.HandleFunc("/api/generar-entitats-lloc", core.SecureHeaders(app.RequireSessio(app.GenerarEntitatsLloc)))
	http.HandleFunc("/api/generar-punt", core.SecureHeaders(app.RequireSessio(app.GenerarPunt)))
	http.HandleFunc("/api/generar-pnj", core.SecureHeaders(app.RequireSessio(app.GenerarPNJ)))
	http.HandleFunc("/api/generar-imatge", core.SecureHeaders(app.RequireSessio(app.GenerarImatge)))

	fmt.Printf("Servidor corrent a http://localhost:%s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
