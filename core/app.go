package core

import (
	"github.com/marcmoiagese/CronicaCampanyes/cnf"
	"github.com/marcmoiagese/CronicaCampanyes/db"
	"github.com/marcmoiagese/CronicaCampanyes/ia"
	"github.com/marcmoiagese/CronicaCampanyes/magatzem"
)

// App encapsula dependències compartides per evitar reobrir recursos per petició.
type App struct {
	Cfg      *cnf.AppConfig
	DB       db.DB
	IA       *ia.Client
	Magatzem *magatzem.Client
}

func NewApp(cfg *cnf.AppConfig, database db.DB, iaClient *ia.Client, mgz *magatzem.Client) *App {
	return &App{
		Cfg:      cfg,
		DB:       database,
		IA:       iaClient,
		Magatzem: mgz,
	}
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
