package db

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// DB – contracte únic que fan servir core i els tests. Cada motor (sqlite,
// postgres, mysql) el satisfà a través del sqlHelper compartit.
type DB interface {
	Connect() error
	Close()
	DB() *sql.DB
	Exec(query string, args ...interface{}) (int64, error)

	// Usuaris i sessions web
	InsertUsuari(u *Usuari) (int, error)
	GetUsuariPerEmail(email string) (*Usuari, error)
	GetUsuariPerID(id int) (*Usuari, error)
	ExisteixUsuariPerEmail(email string) (bool, error)
	DesaTokenActivacio(email, token string) error
	ActivarUsuari(token string) error
	AutenticaUsuari(email string) (*Usuari, error)
	DesaSessioWeb(sessioID string, usuariID int, caducitat string) error
	GetUsuariSessioWeb(sessioID string) (*Usuari, error)
	EliminaSessioWeb(sessioID string) error

	// Campanyes
	ListCampanyes(usuariID int) ([]Campanya, error)
	GetCampanya(id, usuariID int) (*Campanya, error)
	CreateCampanya(c *Campanya) (int, error)
	UpdateCampanya(c *Campanya) error
	UpdateCampanyaPortada(id, usuariID int, coverURL, thumbURL string) error
	DeleteCampanya(id, usuariID int) error

	// Partides
	ListPartides(usuariID, campanyaID int) ([]Partida, error)
	GetPartida(id, usuariID int) (*Partida, error)
	GetPartidaPerID(id int) (*Partida, error)
	CreatePartida(p *Partida) (int, error)
	UpdatePartida(p *Partida) error
	UpdatePartidaAudio(id int, audioURL string, midaBytes int64) error
	UpdatePartidaEstat(id int, estat, errorMissatge string) error
	DeletePartida(id, usuariID int) error
	NextNumeroPartida(campanyaID int) (int, error)
	CreatePartidaCompartida(pc *PartidaCompartida) (int, error)
	GetPartidaCompartida(token string) (*PartidaCompartida, error)
	IncrementaVisualitzacions(token string) error

	// Llocs
	ListLlocs(usuariID int) ([]Lloc, error)
	GetLloc(id, usuariID int) (*Lloc, error)
	CreateLloc(l *Lloc) (int, error)
	UpdateLloc(l *Lloc) error
	DeleteLloc(id, usuariID int) error

	// Punts d'interès
	ListPunts(usuariID, llocID int) ([]PuntInteres, error)
	GetPunt(id, usuariID int) (*PuntInteres, error)
	CreatePunt(p *PuntInteres) (int, error)
	UpdatePunt(p *PuntInteres) error
	DeletePunt(id, usuariID int) error
	AssignaLlocAPunt(puntID, llocID int) error

	// PNJs i vincles
	ListPNJs(usuariID, campanyaID int) ([]PNJ, error)
	GetPNJ(id, usuariID int) (*PNJ, error)
	CreatePNJ(p *PNJ) (int, error)
	UpdatePNJ(p *PNJ) error
	DeletePNJ(id, usuariID int) error
	AssignaLlocAPNJ(pnjID, llocID int, nomLloc string) error
	VinculaPNJPunt(pnjID, puntID int, rol string) error
	DesvinculaPNJPunt(pnjID, puntID int) error
	ListPNJsDePunt(puntID int) ([]PNJVinculat, error)
	ComptaPNJsDePunt(puntID int) (int, error)

	// Objectes
	ListObjectes(usuariID, campanyaID int) ([]Objecte, error)
	GetObjecte(id, usuariID int) (*Objecte, error)
	CreateObjecte(o *Objecte) (int, error)
	UpdateObjecte(o *Objecte) error
	DeleteObjecte(id, usuariID int) error

	// Notes
	ListNotes(usuariID int, nomesLlibreMon bool) ([]Nota, error)
	GetNota(id, usuariID int) (*Nota, error)
	CreateNota(n *Nota) (int, error)
	UpdateNota(n *Nota) error
	DeleteNota(id, usuariID int) error

	// Ús mensual
	GetUsMensual(usuariID int, mes string) (*UsMensual, error)
	IncrementaUs(usuariID int, mes string, partides, resums, minuts int, mb float64) error
}

// NewDB obre la connexió segons el motor configurat i, si cal, recrea l'esquema.
func NewDB(config map[string]string) (DB, error) {
	var dbInstance DB
	engine := config["DB_ENGINE"]

	switch engine {
	case "sqlite":
		dbInstance = &SQLite{Path: config["DB_PATH"]}
	case "postgres":
		dbInstance = &PostgreSQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	case "mysql":
		dbInstance = &MySQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	default:
		return nil, fmt.Errorf("motor de BD desconegut: %s", engine)
	}

	if err := dbInstance.Connect(); err != nil {
		return nil, err
	}

	if config["RECREADB"] == "true" {
		sqlFile := config["SQL_FILE"]
		if sqlFile == "" {
			sqlFile = getSQLFilePath(engine)
		}
		if err := CreateDatabaseFromSQL(sqlFile, engine, dbInstance); err != nil {
			return nil, fmt.Errorf("error recreant BD amb %s: %v", engine, err)
		}
	}

	return dbInstance, nil
}

// Obtenir el path del fitxer SQL segons el motor
func getSQLFilePath(engine string) string {
	switch engine {
	case "sqlite":
		return "db/SQLite.sql"
	case "postgres":
		return "db/PostgreSQL.sql"
	case "mysql":
		return "db/MySQL.sql"
	default:
		return ""
	}
}

// CreateDatabaseFromSQL executa totes les sentències d'un fitxer SQL dins
// d'una transacció. Ignora comentaris i possibles BEGIN/COMMIT del fitxer.
func CreateDatabaseFromSQL(sqlFile, engine string, db DB) error {
	data, err := os.ReadFile(sqlFile)
	if err != nil {
		return fmt.Errorf("no s'ha pogut llegir el fitxer SQL: %w", err)
	}

	raw := string(data)

	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") || trimmed == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	cleanSQL := b.String()

	parts := strings.Split(cleanSQL, ";")

	beginStmt := "BEGIN"
	if engine == "sqlite" {
		beginStmt = "BEGIN IMMEDIATE"
	}

	if _, err := db.Exec(beginStmt); err != nil {
		return fmt.Errorf("no s'ha pogut començar transacció: %w", err)
	}
	defer func() {
		// en cas d'error, el caller retornarà; aquí fem un ROLLBACK best-effort
		_, _ = db.Exec("ROLLBACK")
	}()

	if engine == "sqlite" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("error activant foreign_keys: %w", err)
		}
	}

	for _, stmt := range parts {
		q := strings.TrimSpace(stmt)
		if q == "" {
			continue
		}
		low := strings.ToLower(q)
		if low == "begin" || low == "commit" || strings.HasPrefix(low, "begin ") || strings.HasPrefix(low, "commit ") {
			continue
		}

		if _, err := db.Exec(q); err != nil {
			snip := q
			if len(snip) > 120 {
				snip = snip[:120] + " ..."
			}
			return fmt.Errorf("error executant '%s': %w", snip, err)
		}
	}

	if _, err := db.Exec("COMMIT"); err != nil {
		return fmt.Errorf("error fent COMMIT: %w", err)
	}

	return nil
}
