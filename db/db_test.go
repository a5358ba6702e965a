package db

import (
	"path/filepath"
	"testing"
)

// newTestDB obre una BD sqlite neta en un directori temporal i hi carrega
// l'esquema complet.
func newTestDB(t *testing.T) DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	d, err := NewDB(map[string]string{
		"DB_ENGINE": "sqlite",
		"DB_PATH":   path,
	})
	if err != nil {
		t.Fatalf("NewDB ha fallat: %v", err)
	}
	t.Cleanup(d.Close)

	if err := CreateDatabaseFromSQL("SQLite.sql", "sqlite", d); err != nil {
		t.Fatalf("no puc carregar l'esquema: %v", err)
	}
	return d
}

func creaUsuariTest(t *testing.T, d DB, email string) *Usuari {
	t.Helper()
	u := &Usuari{
		Usuari:          "prova",
		Nom:             "Usuari de Prova",
		Email:           email,
		Contrasenya:     []byte("$2a$10$hashinventatperaltest000000000000000000000000000000000"),
		TierSubscripcio: "free",
		Actiu:           true,
	}
	if _, err := d.InsertUsuari(u); err != nil {
		t.Fatalf("InsertUsuari ha fallat: %v", err)
	}
	return u
}

// TestUsuariCicleDeVida cobreix registre, activació per token i autenticació.
func TestUsuariCicleDeVida(t *testing.T) {
	d := newTestDB(t)

	u := &Usuari{
		Usuari:          "dmarta",
		Nom:             "Marta",
		Email:           "marta@example.com",
		Contrasenya:     []byte("hash"),
		TierSubscripcio: "free",
		Actiu:           false,
	}
	if _, err := d.InsertUsuari(u); err != nil {
		t.Fatalf("InsertUsuari: %v", err)
	}

	existeix, err := d.ExisteixUsuariPerEmail("marta@example.com")
	if err != nil || !existeix {
		t.Fatalf("ExisteixUsuariPerEmail = (%v, %v), vull (true, nil)", existeix, err)
	}

	// Sense activar, l'autenticació ha de fallar.
	if _, err := d.AutenticaUsuari("marta@example.com"); err == nil {
		t.Error("AutenticaUsuari hauria de fallar amb un compte inactiu")
	}

	if err := d.DesaTokenActivacio("marta@example.com", "tokenprova"); err != nil {
		t.Fatalf("DesaTokenActivacio: %v", err)
	}
	if err := d.ActivarUsuari("tokenprova"); err != nil {
		t.Fatalf("ActivarUsuari: %v", err)
	}
	if err := d.ActivarUsuari("tokenprova"); err != ErrUsuariNoTrobat {
		t.Errorf("reactivar amb el mateix token = %v, vull ErrUsuariNoTrobat", err)
	}

	actiu, err := d.AutenticaUsuari("marta@example.com")
	if err != nil {
		t.Fatalf("AutenticaUsuari després d'activar: %v", err)
	}
	if !actiu.Actiu {
		t.Error("l'usuari hauria de quedar marcat com a actiu")
	}
}

// TestSessioWeb comprova el cicle cookie -> usuari amb caducitat.
func TestSessioWeb(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "sessions@example.com")

	if err := d.DesaSessioWeb("sessio123", u.ID, "2999-01-01 00:00:00"); err != nil {
		t.Fatalf("DesaSessioWeb: %v", err)
	}

	trobat, err := d.GetUsuariSessioWeb("sessio123")
	if err != nil {
		t.Fatalf("GetUsuariSessioWeb: %v", err)
	}
	if trobat.ID != u.ID {
		t.Errorf("sessió resol a usuari %d, vull %d", trobat.ID, u.ID)
	}

	// Una sessió caducada no ha de resoldre mai.
	if err := d.DesaSessioWeb("caducada", u.ID, "2000-01-01 00:00:00"); err != nil {
		t.Fatalf("DesaSessioWeb: %v", err)
	}
	if _, err := d.GetUsuariSessioWeb("caducada"); err == nil {
		t.Error("una sessió caducada no hauria de resoldre cap usuari")
	}

	if err := d.EliminaSessioWeb("sessio123"); err != nil {
		t.Fatalf("EliminaSessioWeb: %v", err)
	}
	if _, err := d.GetUsuariSessioWeb("sessio123"); err == nil {
		t.Error("la sessió eliminada encara resol un usuari")
	}
}
