package db

import "testing"

func creaCampanyaTest(t *testing.T, d DB, usuariID int) *Campanya {
	t.Helper()
	c := &Campanya{
		UsuariID: usuariID,
		Nom:      "La Tomba dels Reis",
		Jugadors: []string{"Arnau", "Laia"},
	}
	if _, err := d.CreateCampanya(c); err != nil {
		t.Fatalf("CreateCampanya: %v", err)
	}
	return c
}

// TestNumeracioPartides comprova que el número de partida sempre és MAX+1
// dins de la campanya, començant per 1.
func TestNumeracioPartides(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "numeracio@example.com")
	c := creaCampanyaTest(t, d, u.ID)

	num, err := d.NextNumeroPartida(c.ID)
	if err != nil {
		t.Fatalf("NextNumeroPartida: %v", err)
	}
	if num != 1 {
		t.Errorf("primera partida = %d, vull 1", num)
	}

	p := &Partida{CampanyaID: c.ID, Titol: "Partida 1", Numero: num, Estat: "recording"}
	if _, err := d.CreatePartida(p); err != nil {
		t.Fatalf("CreatePartida: %v", err)
	}

	num, err = d.NextNumeroPartida(c.ID)
	if err != nil {
		t.Fatalf("NextNumeroPartida: %v", err)
	}
	if num != 2 {
		t.Errorf("segona partida = %d, vull 2", num)
	}

	// Una altra campanya comença de nou a 1.
	c2 := creaCampanyaTest(t, d, u.ID)
	num, err = d.NextNumeroPartida(c2.ID)
	if err != nil {
		t.Fatalf("NextNumeroPartida (campanya nova): %v", err)
	}
	if num != 1 {
		t.Errorf("primera partida de campanya nova = %d, vull 1", num)
	}
}

// TestPartidaCompartida cobreix l'enllaç públic: token, comptador de visites
// i lectura de la partida sense abast d'usuari.
func TestPartidaCompartida(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "compartida@example.com")
	c := creaCampanyaTest(t, d, u.ID)

	p := &Partida{CampanyaID: c.ID, Titol: "Nit al pantà", Numero: 1, Estat: "completed"}
	if _, err := d.CreatePartida(p); err != nil {
		t.Fatalf("CreatePartida: %v", err)
	}

	pc := &PartidaCompartida{PartidaID: p.ID, Token: "t0k3npublic"}
	if _, err := d.CreatePartidaCompartida(pc); err != nil {
		t.Fatalf("CreatePartidaCompartida: %v", err)
	}

	trobada, err := d.GetPartidaCompartida("t0k3npublic")
	if err != nil {
		t.Fatalf("GetPartidaCompartida: %v", err)
	}
	if trobada.PartidaID != p.ID {
		t.Errorf("PartidaID = %d, vull %d", trobada.PartidaID, p.ID)
	}
	if trobada.Visualitzacions != 0 {
		t.Errorf("Visualitzacions inicials = %d, vull 0", trobada.Visualitzacions)
	}

	if err := d.IncrementaVisualitzacions("t0k3npublic"); err != nil {
		t.Fatalf("IncrementaVisualitzacions: %v", err)
	}
	trobada, _ = d.GetPartidaCompartida("t0k3npublic")
	if trobada.Visualitzacions != 1 {
		t.Errorf("Visualitzacions = %d, vull 1", trobada.Visualitzacions)
	}

	// La vista compartida llegeix la partida pel seu id, sense usuari.
	partida, err := d.GetPartidaPerID(p.ID)
	if err != nil {
		t.Fatalf("GetPartidaPerID: %v", err)
	}
	if partida.Titol != "Nit al pantà" {
		t.Errorf("Titol = %q, vull 'Nit al pantà'", partida.Titol)
	}

	if _, err := d.GetPartidaCompartida("inexistent"); err != ErrNoTrobat {
		t.Errorf("token inexistent = %v, vull ErrNoTrobat", err)
	}
}
