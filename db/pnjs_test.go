package db

import "testing"

func creaLlocTest(t *testing.T, d DB, usuariID int) *Lloc {
	t.Helper()
	l := &Lloc{UsuariID: usuariID, Nom: "Port de Boirafreda", Tipus: "city"}
	if _, err := d.CreateLloc(l); err != nil {
		t.Fatalf("CreateLloc: %v", err)
	}
	return l
}

func creaPuntTest(t *testing.T, d DB, usuariID, llocID int) *PuntInteres {
	t.Helper()
	p := &PuntInteres{UsuariID: usuariID, LlocID: llocID, Nom: "La Gavina Borratxa", Tipus: "tavern"}
	if _, err := d.CreatePunt(p); err != nil {
		t.Fatalf("CreatePunt: %v", err)
	}
	return p
}

// TestVinclesPNJPunt cobreix la taula de vincles: alta, llistat amb rol,
// recompte i neteja en esborrar el PNJ.
func TestVinclesPNJPunt(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "vincles@example.com")
	l := creaLlocTest(t, d, u.ID)
	punt := creaPuntTest(t, d, u.ID, l.ID)

	pnj := &PNJ{UsuariID: u.ID, PuntID: punt.ID, Nom: "Ruby", Raca: "Halfling", TipusPNJ: "Bartender"}
	if _, err := d.CreatePNJ(pnj); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}
	if err := d.VinculaPNJPunt(pnj.ID, punt.ID, "Bartender"); err != nil {
		t.Fatalf("VinculaPNJPunt: %v", err)
	}

	vinculats, err := d.ListPNJsDePunt(punt.ID)
	if err != nil {
		t.Fatalf("ListPNJsDePunt: %v", err)
	}
	if len(vinculats) != 1 {
		t.Fatalf("vinculats = %d, vull 1", len(vinculats))
	}
	if vinculats[0].PNJ.Nom != "Ruby" || vinculats[0].Rol != "Bartender" {
		t.Errorf("vincle = (%q, %q), vull (Ruby, Bartender)", vinculats[0].PNJ.Nom, vinculats[0].Rol)
	}

	n, err := d.ComptaPNJsDePunt(punt.ID)
	if err != nil || n != 1 {
		t.Fatalf("ComptaPNJsDePunt = (%d, %v), vull (1, nil)", n, err)
	}

	// Esborrar el PNJ ha de netejar també les files de vincle.
	if err := d.DeletePNJ(pnj.ID, u.ID); err != nil {
		t.Fatalf("DeletePNJ: %v", err)
	}
	n, err = d.ComptaPNJsDePunt(punt.ID)
	if err != nil || n != 0 {
		t.Errorf("ComptaPNJsDePunt després d'esborrar = (%d, %v), vull (0, nil)", n, err)
	}
}

// TestDeletePuntNetejaVincles: esborrar el punt també elimina els vincles,
// però el PNJ sobreviu.
func TestDeletePuntNetejaVincles(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "puntfora@example.com")
	l := creaLlocTest(t, d, u.ID)
	punt := creaPuntTest(t, d, u.ID, l.ID)

	pnj := &PNJ{UsuariID: u.ID, Nom: "Galius"}
	if _, err := d.CreatePNJ(pnj); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}
	if err := d.VinculaPNJPunt(pnj.ID, punt.ID, "Guard"); err != nil {
		t.Fatalf("VinculaPNJPunt: %v", err)
	}

	if err := d.DeletePunt(punt.ID, u.ID); err != nil {
		t.Fatalf("DeletePunt: %v", err)
	}

	if _, err := d.GetPNJ(pnj.ID, u.ID); err != nil {
		t.Errorf("el PNJ hauria de sobreviure a l'esborrat del punt: %v", err)
	}
}

// TestAssignaLlocAPNJ: la selecció manual al formulari de lloc vincula el PNJ
// i actualitza el text lliure d'ubicació.
func TestAssignaLlocAPNJ(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "assigna@example.com")
	l := creaLlocTest(t, d, u.ID)

	pnj := &PNJ{UsuariID: u.ID, Nom: "Vell Tomàs"}
	if _, err := d.CreatePNJ(pnj); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}

	if err := d.AssignaLlocAPNJ(pnj.ID, l.ID, l.Nom); err != nil {
		t.Fatalf("AssignaLlocAPNJ: %v", err)
	}

	trobat, err := d.GetPNJ(pnj.ID, u.ID)
	if err != nil {
		t.Fatalf("GetPNJ: %v", err)
	}
	if trobat.LlocID != l.ID {
		t.Errorf("LlocID = %d, vull %d", trobat.LlocID, l.ID)
	}
	if trobat.Ubicacio != l.Nom {
		t.Errorf("Ubicacio = %q, vull %q", trobat.Ubicacio, l.Nom)
	}
}

// TestCreatePNJValidacions: el nom és obligatori i l'estat per defecte és alive.
func TestCreatePNJValidacions(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "validacio@example.com")

	if _, err := d.CreatePNJ(&PNJ{UsuariID: u.ID}); err == nil {
		t.Error("CreatePNJ sense nom hauria de fallar")
	}

	pnj := &PNJ{UsuariID: u.ID, Nom: "Sense Estat"}
	if _, err := d.CreatePNJ(pnj); err != nil {
		t.Fatalf("CreatePNJ: %v", err)
	}
	trobat, err := d.GetPNJ(pnj.ID, u.ID)
	if err != nil {
		t.Fatalf("GetPNJ: %v", err)
	}
	if trobat.Estat != "alive" {
		t.Errorf("Estat per defecte = %q, vull alive", trobat.Estat)
	}
}
