package db

import "testing"

// TestUsMensual: la fila es crea a demanda i els deltes s'acumulen.
func TestUsMensual(t *testing.T) {
	d := newTestDB(t)
	u := creaUsuariTest(t, d, "tracking@example.com")

	// Sense cap fila, es retorna un zero amb usuari i mes informats.
	us, err := d.GetUsMensual(u.ID, "2026-09")
	if err != nil {
		t.Fatalf("GetUsMensual sense fila: %v", err)
	}
	if us.PartidesGravades != 0 || us.ResumsIA != 0 {
		t.Errorf("ús inicial = (%d, %d), vull (0, 0)", us.PartidesGravades, us.ResumsIA)
	}
	if us.UsuariID != u.ID || us.Mes != "2026-09" {
		t.Errorf("fila buida mal informada: %+v", us)
	}

	if err := d.IncrementaUs(u.ID, "2026-09", 1, 0, 45, 120.5); err != nil {
		t.Fatalf("IncrementaUs (primera): %v", err)
	}
	if err := d.IncrementaUs(u.ID, "2026-09", 1, 1, 30, 80.0); err != nil {
		t.Fatalf("IncrementaUs (segona): %v", err)
	}

	us, err = d.GetUsMensual(u.ID, "2026-09")
	if err != nil {
		t.Fatalf("GetUsMensual: %v", err)
	}
	if us.PartidesGravades != 2 {
		t.Errorf("PartidesGravades = %d, vull 2", us.PartidesGravades)
	}
	if us.ResumsIA != 1 {
		t.Errorf("ResumsIA = %d, vull 1", us.ResumsIA)
	}
	if us.MinutsTranscripcio != 75 {
		t.Errorf("MinutsTranscripcio = %d, vull 75", us.MinutsTranscripcio)
	}
	if us.EmmagatzematgeMB < 200.4 || us.EmmagatzematgeMB > 200.6 {
		t.Errorf("EmmagatzematgeMB = %f, vull ~200.5", us.EmmagatzematgeMB)
	}

	// Cada mes té la seva fila.
	us, err = d.GetUsMensual(u.ID, "2026-10")
	if err != nil {
		t.Fatalf("GetUsMensual (mes nou): %v", err)
	}
	if us.PartidesGravades != 0 {
		t.Errorf("el mes nou hauria de començar a zero, tinc %d", us.PartidesGravades)
	}
}
