package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/marcmoiagese/CronicaCampanyes/db"
)

// ExportarCronica genera un PDF amb la crònica completa de la campanya:
// fitxa, partides en ordre i resums quan n'hi ha.
func (a *App) ExportarCronica(w http.ResponseWriter, r *http.Request, u *db.Usuari) {
	id := formInt(r, "id")
	c, err := a.DB.GetCampanya(id, u.ID)
	if err == db.ErrNoTrobat {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		Errorf("Error carregant campanya %d per exportar: %v", id, err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	partides, err := a.DB.ListPartides(u.ID, id)
	if err != nil {
		Errorf("Error llistant partides per exportar: %v", err)
		http.Error(w, "Error intern", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(c.Nom, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.MultiCell(0, 10, c.Nom, "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	if c.NomDM != "" {
		pdf.MultiCell(0, 6, "Director de joc: "+c.NomDM, "", "C", false)
	}
	if len(c.Jugadors) > 0 {
		pdf.MultiCell(0, 6, "Jugadors: "+strings.Join(c.Jugadors, ", "), "", "C", false)
	}
	pdf.Ln(4)

	if c.Descripcio != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, c.Descripcio, "", "L", false)
		pdf.Ln(4)
	}

	// Les partides surten en ordre invers al llistat (allà són DESC)
	for i := len(partides) - 1; i >= 0; i-- {
		p := partides[i]

		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, fmt.Sprintf("Partida %d: %s", p.Numero, p.Titol), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		if p.DataJoc != "" {
			pdf.MultiCell(0, 5, "Jugada el "+p.DataJoc, "", "L", false)
		}
		if p.Resum != "" {
			pdf.Ln(1)
			pdf.MultiCell(0, 5, p.Resum, "", "L", false)
		}
		if len(p.BotiAconseguit) > 0 {
			pdf.Ln(1)
			pdf.MultiCell(0, 5, "Botí: "+strings.Join(p.BotiAconseguit, ", "), "", "L", false)
		}
		pdf.Ln(4)
	}

	if len(partides) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "Aquesta campanya encara no té cap partida registrada.", "", "L", false)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"cronica-%d.pdf\"", c.ID))

	if err := pdf.Output(w); err != nil {
		Errorf("Error escrivint el PDF de la campanya %d: %v", id, err)
	}
}
