package db

import (
	"database/sql"
	"errors"
)

const notaCols = `id, user_id, campaign_id, titol, contingut, tags, is_lorebook, created_at, updated_at`

func scanNota(sc rowScanner) (Nota, error) {
	var n Nota
	var campanya sql.NullInt64
	var contingut, etiquetes, creacio, actualitzacio sql.NullString
	err := sc.Scan(&n.ID, &n.UsuariID, &campanya, &n.Titol, &contingut, &etiquetes, &n.EsLlibreMon, &creacio, &actualitzacio)
	if err != nil {
		return n, err
	}
	n.CampanyaID = nint(campanya)
	n.Contingut = ntext(contingut)
	n.Etiquetes = decodeLlista(ntext(etiquetes))
	n.DataCreacio = ntext(creacio)
	n.DataActualitzacio = ntext(actualitzacio)
	return n, nil
}

// ListNotes retorna notes personals o entrades del llibre del món, segons el flag.
func (h *sqlHelper) ListNotes(usuariID int, nomesLlibreMon bool) ([]Nota, error) {
	stmt := `SELECT ` + notaCols + ` FROM notes WHERE user_id = ? AND is_lorebook = ? ORDER BY updated_at DESC`
	rows, err := h.query(stmt, usuariID, nomesLlibreMon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Nota
	for rows.Next() {
		n, err := scanNota(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetNota(id, usuariID int) (*Nota, error) {
	n, err := scanNota(h.queryRow(`SELECT `+notaCols+` FROM notes WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (h *sqlHelper) CreateNota(n *Nota) (int, error) {
	if n.Titol == "" {
		return 0, errors.New("la nota necessita un títol")
	}
	stmt := `INSERT INTO notes (user_id, campaign_id, titol, contingut, tags, is_lorebook, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ` + h.nowFun + `, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, n.UsuariID, nullableID(n.CampanyaID), n.Titol,
		nullableText(n.Contingut), encodeLlista(n.Etiquetes), n.EsLlibreMon)
	if err != nil {
		return 0, err
	}
	n.ID = id
	return id, nil
}

func (h *sqlHelper) UpdateNota(n *Nota) error {
	stmt := `UPDATE notes SET campaign_id = ?, titol = ?, contingut = ?, tags = ?, is_lorebook = ?,
        updated_at = ` + h.nowFun + ` WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableID(n.CampanyaID), n.Titol, nullableText(n.Contingut),
		encodeLlista(n.Etiquetes), n.EsLlibreMon, n.ID, n.UsuariID)
}

func (h *sqlHelper) DeleteNota(id, usuariID int) error {
	return h.exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, usuariID)
}
