package db

import (
	"database/sql"
	"errors"
)

var ErrNoTrobat = errors.New("registre no trobat")

const campanyaCols = `id, user_id, nom, descripcio, dm_name, player_names, cover_image_url, cover_thumb_url, created_at, updated_at`

type campanyaScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampanya(sc campanyaScanner) (Campanya, error) {
	var c Campanya
	var descripcio, jugadors, cover, thumb, creacio, actualitzacio sql.NullString
	err := sc.Scan(&c.ID, &c.UsuariID, &c.Nom, &descripcio, &c.NomDM, &jugadors, &cover, &thumb, &creacio, &actualitzacio)
	if err != nil {
		return c, err
	}
	c.Descripcio = ntext(descripcio)
	c.Jugadors = decodeLlista(ntext(jugadors))
	c.CoverImageURL = ntext(cover)
	c.CoverThumbURL = ntext(thumb)
	c.DataCreacio = ntext(creacio)
	c.DataActualitzacio = ntext(actualitzacio)
	return c, nil
}

func (h *sqlHelper) ListCampanyes(usuariID int) ([]Campanya, error) {
	rows, err := h.query(`SELECT `+campanyaCols+` FROM campaigns WHERE user_id = ? ORDER BY nom`, usuariID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Campanya
	for rows.Next() {
		c, err := scanCampanya(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetCampanya(id, usuariID int) (*Campanya, error) {
	c, err := scanCampanya(h.queryRow(`SELECT `+campanyaCols+` FROM campaigns WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (h *sqlHelper) CreateCampanya(c *Campanya) (int, error) {
	stmt := `INSERT INTO campaigns (user_id, nom, descripcio, dm_name, player_names, cover_image_url, cover_thumb_url, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, c.UsuariID, c.Nom, nullableText(c.Descripcio), c.NomDM,
		encodeLlista(c.Jugadors), nullableText(c.CoverImageURL), nullableText(c.CoverThumbURL))
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

func (h *sqlHelper) UpdateCampanya(c *Campanya) error {
	stmt := `UPDATE campaigns SET nom = ?, descripcio = ?, dm_name = ?, player_names = ?, cover_image_url = ?,
        cover_thumb_url = ?, updated_at = ` + h.nowFun + ` WHERE id = ? AND user_id = ?`
	return h.exec(stmt, c.Nom, nullableText(c.Descripcio), c.NomDM, encodeLlista(c.Jugadors),
		nullableText(c.CoverImageURL), nullableText(c.CoverThumbURL), c.ID, c.UsuariID)
}

func (h *sqlHelper) UpdateCampanyaPortada(id, usuariID int, coverURL, thumbURL string) error {
	stmt := `UPDATE campaigns SET cover_image_url = ?, cover_thumb_url = ?,
        updated_at = ` + h.nowFun + ` WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableText(coverURL), nullableText(thumbURL), id, usuariID)
}

func (h *sqlHelper) DeleteCampanya(id, usuariID int) error {
	return h.exec(`DELETE FROM campaigns WHERE id = ? AND user_id = ?`, id, usuariID)
}
