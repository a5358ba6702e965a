package db

import (
	"database/sql"
	"errors"
)

const objecteCols = `id, user_id, campaign_id, nom, tipus, rarity, valor, pes,
    attunement, attunement_by, charges, cursed, damage, damage_type, ac_bonus,
    descripcio, properties, historia, lore, notes, image_url, created_at`

func scanObjecte(sc rowScanner) (Objecte, error) {
	var o Objecte
	var campanya, carregues, bonusCA sql.NullInt64
	var sintonia, maleit sql.NullBool
	opt := make([]sql.NullString, 13)
	err := sc.Scan(&o.ID, &o.UsuariID, &campanya, &o.Nom, &opt[0], &opt[1], &opt[2], &opt[3],
		&sintonia, &opt[4], &carregues, &maleit, &opt[5], &opt[6], &bonusCA,
		&opt[7], &opt[8], &opt[9], &opt[10], &opt[11], &opt[12], &o.DataCreacio)
	if err != nil {
		return o, err
	}
	o.CampanyaID = nint(campanya)
	o.Tipus = ntext(opt[0])
	o.Raresa = ntext(opt[1])
	o.Valor = ntext(opt[2])
	o.Pes = ntext(opt[3])
	o.Sintonia = sintonia.Valid && sintonia.Bool
	o.SintoniaPer = ntext(opt[4])
	o.Carregues = nint(carregues)
	o.Maleit = maleit.Valid && maleit.Bool
	o.Dany = ntext(opt[5])
	o.TipusDany = ntext(opt[6])
	o.BonusCA = nint(bonusCA)
	o.Descripcio = ntext(opt[7])
	o.Propietats = ntext(opt[8])
	o.Historia = ntext(opt[9])
	o.Llegenda = ntext(opt[10])
	o.Notes = ntext(opt[11])
	o.ImatgeURL = ntext(opt[12])
	return o, nil
}

// ListObjectes retorna els objectes de l'usuari; campanyaID 0 = tots.
func (h *sqlHelper) ListObjectes(usuariID, campanyaID int) ([]Objecte, error) {
	stmt := `SELECT ` + objecteCols + ` FROM items WHERE user_id = ?`
	args := []interface{}{usuariID}
	if campanyaID > 0 {
		stmt += ` AND campaign_id = ?`
		args = append(args, campanyaID)
	}
	stmt += ` ORDER BY nom`

	rows, err := h.query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Objecte
	for rows.Next() {
		o, err := scanObjecte(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetObjecte(id, usuariID int) (*Objecte, error) {
	o, err := scanObjecte(h.queryRow(`SELECT `+objecteCols+` FROM items WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (h *sqlHelper) CreateObjecte(o *Objecte) (int, error) {
	if o.Nom == "" {
		return 0, errors.New("l'objecte necessita un nom")
	}
	stmt := `INSERT INTO items (user_id, campaign_id, nom, tipus, rarity, valor, pes,
        attunement, attunement_by, charges, cursed, damage, damage_type, ac_bonus,
        descripcio, properties, historia, lore, notes, image_url, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, o.UsuariID, nullableID(o.CampanyaID), o.Nom,
		nullableText(o.Tipus), nullableText(o.Raresa), nullableText(o.Valor), nullableText(o.Pes),
		o.Sintonia, nullableText(o.SintoniaPer), o.Carregues, o.Maleit,
		nullableText(o.Dany), nullableText(o.TipusDany), o.BonusCA,
		nullableText(o.Descripcio), nullableText(o.Propietats), nullableText(o.Historia),
		nullableText(o.Llegenda), nullableText(o.Notes), nullableText(o.ImatgeURL))
	if err != nil {
		return 0, err
	}
	o.ID = id
	return id, nil
}

func (h *sqlHelper) UpdateObjecte(o *Objecte) error {
	stmt := `UPDATE items SET campaign_id = ?, nom = ?, tipus = ?, rarity = ?, valor = ?, pes = ?,
        attunement = ?, attunement_by = ?, charges = ?, cursed = ?, damage = ?, damage_type = ?,
        ac_bonus = ?, descripcio = ?, properties = ?, historia = ?, lore = ?, notes = ?, image_url = ?
        WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableID(o.CampanyaID), o.Nom, nullableText(o.Tipus), nullableText(o.Raresa),
		nullableText(o.Valor), nullableText(o.Pes), o.Sintonia, nullableText(o.SintoniaPer),
		o.Carregues, o.Maleit, nullableText(o.Dany), nullableText(o.TipusDany), o.BonusCA,
		nullableText(o.Descripcio), nullableText(o.Propietats), nullableText(o.Historia),
		nullableText(o.Llegenda), nullableText(o.Notes), nullableText(o.ImatgeURL),
		o.ID, o.UsuariID)
}

func (h *sqlHelper) DeleteObjecte(id, usuariID int) error {
	return h.exec(`DELETE FROM items WHERE id = ? AND user_id = ?`, id, usuariID)
}
