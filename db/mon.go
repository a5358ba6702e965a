package db

import (
	"database/sql"
	"errors"
)

// Món de la campanya: llocs, punts d'interès, PNJs i els seus vincles.

const llocCols = `id, user_id, campaign_id, nom, tipus, regio, clima, poblacio, mida,
    govern, economia, defenses, descripcio, atmosfera, historia, habitants,
    points_of_interest, perills, ganxos, secrets, notes, image_url, map_url, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLloc(sc rowScanner) (Lloc, error) {
	var l Lloc
	var campanya sql.NullInt64
	opt := make([]sql.NullString, 20)
	err := sc.Scan(&l.ID, &l.UsuariID, &campanya, &l.Nom, &opt[0], &opt[1], &opt[2], &opt[3], &opt[4],
		&opt[5], &opt[6], &opt[7], &opt[8], &opt[9], &opt[10], &opt[11],
		&opt[12], &opt[13], &opt[14], &opt[15], &opt[16], &opt[17], &opt[18], &opt[19])
	if err != nil {
		return l, err
	}
	l.CampanyaID = nint(campanya)
	l.Tipus = ntext(opt[0])
	l.Regio = ntext(opt[1])
	l.Clima = ntext(opt[2])
	l.Poblacio = ntext(opt[3])
	l.Mida = ntext(opt[4])
	l.Govern = ntext(opt[5])
	l.Economia = ntext(opt[6])
	l.Defenses = ntext(opt[7])
	l.Descripcio = ntext(opt[8])
	l.Atmosfera = ntext(opt[9])
	l.Historia = ntext(opt[10])
	l.Habitants = ntext(opt[11])
	l.PuntsText = ntext(opt[12])
	l.Perills = ntext(opt[13])
	l.Ganxos = ntext(opt[14])
	l.SecretsLloc = ntext(opt[15])
	l.Notes = ntext(opt[16])
	l.ImatgeURL = ntext(opt[17])
	l.MapaURL = ntext(opt[18])
	l.DataCreacio = ntext(opt[19])
	return l, nil
}

func (h *sqlHelper) ListLlocs(usuariID int) ([]Lloc, error) {
	rows, err := h.query(`SELECT `+llocCols+` FROM locations WHERE user_id = ? ORDER BY nom`, usuariID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Lloc
	for rows.Next() {
		l, err := scanLloc(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetLloc(id, usuariID int) (*Lloc, error) {
	l, err := scanLloc(h.queryRow(`SELECT `+llocCols+` FROM locations WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (h *sqlHelper) CreateLloc(l *Lloc) (int, error) {
	if l.Nom == "" {
		return 0, errors.New("el lloc necessita un nom")
	}
	stmt := `INSERT INTO locations (user_id, campaign_id, nom, tipus, regio, clima, poblacio, mida,
        govern, economia, defenses, descripcio, atmosfera, historia, habitants,
        points_of_interest, perills, ganxos, secrets, notes, image_url, map_url, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, l.UsuariID, nullableID(l.CampanyaID), l.Nom,
		nullableText(l.Tipus), nullableText(l.Regio), nullableText(l.Clima), nullableText(l.Poblacio),
		nullableText(l.Mida), nullableText(l.Govern), nullableText(l.Economia), nullableText(l.Defenses),
		nullableText(l.Descripcio), nullableText(l.Atmosfera), nullableText(l.Historia), nullableText(l.Habitants),
		nullableText(l.PuntsText), nullableText(l.Perills), nullableText(l.Ganxos), nullableText(l.SecretsLloc),
		nullableText(l.Notes), nullableText(l.ImatgeURL), nullableText(l.MapaURL))
	if err != nil {
		return 0, err
	}
	l.ID = id
	return id, nil
}

func (h *sqlHelper) UpdateLloc(l *Lloc) error {
	stmt := `UPDATE locations SET campaign_id = ?, nom = ?, tipus = ?, regio = ?, clima = ?, poblacio = ?,
        mida = ?, govern = ?, economia = ?, defenses = ?, descripcio = ?, atmosfera = ?, historia = ?,
        habitants = ?, points_of_interest = ?, perills = ?, ganxos = ?, secrets = ?, notes = ?,
        image_url = ?, map_url = ? WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableID(l.CampanyaID), l.Nom, nullableText(l.Tipus), nullableText(l.Regio),
		nullableText(l.Clima), nullableText(l.Poblacio), nullableText(l.Mida), nullableText(l.Govern),
		nullableText(l.Economia), nullableText(l.Defenses), nullableText(l.Descripcio), nullableText(l.Atmosfera),
		nullableText(l.Historia), nullableText(l.Habitants), nullableText(l.PuntsText), nullableText(l.Perills),
		nullableText(l.Ganxos), nullableText(l.SecretsLloc), nullableText(l.Notes), nullableText(l.ImatgeURL),
		nullableText(l.MapaURL), l.ID, l.UsuariID)
}

func (h *sqlHelper) DeleteLloc(id, usuariID int) error {
	return h.exec(`DELETE FROM locations WHERE id = ? AND user_id = ?`, id, usuariID)
}

// Punts d'interès

const puntCols = `id, user_id, location_id, campaign_id, nom, tipus, descripcio, serveis, notes, image_url, created_at`

func scanPunt(sc rowScanner) (PuntInteres, error) {
	var p PuntInteres
	var campanya sql.NullInt64
	var tipus, descripcio, serveis, notes, imatge, creacio sql.NullString
	err := sc.Scan(&p.ID, &p.UsuariID, &p.LlocID, &campanya, &p.Nom, &tipus, &descripcio, &serveis, &notes, &imatge, &creacio)
	if err != nil {
		return p, err
	}
	p.CampanyaID = nint(campanya)
	p.Tipus = ntext(tipus)
	p.Descripcio = ntext(descripcio)
	p.Serveis = ntext(serveis)
	p.Notes = ntext(notes)
	p.ImatgeURL = ntext(imatge)
	p.DataCreacio = ntext(creacio)
	return p, nil
}

// ListPunts retorna punts de l'usuari; llocID 0 = tots.
func (h *sqlHelper) ListPunts(usuariID, llocID int) ([]PuntInteres, error) {
	stmt := `SELECT ` + puntCols + ` FROM pois WHERE user_id = ?`
	args := []interface{}{usuariID}
	if llocID > 0 {
		stmt += ` AND location_id = ?`
		args = append(args, llocID)
	}
	stmt += ` ORDER BY nom`

	rows, err := h.query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PuntInteres
	for rows.Next() {
		p, err := scanPunt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetPunt(id, usuariID int) (*PuntInteres, error) {
	p, err := scanPunt(h.queryRow(`SELECT `+puntCols+` FROM pois WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *sqlHelper) CreatePunt(p *PuntInteres) (int, error) {
	if p.Nom == "" {
		return 0, errors.New("el punt d'interès necessita un nom")
	}
	if p.LlocID <= 0 {
		return 0, errors.New("el punt d'interès necessita un lloc")
	}
	stmt := `INSERT INTO pois (user_id, location_id, campaign_id, nom, tipus, descripcio, serveis, notes, image_url, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, p.UsuariID, p.LlocID, nullableID(p.CampanyaID), p.Nom,
		nullableText(p.Tipus), nullableText(p.Descripcio), nullableText(p.Serveis),
		nullableText(p.Notes), nullableText(p.ImatgeURL))
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// UpdatePunt no toca mai location_id: un punt no pot canviar de lloc.
func (h *sqlHelper) UpdatePunt(p *PuntInteres) error {
	stmt := `UPDATE pois SET campaign_id = ?, nom = ?, tipus = ?, descripcio = ?, serveis = ?, notes = ?, image_url = ?
        WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableID(p.CampanyaID), p.Nom, nullableText(p.Tipus), nullableText(p.Descripcio),
		nullableText(p.Serveis), nullableText(p.Notes), nullableText(p.ImatgeURL), p.ID, p.UsuariID)
}

func (h *sqlHelper) DeletePunt(id, usuariID int) error {
	if err := h.exec(`DELETE FROM npc_pois WHERE poi_id = ?`, id); err != nil {
		return err
	}
	return h.exec(`DELETE FROM pois WHERE id = ? AND user_id = ?`, id, usuariID)
}

// AssignaLlocAPunt reassigna un punt preexistent acabat de seleccionar
// manualment al formulari de creació de lloc.
func (h *sqlHelper) AssignaLlocAPunt(puntID, llocID int) error {
	return h.exec(`UPDATE pois SET location_id = ? WHERE id = ?`, llocID, puntID)
}
