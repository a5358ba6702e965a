package db

import (
	"database/sql"
)

const partidaCols = `s.id, s.campaign_id, s.titol, s.session_number, s.recorded_at, s.duration_seconds,
    s.audio_url, s.audio_size_bytes, s.transcript, s.summary, s.key_moments,
    s.npcs_mentioned, s.locations_mentioned, s.loot_acquired, s.status, s.error_message,
    s.created_at, s.updated_at`

type partidaScanner interface {
	Scan(dest ...interface{}) error
}

func scanPartida(sc partidaScanner) (Partida, error) {
	var p Partida
	var dataJoc, audioURL, transcripcio, resum, moments sql.NullString
	var pnjs, llocs, boti, errMsg, creacio, actualitzacio sql.NullString
	var midaBytes sql.NullInt64
	err := sc.Scan(&p.ID, &p.CampanyaID, &p.Titol, &p.Numero, &dataJoc, &p.DuradaSegons,
		&audioURL, &midaBytes, &transcripcio, &resum, &moments,
		&pnjs, &llocs, &boti, &p.Estat, &errMsg,
		&creacio, &actualitzacio)
	if err != nil {
		return p, err
	}
	p.DataJoc = ntext(dataJoc)
	p.AudioURL = ntext(audioURL)
	p.AudioMidaBytes = nint64(midaBytes)
	p.Transcripcio = ntext(transcripcio)
	p.Resum = ntext(resum)
	p.MomentsClau = ntext(moments)
	p.PNJsEsmentats = decodeLlista(ntext(pnjs))
	p.LlocsEsmentats = decodeLlista(ntext(llocs))
	p.BotiAconseguit = decodeLlista(ntext(boti))
	p.ErrorMissatge = ntext(errMsg)
	p.DataCreacio = ntext(creacio)
	p.DataActualitzacio = ntext(actualitzacio)
	return p, nil
}

// ListPartides retorna les partides de l'usuari; campanyaID 0 = totes.
func (h *sqlHelper) ListPartides(usuariID, campanyaID int) ([]Partida, error) {
	stmt := `SELECT ` + partidaCols + ` FROM sessions s
        JOIN campaigns c ON c.id = s.campaign_id
        WHERE c.user_id = ?`
	args := []interface{}{usuariID}
	if campanyaID > 0 {
		stmt += ` AND s.campaign_id = ?`
		args = append(args, campanyaID)
	}
	stmt += ` ORDER BY s.campaign_id, s.session_number DESC`

	rows, err := h.query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Partida
	for rows.Next() {
		p, err := scanPartida(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetPartida(id, usuariID int) (*Partida, error) {
	stmt := `SELECT ` + partidaCols + ` FROM sessions s
        JOIN campaigns c ON c.id = s.campaign_id
        WHERE s.id = ? AND c.user_id = ?`
	p, err := scanPartida(h.queryRow(stmt, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPartidaPerID llegeix una partida sense abast d'usuari; només per a
// vistes compartides on l'accés el dona el token.
func (h *sqlHelper) GetPartidaPerID(id int) (*Partida, error) {
	stmt := `SELECT ` + partidaCols + ` FROM sessions s WHERE s.id = ?`
	p, err := scanPartida(h.queryRow(stmt, id))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *sqlHelper) CreatePartida(p *Partida) (int, error) {
	stmt := `INSERT INTO sessions (campaign_id, titol, session_number, recorded_at, duration_seconds,
        audio_url, audio_size_bytes, status, created_at, updated_at)
        VALUES (?, ?, ?, ` + h.nowFun + `, ?, ?, ?, ?, ` + h.nowFun + `, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, p.CampanyaID, p.Titol, p.Numero, p.DuradaSegons,
		nullableText(p.AudioURL), nullableID(int(p.AudioMidaBytes)), p.Estat)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (h *sqlHelper) UpdatePartida(p *Partida) error {
	stmt := `UPDATE sessions SET titol = ?, duration_seconds = ?, transcript = ?, summary = ?,
        key_moments = ?, npcs_mentioned = ?, locations_mentioned = ?, loot_acquired = ?,
        updated_at = ` + h.nowFun + ` WHERE id = ?`
	return h.exec(stmt, p.Titol, p.DuradaSegons, nullableText(p.Transcripcio), nullableText(p.Resum),
		nullableText(p.MomentsClau), encodeLlista(p.PNJsEsmentats), encodeLlista(p.LlocsEsmentats),
		encodeLlista(p.BotiAconseguit), p.ID)
}

func (h *sqlHelper) UpdatePartidaAudio(id int, audioURL string, midaBytes int64) error {
	return h.exec(`UPDATE sessions SET audio_url = ?, audio_size_bytes = ?, updated_at = `+h.nowFun+` WHERE id = ?`,
		audioURL, midaBytes, id)
}

func (h *sqlHelper) UpdatePartidaEstat(id int, estat, errorMissatge string) error {
	return h.exec(`UPDATE sessions SET status = ?, error_message = ?, updated_at = `+h.nowFun+` WHERE id = ?`,
		estat, nullableText(errorMissatge), id)
}

func (h *sqlHelper) DeletePartida(id, usuariID int) error {
	// l'abast per usuari passa per la campanya
	stmt := `DELETE FROM sessions WHERE id = ? AND campaign_id IN (SELECT id FROM campaigns WHERE user_id = ?)`
	return h.exec(stmt, id, usuariID)
}

// NextNumeroPartida calcula max+1 dins la campanya. No hi ha cap guarda
// transaccional: dues creacions simultànies poden obtenir el mateix número.
func (h *sqlHelper) NextNumeroPartida(campanyaID int) (int, error) {
	var max sql.NullInt64
	err := h.queryRow(`SELECT MAX(session_number) FROM sessions WHERE campaign_id = ?`, campanyaID).Scan(&max)
	if err != nil {
		return 0, err
	}
	return nint(max) + 1, nil
}

// Partides compartides per enllaç públic

func (h *sqlHelper) CreatePartidaCompartida(pc *PartidaCompartida) (int, error) {
	stmt := `INSERT INTO shared_sessions (session_id, share_token, expires_at, view_count, created_at)
        VALUES (?, ?, ?, 0, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, pc.PartidaID, pc.Token, nullableText(pc.Caducitat))
	if err != nil {
		return 0, err
	}
	pc.ID = id
	return id, nil
}

func (h *sqlHelper) GetPartidaCompartida(token string) (*PartidaCompartida, error) {
	var pc PartidaCompartida
	var caducitat, creacio sql.NullString
	err := h.queryRow(`SELECT id, session_id, share_token, expires_at, view_count, created_at
        FROM shared_sessions WHERE share_token = ?`, token).
		Scan(&pc.ID, &pc.PartidaID, &pc.Token, &caducitat, &pc.Visualitzacions, &creacio)
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	pc.Caducitat = ntext(caducitat)
	pc.DataCreacio = ntext(creacio)
	return &pc, nil
}

func (h *sqlHelper) IncrementaVisualitzacions(token string) error {
	return h.exec(`UPDATE shared_sessions SET view_count = view_count + 1 WHERE share_token = ?`, token)
}
