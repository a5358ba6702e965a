package db

import (
	"database/sql"
	"errors"
	"strings"
)

const pnjCols = `id, user_id, campaign_id, location_id, poi_id, nom, npc_type, race, class_or_occupation,
    nivell, alignment, faction, status, armor_class, hit_points, speed, challenge_rating,
    ability_scores, skills, languages, abilities, appearance, personality, voice_mannerisms,
    descripcio, backstory, goals, secrets, ubicacio, relationship, notes, image_url, created_at`

func scanPNJ(sc rowScanner) (PNJ, error) {
	var p PNJ
	var campanya, lloc, punt, nivell, classeArmadura sql.NullInt64
	opt := make([]sql.NullString, 25)
	err := sc.Scan(&p.ID, &p.UsuariID, &campanya, &lloc, &punt, &p.Nom, &opt[0], &opt[1], &opt[2],
		&nivell, &opt[3], &opt[4], &opt[5], &classeArmadura, &opt[6], &opt[7], &opt[8],
		&opt[9], &opt[10], &opt[11], &opt[12], &opt[13], &opt[14], &opt[15],
		&opt[16], &opt[17], &opt[18], &opt[19], &opt[20], &opt[21], &opt[22], &opt[23], &opt[24])
	if err != nil {
		return p, err
	}
	p.CampanyaID = nint(campanya)
	p.LlocID = nint(lloc)
	p.PuntID = nint(punt)
	p.Nivell = nint(nivell)
	p.ClasseArmadura = nint(classeArmadura)
	p.TipusPNJ = ntext(opt[0])
	p.Raca = ntext(opt[1])
	p.ClasseOcupacio = ntext(opt[2])
	p.Aliniament = ntext(opt[3])
	p.Faccio = ntext(opt[4])
	p.Estat = ntext(opt[5])
	p.PuntsVida = ntext(opt[6])
	p.Velocitat = ntext(opt[7])
	p.ValorDesafiament = ntext(opt[8])
	p.Caracteristiques = ntext(opt[9])
	p.Habilitats = ntext(opt[10])
	p.Idiomes = ntext(opt[11])
	p.Aptituds = ntext(opt[12])
	p.Aparenca = ntext(opt[13])
	p.Personalitat = ntext(opt[14])
	p.VeuManies = ntext(opt[15])
	p.Descripcio = ntext(opt[16])
	p.Rerefons = ntext(opt[17])
	p.Objectius = ntext(opt[18])
	p.SecretsPNJ = ntext(opt[19])
	p.Ubicacio = ntext(opt[20])
	p.Relacio = ntext(opt[21])
	p.Notes = ntext(opt[22])
	p.ImatgeURL = ntext(opt[23])
	p.DataCreacio = ntext(opt[24])
	return p, nil
}

// ListPNJs retorna els PNJs de l'usuari; campanyaID 0 = tots.
func (h *sqlHelper) ListPNJs(usuariID, campanyaID int) ([]PNJ, error) {
	stmt := `SELECT ` + pnjCols + ` FROM npcs WHERE user_id = ?`
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

	var result []PNJ
	for rows.Next() {
		p, err := scanPNJ(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (h *sqlHelper) GetPNJ(id, usuariID int) (*PNJ, error) {
	p, err := scanPNJ(h.queryRow(`SELECT `+pnjCols+` FROM npcs WHERE id = ? AND user_id = ?`, id, usuariID))
	if err == sql.ErrNoRows {
		return nil, ErrNoTrobat
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *sqlHelper) CreatePNJ(p *PNJ) (int, error) {
	if p.Nom == "" {
		return 0, errors.New("el PNJ necessita un nom")
	}
	if p.Estat == "" {
		p.Estat = "alive"
	}
	stmt := `INSERT INTO npcs (user_id, campaign_id, location_id, poi_id, nom, npc_type, race, class_or_occupation,
        nivell, alignment, faction, status, armor_class, hit_points, speed, challenge_rating,
        ability_scores, skills, languages, abilities, appearance, personality, voice_mannerisms,
        descripcio, backstory, goals, secrets, ubicacio, relationship, notes, image_url, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `)`
	id, err := h.insertID(stmt, p.UsuariID, nullableID(p.CampanyaID), nullableID(p.LlocID), nullableID(p.PuntID),
		p.Nom, nullableText(p.TipusPNJ), nullableText(p.Raca), nullableText(p.ClasseOcupacio),
		nullableID(p.Nivell), nullableText(p.Aliniament), nullableText(p.Faccio), p.Estat,
		nullableID(p.ClasseArmadura), nullableText(p.PuntsVida), nullableText(p.Velocitat), nullableText(p.ValorDesafiament),
		nullableText(p.Caracteristiques), nullableText(p.Habilitats), nullableText(p.Idiomes), nullableText(p.Aptituds),
		nullableText(p.Aparenca), nullableText(p.Personalitat), nullableText(p.VeuManies),
		nullableText(p.Descripcio), nullableText(p.Rerefons), nullableText(p.Objectius), nullableText(p.SecretsPNJ),
		nullableText(p.Ubicacio), nullableText(p.Relacio), nullableText(p.Notes), nullableText(p.ImatgeURL))
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (h *sqlHelper) UpdatePNJ(p *PNJ) error {
	stmt := `UPDATE npcs SET campaign_id = ?, location_id = ?, poi_id = ?, nom = ?, npc_type = ?, race = ?,
        class_or_occupation = ?, nivell = ?, alignment = ?, faction = ?, status = ?, armor_class = ?,
        hit_points = ?, speed = ?, challenge_rating = ?, ability_scores = ?, skills = ?, languages = ?,
        abilities = ?, appearance = ?, personality = ?, voice_mannerisms = ?, descripcio = ?, backstory = ?,
        goals = ?, secrets = ?, ubicacio = ?, relationship = ?, notes = ?, image_url = ?
        WHERE id = ? AND user_id = ?`
	return h.exec(stmt, nullableID(p.CampanyaID), nullableID(p.LlocID), nullableID(p.PuntID), p.Nom,
		nullableText(p.TipusPNJ), nullableText(p.Raca), nullableText(p.ClasseOcupacio),
		nullableID(p.Nivell), nullableText(p.Aliniament), nullableText(p.Faccio), p.Estat,
		nullableID(p.ClasseArmadura), nullableText(p.PuntsVida), nullableText(p.Velocitat), nullableText(p.ValorDesafiament),
		nullableText(p.Caracteristiques), nullableText(p.Habilitats), nullableText(p.Idiomes), nullableText(p.Aptituds),
		nullableText(p.Aparenca), nullableText(p.Personalitat), nullableText(p.VeuManies),
		nullableText(p.Descripcio), nullableText(p.Rerefons), nullableText(p.Objectius), nullableText(p.SecretsPNJ),
		nullableText(p.Ubicacio), nullableText(p.Relacio), nullableText(p.Notes), nullableText(p.ImatgeURL),
		p.ID, p.UsuariID)
}

// DeletePNJ elimina primer els vincles npc_pois i després la fila del PNJ.
// Política triada: neteja referencial explícita a l'aplicació, sense dependre
// del cascade del motor.
func (h *sqlHelper) DeletePNJ(id, usuariID int) error {
	if err := h.exec(`DELETE FROM npc_pois WHERE npc_id = ?`, id); err != nil {
		return err
	}
	return h.exec(`DELETE FROM npcs WHERE id = ? AND user_id = ?`, id, usuariID)
}

// AssignaLlocAPNJ vincula un PNJ preexistent a un lloc acabat de crear
// (selecció manual al formulari de lloc); també actualitza el text lliure.
func (h *sqlHelper) AssignaLlocAPNJ(pnjID, llocID int, nomLloc string) error {
	return h.exec(`UPDATE npcs SET location_id = ?, ubicacio = ? WHERE id = ?`, llocID, nomLloc, pnjID)
}

// Vincles PNJ <-> punt d'interès (taula npc_pois, amb rol lliure)

func (h *sqlHelper) VinculaPNJPunt(pnjID, puntID int, rol string) error {
	return h.exec(`INSERT INTO npc_pois (npc_id, poi_id, rol) VALUES (?, ?, ?)`, pnjID, puntID, nullableText(rol))
}

func (h *sqlHelper) DesvinculaPNJPunt(pnjID, puntID int) error {
	return h.exec(`DELETE FROM npc_pois WHERE npc_id = ? AND poi_id = ?`, pnjID, puntID)
}

// prefixCols afegeix l'àlies de taula a cada columna d'una llista.
func prefixCols(prefix, cols string) string {
	parts := strings.Split(cols, ",")
	for i, c := range parts {
		parts[i] = prefix + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

// scanAmbExtra encadena destins extres al final d'un Scan existent, per
// poder reutilitzar scanPNJ quan la consulta porta columnes de més.
type scanAmbExtra struct {
	sc    rowScanner
	extra []interface{}
}

func (s scanAmbExtra) Scan(dest ...interface{}) error {
	return s.sc.Scan(append(dest, s.extra...)...)
}

func (h *sqlHelper) ListPNJsDePunt(puntID int) ([]PNJVinculat, error) {
	stmt := `SELECT ` + prefixCols("n", pnjCols) + `, v.rol FROM npcs n
        JOIN npc_pois v ON v.npc_id = n.id
        WHERE v.poi_id = ? ORDER BY n.nom`
	rows, err := h.query(stmt, puntID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PNJVinculat
	for rows.Next() {
		var rol sql.NullString
		p, err := scanPNJ(scanAmbExtra{sc: rows, extra: []interface{}{&rol}})
		if err != nil {
			return nil, err
		}
		result = append(result, PNJVinculat{PNJ: p, Rol: ntext(rol)})
	}
	return result, rows.Err()
}

func (h *sqlHelper) ComptaPNJsDePunt(puntID int) (int, error) {
	var n int
	err := h.queryRow(`SELECT COUNT(*) FROM npc_pois WHERE poi_id = ?`, puntID).Scan(&n)
	return n, err
}
