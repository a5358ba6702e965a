package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUsuariNoTrobat es retorna quan la cerca d'usuari no troba cap fila.
var ErrUsuariNoTrobat = errors.New("usuari no trobat")

func scanUsuari(row *sql.Row) (*Usuari, error) {
	var u Usuari
	var avatar, tier, creacio sql.NullString
	err := row.Scan(&u.ID, &u.Usuari, &u.Nom, &u.Email, &u.Contrasenya, &avatar, &tier, &u.Actiu, &creacio)
	if err == sql.ErrNoRows {
		return nil, ErrUsuariNoTrobat
	}
	if err != nil {
		return nil, err
	}
	u.AvatarURL = ntext(avatar)
	u.TierSubscripcio = ntext(tier)
	if u.TierSubscripcio == "" {
		u.TierSubscripcio = "free"
	}
	u.DataCreacio = ntext(creacio)
	return &u, nil
}

const usuariCols = `id, usuari, nom, email, contrasenya, avatar_url, subscription_tier, actiu, created_at`

func (h *sqlHelper) InsertUsuari(u *Usuari) (int, error) {
	stmt := `INSERT INTO users (usuari, nom, email, contrasenya, avatar_url, subscription_tier, actiu, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ` + h.nowFun + `)`
	id, err := h.insertID(stmt,
		u.Usuari, u.Nom, u.Email, u.Contrasenya, nullableText(u.AvatarURL), u.TierSubscripcio, u.Actiu)
	if err != nil {
		return 0, fmt.Errorf("inserint usuari: %w", err)
	}
	u.ID = id
	return id, nil
}

func (h *sqlHelper) GetUsuariPerEmail(email string) (*Usuari, error) {
	return scanUsuari(h.queryRow(`SELECT `+usuariCols+` FROM users WHERE email = ?`, email))
}

func (h *sqlHelper) GetUsuariPerID(id int) (*Usuari, error) {
	return scanUsuari(h.queryRow(`SELECT `+usuariCols+` FROM users WHERE id = ?`, id))
}

func (h *sqlHelper) ExisteixUsuariPerEmail(email string) (bool, error) {
	var n int
	err := h.queryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (h *sqlHelper) DesaTokenActivacio(email, token string) error {
	return h.exec(`UPDATE users SET token_activacio = ? WHERE email = ?`, token, email)
}

func (h *sqlHelper) ActivarUsuari(token string) error {
	var id int
	err := h.queryRow(`SELECT id FROM users WHERE token_activacio = ?`, token).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrUsuariNoTrobat
	}
	if err != nil {
		return err
	}
	return h.exec(`UPDATE users SET actiu = ?, token_activacio = NULL WHERE id = ?`, true, id)
}

// AutenticaUsuari retorna l'usuari actiu per email; la comprovació del hash
// es fa a core (bcrypt) per no passejar contrasenyes en clar per aquí.
func (h *sqlHelper) AutenticaUsuari(email string) (*Usuari, error) {
	u, err := h.GetUsuariPerEmail(email)
	if err != nil {
		return nil, err
	}
	if !u.Actiu {
		return nil, errors.New("usuari no activat")
	}
	return u, nil
}

// Sessions web (cookie -> usuari)

func (h *sqlHelper) DesaSessioWeb(sessioID string, usuariID int, caducitat string) error {
	return h.exec(`INSERT INTO web_sessions (sessio_id, usuari_id, caducitat) VALUES (?, ?, ?)`,
		sessioID, usuariID, caducitat)
}

func (h *sqlHelper) GetUsuariSessioWeb(sessioID string) (*Usuari, error) {
	stmt := `SELECT u.id, u.usuari, u.nom, u.email, u.contrasenya, u.avatar_url, u.subscription_tier, u.actiu, u.created_at
        FROM users u
        JOIN web_sessions s ON s.usuari_id = u.id
        WHERE s.sessio_id = ? AND s.caducitat > ` + h.nowFun
	return scanUsuari(h.queryRow(stmt, sessioID))
}

func (h *sqlHelper) EliminaSessioWeb(sessioID string) error {
	return h.exec(`DELETE FROM web_sessions WHERE sessio_id = ?`, sessioID)
}
