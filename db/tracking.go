package db

import (
	"database/sql"
)

// Comptadors mensuals d'ús (partides gravades, resums d'IA, minuts transcrits,
// MB d'àudio). Una fila per usuari i mes, creada a demanda.

// GetUsMensual retorna la fila del mes o una de buida si encara no existeix.
func (h *sqlHelper) GetUsMensual(usuariID int, mes string) (*UsMensual, error) {
	var u UsMensual
	err := h.queryRow(`SELECT id, user_id, month, sessions_recorded, ai_summaries, transcription_minutes, storage_mb
        FROM usage_tracking WHERE user_id = ? AND month = ?`, usuariID, mes).
		Scan(&u.ID, &u.UsuariID, &u.Mes, &u.PartidesGravades, &u.ResumsIA, &u.MinutsTranscripcio, &u.EmmagatzematgeMB)
	if err == sql.ErrNoRows {
		return &UsMensual{UsuariID: usuariID, Mes: mes}, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IncrementaUs suma els deltes al mes indicat, creant la fila si cal.
// Cada motor té la seva sintaxi d'upsert.
func (h *sqlHelper) IncrementaUs(usuariID int, mes string, partides, resums, minuts int, mb float64) error {
	var stmt string
	switch h.style {
	case "mysql":
		stmt = `INSERT INTO usage_tracking (user_id, month, sessions_recorded, ai_summaries, transcription_minutes, storage_mb)
            VALUES (?, ?, ?, ?, ?, ?)
            ON DUPLICATE KEY UPDATE
                sessions_recorded = sessions_recorded + VALUES(sessions_recorded),
                ai_summaries = ai_summaries + VALUES(ai_summaries),
                transcription_minutes = transcription_minutes + VALUES(transcription_minutes),
                storage_mb = storage_mb + VALUES(storage_mb)`
	default: // sqlite i postgres comparteixen ON CONFLICT
		stmt = `INSERT INTO usage_tracking (user_id, month, sessions_recorded, ai_summaries, transcription_minutes, storage_mb)
            VALUES (?, ?, ?, ?, ?, ?)
            ON CONFLICT (user_id, month) DO UPDATE SET
                sessions_recorded = usage_tracking.sessions_recorded + excluded.sessions_recorded,
                ai_summaries = usage_tracking.ai_summaries + excluded.ai_summaries,
                transcription_minutes = usage_tracking.transcription_minutes + excluded.transcription_minutes,
                storage_mb = usage_tracking.storage_mb + excluded.storage_mb`
	}
	return h.exec(stmt, usuariID, mes, partides, resums, minuts, mb)
}
