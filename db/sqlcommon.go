package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// formatPlaceholders converteix '?' a placeholders de l'estil PostgreSQL ($1, $2...) si cal.
func formatPlaceholders(style, query string) string {
	if strings.ToLower(style) != "postgres" {
		return query
	}
	var b strings.Builder
	idx := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(fmt.Sprintf("$%d", idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

// sqlHelper concentra tot l'SQL compartit entre motors. Cada motor l'encasta
// i només aporta Connect/Close i el seu estil de placeholders.
type sqlHelper struct {
	db     *sql.DB
	style  string
	nowFun string
}

func newSQLHelper(db *sql.DB, style, nowFun string) *sqlHelper {
	return &sqlHelper{db: db, style: strings.ToLower(style), nowFun: nowFun}
}

func (h *sqlHelper) DB() *sql.DB {
	return h.db
}

func (h *sqlHelper) exec(query string, args ...interface{}) error {
	_, err := h.db.Exec(formatPlaceholders(h.style, query), args...)
	return err
}

func (h *sqlHelper) queryRow(query string, args ...interface{}) *sql.Row {
	return h.db.QueryRow(formatPlaceholders(h.style, query), args...)
}

func (h *sqlHelper) query(query string, args ...interface{}) (*sql.Rows, error) {
	return h.db.Query(formatPlaceholders(h.style, query), args...)
}

// insertID executa un INSERT i retorna l'id generat. Amb postgres cal
// RETURNING id; amb sqlite/mysql fem servir LastInsertId.
func (h *sqlHelper) insertID(query string, args ...interface{}) (int, error) {
	if h.style == "postgres" {
		var id int
		err := h.db.QueryRow(formatPlaceholders(h.style, query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := h.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// Exec – accés en brut, es manté per a les eines de recreació de BD.
func (h *sqlHelper) Exec(query string, args ...interface{}) (int64, error) {
	res, err := h.db.Exec(formatPlaceholders(h.style, query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// encodeLlista serialitza una llista de textos com a JSON perquè sigui
// portable entre motors (sqlite/mysql no tenen arrays natius).
func encodeLlista(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeLlista(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

// nullableID converteix 0 en NULL per a FK opcionals.
func nullableID(id int) interface{} {
	if id <= 0 {
		return nil
	}
	return id
}

// nullableText converteix el text buit en NULL.
func nullableText(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// Variants NullXXX d'escaneig: molts camps són NULL a la BD i al Go els
// volem com a zero values.
func ntext(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nint(v sql.NullInt64) int {
	if v.Valid {
		return int(v.Int64)
	}
	return 0
}

func nint64(v sql.NullInt64) int64 {
	if v.Valid {
		return v.Int64
	}
	return 0
}

func nfloat(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return 0
}
