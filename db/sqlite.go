package db

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite – motor per defecte, també és el que fan servir els tests.
type SQLite struct {
	Path string
	*sqlHelper
}

func (s *SQLite) Connect() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	s.sqlHelper = newSQLHelper(db, "sqlite", "datetime('now')")
	return nil
}

func (s *SQLite) Close() {
	if s.sqlHelper != nil && s.sqlHelper.db != nil {
		s.sqlHelper.db.Close()
	}
}
