package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgreSQL – motor per a la BD gestionada de producció.
type PostgreSQL struct {
	Host   string
	Port   string
	User   string
	Pass   string
	DBName string
	*sqlHelper
}

func (p *PostgreSQL) Connect() error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Pass, p.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}

	p.sqlHelper = newSQLHelper(db, "postgres", "NOW()")
	return nil
}

func (p *PostgreSQL) Close() {
	if p.sqlHelper != nil && p.sqlHelper.db != nil {
		p.sqlHelper.db.Close()
	}
}
