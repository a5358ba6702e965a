package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

type MySQL struct {
	Host   string
	Port   string
	User   string
	Pass   string
	DBName string
	*sqlHelper
}

func (m *MySQL) Connect() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=false&multiStatements=false",
		m.User, m.Pass, m.Host, m.Port, m.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}

	m.sqlHelper = newSQLHelper(db, "mysql", "NOW()")
	return nil
}

func (m *MySQL) Close() {
	if m.sqlHelper != nil && m.sqlHelper.db != nil {
		m.sqlHelper.db.Close()
	}
}
