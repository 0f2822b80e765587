package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDriverName is go-sqlite3 with the SQL functions the news queries rely on:
//
//	unicode_lower(text)  lower-cases with Unicode rules; SQLite's lower() and LIKE fold ASCII only.
const SQLiteDriverName = "sqlite3_news"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
}
