package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const (
	// SqliteDriverName is the sqlite3 driver with FoldFunc registered on every connection.
	SqliteDriverName = "sqlite3_site"
	// FoldFunc lower-cases text with full Unicode case mapping, sqlite's LOWER only folds ASCII.
	FoldFunc = "site_fold"
)

func init() {
	sql.Register(SqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(FoldFunc, fold, true)
		},
	})
}

func fold(val any) any {
	switch text := val.(type) {
	case string:
		return strings.ToLower(text)
	case []byte:
		// NULL arrives as a nil slice.
		if text == nil {
			return nil
		}
		return strings.ToLower(string(text))
	default:
		return val
	}
}
