// Package store dispatches to a per-dialect permission.Loader the same
// way the teacher's driver package dispatches a DDL-dumping Database: one
// Config naming a DbType, one switch choosing the dialect's driver and
// Loader; the DSN is passed to sql.Open unchanged.
package store

import (
	"database/sql"
	"fmt"

	"github.com/forgeforum/forgeforum/permission"
	"github.com/forgeforum/forgeforum/permission/store/mssql"
	"github.com/forgeforum/forgeforum/permission/store/mysql"
	"github.com/forgeforum/forgeforum/permission/store/postgres"
	"github.com/forgeforum/forgeforum/permission/store/sqlite3"
)

// Config names the dialect and connection string for the database the
// permission store reloads from.
type Config struct {
	DbType string // "mysql", "postgres", "mssql", or "sqlite3"
	DSN    string
}

// NewLoader opens a *sql.DB for config's dialect and wraps it in the
// matching permission.Loader implementation.
func NewLoader(config Config) (permission.Loader, *sql.DB, error) {
	driverName, err := driverNameFor(config.DbType)
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(driverName, config.DSN)
	if err != nil {
		return nil, nil, err
	}

	var loader permission.Loader
	switch config.DbType {
	case "mysql":
		loader = mysql.NewLoader(db)
	case "postgres":
		loader = postgres.NewLoader(db)
	case "mssql":
		loader = mssql.NewLoader(db)
	case "sqlite3":
		loader = sqlite3.NewLoader(db)
	default:
		panic("unexpected DbType: " + config.DbType) // unreachable, driverNameFor already validated
	}

	return loader, db, nil
}

func driverNameFor(dbType string) (string, error) {
	switch dbType {
	case "mysql":
		return "mysql", nil
	case "postgres":
		return "postgres", nil
	case "mssql":
		return "sqlserver", nil
	case "sqlite3":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("permission/store: database type must be one of mysql, postgres, mssql, sqlite3 (got %q)", dbType)
	}
}
