package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/seqlims/seqdb/pkg/errcode"
)

// ConnectionError creates an error for a failed PostgreSQL connection.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file:
     <em>~/.config/seqdb/seqdb.yaml</em>`

	vars := []any{host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for when a database
// operation is attempted without a connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError creates an error for when checking the database
// state fails.
func TableCheckError(err error) error {
	msg := "Could not verify database state"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// TableExistsCheckError creates an error for a failed table
// existence check.
func TableExistsCheckError(tableName string, err error) error {
	msg := "Could not check if table <em>%s</em> exists"
	vars := []any{tableName}

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to check table %s: %w",
			tableName, err),
	}
}

// QueryTablesError creates an error for a failed table listing.
func QueryTablesError(err error) error {
	msg := "Could not list database tables"

	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for a failed table name scan.
func ScanTableError(err error) error {
	msg := "Could not read database table names"

	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError creates an error for a failed DROP TABLE.
func DropTableError(tableName string, err error) error {
	msg := "Could not drop table <em>%s</em>"
	vars := []any{tableName}

	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", tableName, err),
	}
}

// BeginTxError creates an error for a failed transaction start.
func BeginTxError(err error) error {
	msg := "Could not begin database transaction"

	return &gn.Error{
		Code: errcode.DBBeginTxError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to begin transaction: %w", err),
	}
}
