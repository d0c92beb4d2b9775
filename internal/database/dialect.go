package database

import (
	"fmt"
	"strconv"
	"strings"
)

// dialect holds what differs between the backends: bind-parameter syntax and
// column types. Statements are assembled only from constant column names and
// placeholders; values always travel as bound arguments.
type dialect struct {
	name        string
	placeholder func(n int) string
	columnType  func(c column) string
}

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	columnType: func(c column) string {
		switch c.kind {
		case kindSerial:
			return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
		default:
			return fmt.Sprintf("VARCHAR(%d)", c.maxLen)
		}
	},
}

var sqliteDialect = dialect{
	name:        "sqlite",
	placeholder: func(int) string { return "?" },
	columnType: func(c column) string {
		switch c.kind {
		case kindSerial:
			return "INTEGER PRIMARY KEY AUTOINCREMENT"
		default:
			return "TEXT"
		}
	},
}

const userColumns = "id, fullName, username"

type condition struct {
	column string
	value  any
}

// args numbers placeholders across a whole statement.
type args struct {
	d      dialect
	values []any
}

func (a *args) bind(v any) string {
	a.values = append(a.values, v)
	return a.d.placeholder(len(a.values))
}

func (a *args) join(conds []condition, sep string) string {
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, c.column+" = "+a.bind(c.value))
	}
	return strings.Join(parts, sep)
}

func buildInsertQuery(d dialect, fullName, username string) (string, []any) {
	a := &args{d: d}
	query := fmt.Sprintf("INSERT INTO users (fullName, username) VALUES (%s, %s)", a.bind(fullName), a.bind(username))
	return query, a.values
}

func buildFindQuery(d dialect, f UserFilter) (string, []any) {
	var conds []condition
	if f.ID != nil {
		conds = append(conds, condition{"id", *f.ID})
	}
	if f.FullName != nil {
		conds = append(conds, condition{"fullName", *f.FullName})
	}
	if f.Username != nil {
		conds = append(conds, condition{"username", *f.Username})
	}

	a := &args{d: d}
	query := "SELECT " + userColumns + " FROM users"
	if len(conds) > 0 {
		query += " WHERE " + a.join(conds, " AND ")
	}
	query += " ORDER BY id"
	return query, a.values
}

func buildUpdateQuery(d dialect, sel UpdateSelector, fullName, username string) (string, []any) {
	var conds []condition
	if sel.ID != nil {
		conds = append(conds, condition{"id", *sel.ID})
	}
	if sel.OldName != nil {
		conds = append(conds, condition{"fullName", *sel.OldName})
	}

	a := &args{d: d}
	query := fmt.Sprintf("UPDATE users SET fullName = %s, username = %s WHERE %s",
		a.bind(fullName), a.bind(username), a.join(conds, " OR "))
	return query, a.values
}

func buildDeleteQuery(d dialect, sel DeleteSelector) (string, []any) {
	a := &args{d: d}
	if sel.ID != nil {
		return "DELETE FROM users WHERE id = " + a.bind(*sel.ID), a.values
	}
	return "DELETE FROM users WHERE username = " + a.bind(*sel.Username), a.values
}
