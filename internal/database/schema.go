package database

import (
	"fmt"
	"strings"
)

type columnKind int

const (
	kindSerial columnKind = iota
	kindText
)

type column struct {
	name    string
	kind    columnKind
	maxLen  int
	notNull bool
	unique  bool
}

// usersTable is the one logical definition of the users table. Each dialect
// projects it onto its own column types.
var usersTable = struct {
	name    string
	columns []column
}{
	name: "users",
	columns: []column{
		{name: "id", kind: kindSerial},
		{name: "fullName", kind: kindText, maxLen: 255, notNull: true},
		{name: "username", kind: kindText, maxLen: 255, notNull: true, unique: true},
	},
}

func createUsersTableSQL(d dialect) string {
	defs := make([]string, 0, len(usersTable.columns))
	for _, c := range usersTable.columns {
		def := c.name + " " + d.columnType(c)
		if c.notNull {
			def += " NOT NULL"
		}
		if c.unique {
			def += " UNIQUE"
		}
		defs = append(defs, def)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", usersTable.name, strings.Join(defs, ",\n\t"))
}
