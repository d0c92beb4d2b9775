package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildFindQuery(t *testing.T) {
	tests := []struct {
		name      string
		d         dialect
		filter    UserFilter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			d:         postgresDialect,
			wantQuery: "SELECT id, fullName, username FROM users ORDER BY id",
		},
		{
			name:      "postgres all filters",
			d:         postgresDialect,
			filter:    UserFilter{ID: ptr(int64(1)), FullName: ptr("Jane Doe"), Username: ptr("janedoe")},
			wantQuery: "SELECT id, fullName, username FROM users WHERE id = $1 AND fullName = $2 AND username = $3 ORDER BY id",
			wantArgs:  []any{int64(1), "Jane Doe", "janedoe"},
		},
		{
			name:      "sqlite username only",
			d:         sqliteDialect,
			filter:    UserFilter{Username: ptr("janedoe")},
			wantQuery: "SELECT id, fullName, username FROM users WHERE username = ? ORDER BY id",
			wantArgs:  []any{"janedoe"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, args := buildFindQuery(tc.d, tc.filter)
			require.Equal(t, tc.wantQuery, query)
			require.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestBuildUpdateQuery_NumbersPlaceholdersAcrossSetAndWhere(t *testing.T) {
	query, args := buildUpdateQuery(postgresDialect,
		UpdateSelector{ID: ptr(int64(4)), OldName: ptr("Jane Doe")}, "Jane Smith", "janesmith")

	require.Equal(t, "UPDATE users SET fullName = $1, username = $2 WHERE id = $3 OR fullName = $4", query)
	require.Equal(t, []any{"Jane Smith", "janesmith", int64(4), "Jane Doe"}, args)

	query, args = buildUpdateQuery(sqliteDialect, UpdateSelector{OldName: ptr("Jane Doe")}, "Jane Smith", "janesmith")
	require.Equal(t, "UPDATE users SET fullName = ?, username = ? WHERE fullName = ?", query)
	require.Equal(t, []any{"Jane Smith", "janesmith", "Jane Doe"}, args)
}

func TestBuildDeleteQuery_PrefersID(t *testing.T) {
	query, args := buildDeleteQuery(postgresDialect, DeleteSelector{ID: ptr(int64(9)), Username: ptr("jdoe")})
	require.Equal(t, "DELETE FROM users WHERE id = $1", query)
	require.Equal(t, []any{int64(9)}, args)

	query, args = buildDeleteQuery(sqliteDialect, DeleteSelector{Username: ptr("jdoe")})
	require.Equal(t, "DELETE FROM users WHERE username = ?", query)
	require.Equal(t, []any{"jdoe"}, args)
}

func TestBuildQueries_NeverInterpolateValues(t *testing.T) {
	hostile := "x'; DROP TABLE users; --"

	query, args := buildFindQuery(sqliteDialect, UserFilter{FullName: &hostile})
	require.NotContains(t, query, hostile)
	require.Equal(t, []any{hostile}, args)

	query, _ = buildInsertQuery(postgresDialect, hostile, hostile)
	require.Equal(t, "INSERT INTO users (fullName, username) VALUES ($1, $2)", query)
}

func TestCreateUsersTableSQL(t *testing.T) {
	require.Equal(t, "CREATE TABLE IF NOT EXISTS users (\n"+
		"\tid BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,\n"+
		"\tfullName VARCHAR(255) NOT NULL,\n"+
		"\tusername VARCHAR(255) NOT NULL UNIQUE\n"+
		")", createUsersTableSQL(postgresDialect))

	require.Equal(t, "CREATE TABLE IF NOT EXISTS users (\n"+
		"\tid INTEGER PRIMARY KEY AUTOINCREMENT,\n"+
		"\tfullName TEXT NOT NULL,\n"+
		"\tusername TEXT NOT NULL UNIQUE\n"+
		")", createUsersTableSQL(sqliteDialect))
}
