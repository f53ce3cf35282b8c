package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeforum/forgeforum/permission"
	"github.com/forgeforum/forgeforum/permission/store/mssql"
	"github.com/forgeforum/forgeforum/permission/store/mysql"
	"github.com/forgeforum/forgeforum/permission/store/postgres"
	"github.com/forgeforum/forgeforum/permission/store/sqlite3"
)

// seedSchema creates the six tables every dialect's Loader reads from,
// using syntax plain enough that sqlite, MySQL, Postgres, and SQL Server
// all accept it.
func seedSchema(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		`CREATE TABLE permissions (id INTEGER, label TEXT, category_id INTEGER)`,
		`CREATE TABLE collections (id INTEGER, group_id INTEGER, user_id INTEGER)`,
		`CREATE TABLE collection_items (collection_id INTEGER, permission_id INTEGER, value INTEGER)`,
		`CREATE TABLE forum_permissions (forum_id INTEGER, collection_id INTEGER)`,
		`CREATE TABLE forums (id INTEGER, parent_id INTEGER)`,
		`CREATE TABLE forum_moderators (forum_id INTEGER, user_id INTEGER)`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	seed := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO permissions (id, label, category_id) VALUES (?, ?, ?)`, []any{1, "view.thread", 10}},
		{`INSERT INTO permissions (id, label, category_id) VALUES (?, ?, ?)`, []any{2, "create.thread", 10}},
		{`INSERT INTO permissions (id, label, category_id) VALUES (?, ?, ?)`, []any{3, "edit.post", 10}},
		{`INSERT INTO permissions (id, label, category_id) VALUES (?, ?, ?)`, []any{4, "reply.post", 10}},

		{`INSERT INTO collections (id, group_id, user_id) VALUES (?, ?, ?)`, []any{100, 2, nil}},
		{`INSERT INTO collection_items (collection_id, permission_id, value) VALUES (?, ?, ?)`, []any{100, 4, int(permission.Yes)}},

		{`INSERT INTO forums (id, parent_id) VALUES (?, ?)`, []any{7, nil}},
		{`INSERT INTO forums (id, parent_id) VALUES (?, ?)`, []any{9, 7}},

		{`INSERT INTO collections (id, group_id, user_id) VALUES (?, ?, ?)`, []any{200, 2, nil}},
		{`INSERT INTO collection_items (collection_id, permission_id, value) VALUES (?, ?, ?)`, []any{200, 4, int(permission.No)}},
		{`INSERT INTO forum_permissions (forum_id, collection_id) VALUES (?, ?)`, []any{7, 200}},

		{`INSERT INTO forum_moderators (forum_id, user_id) VALUES (?, ?)`, []any{7, 42}},
	}
	for _, s := range seed {
		_, err := db.Exec(s.query, s.args...)
		require.NoError(t, err)
	}
}

// openSeededDB opens a fresh named in-memory sqlite database and seeds
// it. Every dialect's Loader issues plain, unparameterized SELECTs (see
// permission/queries.go), so pointing all four Loader implementations at
// one of these databases proves they read and decode rows identically —
// exactly the "dialect parity" property without needing a live MySQL,
// Postgres, or SQL Server instance for each one. Each database gets its
// own name: sqlite's shared-cache mode hands back the SAME in-memory
// database to every connection opened with an identical name, which
// would let one dialect's seed rows bleed into another's.
func openSeededDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	seedSchema(t, db)
	return db
}

func TestDialectLoadersBuildByteIdenticalSnapshots(t *testing.T) {
	ctx := context.Background()

	loaders := map[string]permission.Loader{}
	for _, dialect := range []string{"mysql", "postgres", "mssql", "sqlite3"} {
		db := openSeededDB(t, dialect+"_parity")
		switch dialect {
		case "mysql":
			loaders[dialect] = mysql.NewLoader(db)
		case "postgres":
			loaders[dialect] = postgres.NewLoader(db)
		case "mssql":
			loaders[dialect] = mssql.NewLoader(db)
		case "sqlite3":
			loaders[dialect] = sqlite3.NewLoader(db)
		}
	}

	snapshots := map[string]*permission.Snapshot{}
	for dialect, loader := range loaders {
		snap, err := permission.BuildSnapshot(ctx, loader)
		require.NoError(t, err)
		snapshots[dialect] = snap
	}

	reference := snapshots["sqlite3"]
	client := permission.Client{UserID: 42, GroupIDs: []int32{2}}

	for dialect, snap := range snapshots {
		assert.Equalf(t, reference, snap, "dialect %s built a different snapshot", dialect)

		st := permission.NewStore(snap)
		refSt := permission.NewStore(reference)

		assert.Equalf(t, refSt.Can(client, "reply.post"), st.Can(client, "reply.post"),
			"dialect %s diverged on global Can", dialect)
		assert.Equalf(t, refSt.CanInForum(client, 7, "reply.post"), st.CanInForum(client, 7, "reply.post"),
			"dialect %s diverged on forum-scoped CanInForum", dialect)
		assert.Equalf(t, refSt.CanInForum(client, 9, "reply.post"), st.CanInForum(client, 9, "reply.post"),
			"dialect %s diverged on inherited forum CanInForum", dialect)
	}

	// The literal scenario this seed data encodes: group 2 is granted
	// reply.post globally, forum 7 overrides it to denied, and forum 9
	// inherits that denial from its parent.
	st := permission.NewStore(reference)
	assert.True(t, st.Can(client, "reply.post"))
	assert.False(t, st.CanInForum(client, 7, "reply.post"))
	assert.False(t, st.CanInForum(client, 9, "reply.post"))
}
