// Package mssql implements permission.Loader against denisenkom/go-mssqldb.
package mssql

import (
	"context"
	"database/sql"

	_ "github.com/denisenkom/go-mssqldb"

	"github.com/forgeforum/forgeforum/permission"
)

type Loader struct {
	db *sql.DB
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

func (l *Loader) LoadPermissions(ctx context.Context) ([]permission.PermissionRecord, error) {
	rows, err := l.db.QueryContext(ctx, permission.QueryPermissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []permission.PermissionRecord
	for rows.Next() {
		var r permission.PermissionRecord
		if err := rows.Scan(&r.ID, &r.Label, &r.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (l *Loader) LoadCollections(ctx context.Context) ([]permission.CollectionRow, []permission.ItemValueRow, error) {
	collRows, err := l.db.QueryContext(ctx, permission.QueryCollections)
	if err != nil {
		return nil, nil, err
	}
	defer collRows.Close()

	var collections []permission.CollectionRow
	for collRows.Next() {
		var r permission.CollectionRow
		var groupID, userID sql.NullInt32
		if err := collRows.Scan(&r.CollectionID, &groupID, &userID); err != nil {
			return nil, nil, err
		}
		r.GroupID = groupID.Int32
		r.UserID = userID.Int32
		collections = append(collections, r)
	}
	if err := collRows.Err(); err != nil {
		return nil, nil, err
	}

	itemRows, err := l.db.QueryContext(ctx, permission.QueryCollectionItems)
	if err != nil {
		return nil, nil, err
	}
	defer itemRows.Close()

	var items []permission.ItemValueRow
	for itemRows.Next() {
		var r permission.ItemValueRow
		var value int
		if err := itemRows.Scan(&r.CollectionID, &r.PermissionID, &value); err != nil {
			return nil, nil, err
		}
		r.Value = permission.Value(value)
		items = append(items, r)
	}
	return collections, items, itemRows.Err()
}

func (l *Loader) LoadForumPermissions(ctx context.Context) ([]permission.ForumPermissionRow, error) {
	rows, err := l.db.QueryContext(ctx, permission.QueryForumPermissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []permission.ForumPermissionRow
	for rows.Next() {
		var r permission.ForumPermissionRow
		if err := rows.Scan(&r.ForumID, &r.CollectionID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (l *Loader) LoadForums(ctx context.Context) ([]permission.ForumRow, error) {
	rows, err := l.db.QueryContext(ctx, permission.QueryForums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []permission.ForumRow
	for rows.Next() {
		var r permission.ForumRow
		var parentID sql.NullInt32
		if err := rows.Scan(&r.ID, &parentID); err != nil {
			return nil, err
		}
		r.ParentID = parentID.Int32
		out = append(out, r)
	}
	return out, rows.Err()
}

func (l *Loader) LoadModerators(ctx context.Context) ([]permission.ModeratorRow, error) {
	rows, err := l.db.QueryContext(ctx, permission.QueryModerators)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []permission.ModeratorRow
	for rows.Next() {
		var r permission.ModeratorRow
		if err := rows.Scan(&r.ForumID, &r.UserID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
