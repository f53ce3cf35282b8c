package permission

// The query text below is the single source of truth every dialect's
// Loader in permission/store/{mysql,postgres,mssql,sqlite3} executes
// verbatim. None of the six queries needs dialect-specific placeholder
// syntax or quoting (all are unparameterized SELECTs over a fixed
// schema), so centralizing the literal text here is what makes the
// "dialect parity" property true by construction rather than by
// convention: every Loader reads the same rows the same way, and the
// only thing that can differ between dialects is the database/sql driver
// underneath.
const (
	QueryPermissions      = `SELECT id, label, category_id FROM permissions`
	QueryCollections      = `SELECT id, group_id, user_id FROM collections`
	QueryCollectionItems  = `SELECT collection_id, permission_id, value FROM collection_items`
	QueryForumPermissions = `SELECT forum_id, collection_id FROM forum_permissions`
	QueryForums           = `SELECT id, parent_id FROM forums`
	QueryModerators       = `SELECT forum_id, user_id FROM forum_moderators`
)
