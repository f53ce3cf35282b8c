package permission

import (
	"log/slog"
	"strings"
)

// Can answers can(client, permission_name) → bool per the evaluator
// contract: compose every group row the client belongs to, then the
// client's own user row, and read the yes bit. An unknown permission
// name is logged and denied, never raised as an error.
func (s *Store) Can(client Client, permissionName string) bool {
	snap := s.read()
	idx, ok := snap.Catalog.ByLabel(permissionName)
	if !ok {
		slog.Warn("permission: unknown permission name", "name", permissionName)
		return false
	}
	return snap.compose(client).Can(idx)
}

// CanByID is Can addressed by storage id instead of dotted name.
func (s *Store) CanByID(client Client, permissionID int32) bool {
	snap := s.read()
	idx, ok := snap.Catalog.ByID(permissionID)
	if !ok {
		slog.Warn("permission: unknown permission id", "id", permissionID)
		return false
	}
	return snap.compose(client).Can(idx)
}

// CanInForum answers can_in_forum(client, forum_id, permission_name) →
// bool: moderate.* permissions take the moderator-set shortcut up the
// forum's parent chain; everything else walks the same chain looking for
// the closest forum with an explicit override, falling back to the
// global result if none is found.
func (s *Store) CanInForum(client Client, forumID int32, permissionName string) bool {
	snap := s.read()
	idx, ok := snap.Catalog.ByLabel(permissionName)
	if !ok {
		slog.Warn("permission: unknown permission name", "name", permissionName)
		return false
	}

	if strings.HasPrefix(permissionName, "moderate.") {
		if snap.isModeratorInChain(client.UserID, forumID) {
			return true
		}
	}

	for f, ok := forumID, true; ok; f, ok = snap.parentOf(f) {
		overrides, has := snap.ForumOverrides[f]
		if !has {
			continue
		}
		composed := snap.composeForum(client, overrides)
		if composed.HasExplicitValue(idx) {
			return composed.Can(idx)
		}
	}

	return snap.compose(client).Can(idx)
}

func (snap *Snapshot) parentOf(forumID int32) (int32, bool) {
	parent, ok := snap.ForumParent[forumID]
	if !ok || parent == 0 {
		return 0, false
	}
	return parent, true
}

func (snap *Snapshot) isModeratorInChain(userID, forumID int32) bool {
	for f, ok := forumID, true; ok; f, ok = snap.parentOf(f) {
		if mods := snap.ForumModerators[f]; mods != nil && mods[userID] {
			return true
		}
	}
	return false
}

// compose folds Unset, every group row the client belongs to, then the
// client's own user row (guests fold only their guest-group rows, since
// client.UserID is zero and userKey(0) never has a row).
func (snap *Snapshot) compose(client Client) CollectionValues {
	var result CollectionValues
	for _, g := range client.GroupIDs {
		result = result.Join(snap.GlobalValues[groupKey(g)])
	}
	if !client.IsGuest() {
		result = result.Join(snap.GlobalValues[userKey(client.UserID)])
	}
	return result
}

// composeForum is compose but reading from one forum's override map
// instead of the global map.
func (snap *Snapshot) composeForum(client Client, overrides map[collectionKey]CollectionValues) CollectionValues {
	var result CollectionValues
	for _, g := range client.GroupIDs {
		result = result.Join(overrides[groupKey(g)])
	}
	if !client.IsGuest() {
		result = result.Join(overrides[userKey(client.UserID)])
	}
	return result
}
