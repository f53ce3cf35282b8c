package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildTestSnapshot constructs the literal scenario: a single category
// holding reply.post at item position 3, a group row for g=2 granting
// Yes, and no forum data yet — callers add forum overrides/moderators on
// top of the returned Snapshot before building a Store.
func buildTestSnapshot() *Snapshot {
	// Four items in one category so reply.post lands at item position 3,
	// matching the literal (0,3) addressing used in the walkthrough this
	// test suite is modeled on.
	catalog := BuildCatalog([]PermissionRecord{
		{ID: 1, Label: "view.thread", CategoryID: 10},
		{ID: 2, Label: "create.thread", CategoryID: 10},
		{ID: 3, Label: "edit.post", CategoryID: 10},
		{ID: 4, Label: "reply.post", CategoryID: 10},
	})

	groupValues := CollectionValues{}
	idx, _ := catalog.ByLabel("reply.post")
	groupValues[idx.Category] = groupValues[idx.Category].SetFlag(idx.Item, Yes)

	return &Snapshot{
		Catalog:         catalog,
		GlobalValues:    map[collectionKey]CollectionValues{groupKey(2): groupValues},
		ForumOverrides:  map[int32]map[collectionKey]CollectionValues{},
		ForumParent:     map[int32]int32{},
		ForumModerators: map[int32]map[int32]bool{},
	}
}

func TestCanGlobalGrant(t *testing.T) {
	snap := buildTestSnapshot()
	store := NewStore(snap)
	client := Client{UserID: 42, GroupIDs: []int32{2}}
	assert.True(t, store.Can(client, "reply.post"))
}

func TestCanInForumOverrideDenies(t *testing.T) {
	snap := buildTestSnapshot()
	idx, _ := snap.Catalog.ByLabel("reply.post")
	denyAt7 := CollectionValues{}
	denyAt7[idx.Category] = denyAt7[idx.Category].SetFlag(idx.Item, No)
	snap.ForumOverrides[7] = map[collectionKey]CollectionValues{groupKey(2): denyAt7}

	store := NewStore(snap)
	client := Client{UserID: 42, GroupIDs: []int32{2}}

	assert.False(t, store.CanInForum(client, 7, "reply.post"))
}

func TestCanInForumInheritsFromParentWhenNoOverride(t *testing.T) {
	snap := buildTestSnapshot()
	idx, _ := snap.Catalog.ByLabel("reply.post")
	denyAt7 := CollectionValues{}
	denyAt7[idx.Category] = denyAt7[idx.Category].SetFlag(idx.Item, No)
	snap.ForumOverrides[7] = map[collectionKey]CollectionValues{groupKey(2): denyAt7}
	snap.ForumParent[9] = 7

	store := NewStore(snap)
	client := Client{UserID: 42, GroupIDs: []int32{2}}

	assert.False(t, store.CanInForum(client, 9, "reply.post"))
}

func TestCanInForumClosestOverrideWins(t *testing.T) {
	snap := buildTestSnapshot()
	idx, _ := snap.Catalog.ByLabel("reply.post")
	denyAt7 := CollectionValues{}
	denyAt7[idx.Category] = denyAt7[idx.Category].SetFlag(idx.Item, No)
	snap.ForumOverrides[7] = map[collectionKey]CollectionValues{groupKey(2): denyAt7}
	snap.ForumParent[9] = 7

	allowAt9 := CollectionValues{}
	allowAt9[idx.Category] = allowAt9[idx.Category].SetFlag(idx.Item, Yes)
	snap.ForumOverrides[9] = map[collectionKey]CollectionValues{groupKey(2): allowAt9}

	store := NewStore(snap)
	client := Client{UserID: 42, GroupIDs: []int32{2}}

	assert.True(t, store.CanInForum(client, 9, "reply.post"))
}

func TestUnknownPermissionDenies(t *testing.T) {
	snap := buildTestSnapshot()
	store := NewStore(snap)
	assert.False(t, store.Can(Client{UserID: 1}, "no.such.permission"))
}

func TestModeratorShortcutBypassesCollectionValues(t *testing.T) {
	snap := buildTestSnapshot()
	catalog := BuildCatalog([]PermissionRecord{{ID: 99, Label: "moderate.delete", CategoryID: 10}})
	snap.Catalog.byLabel["moderate.delete"] = catalog.byLabel["moderate.delete"]
	snap.Catalog.byID[99] = catalog.byLabel["moderate.delete"]

	snap.ForumParent[9] = 7
	snap.ForumModerators[7] = map[int32]bool{42: true}

	store := NewStore(snap)
	client := Client{UserID: 42}

	assert.True(t, store.CanInForum(client, 9, "moderate.delete"))
}

func TestGuestComposesOnlyGuestGroupRows(t *testing.T) {
	snap := buildTestSnapshot()
	guest := Client{GroupIDs: []int32{2}}
	store := NewStore(snap)
	assert.True(t, guest.IsGuest())
	assert.True(t, store.Can(guest, "reply.post"))
}
