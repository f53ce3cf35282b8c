package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCatalogAssignsDensePositions(t *testing.T) {
	catalog := BuildCatalog([]PermissionRecord{
		{ID: 10, Label: "reply.post", CategoryID: 5},
		{ID: 11, Label: "delete.post", CategoryID: 5},
		{ID: 20, Label: "ban.user", CategoryID: 2},
	})

	// Category ids sort ascending: 2 gets position 0, 5 gets position 1.
	banIdx, ok := catalog.ByLabel("ban.user")
	assert.True(t, ok)
	assert.Equal(t, Indices{Category: 0, Item: 0}, banIdx)

	replyIdx, ok := catalog.ByLabel("reply.post")
	assert.True(t, ok)
	assert.Equal(t, Indices{Category: 1, Item: 0}, replyIdx)

	deleteIdx, ok := catalog.ByLabel("delete.post")
	assert.True(t, ok)
	assert.Equal(t, Indices{Category: 1, Item: 1}, deleteIdx)
}

func TestBuildCatalogByIDMatchesByLabel(t *testing.T) {
	catalog := BuildCatalog([]PermissionRecord{
		{ID: 42, Label: "reply.post", CategoryID: 1},
	})
	byLabel, _ := catalog.ByLabel("reply.post")
	byID, ok := catalog.ByID(42)
	assert.True(t, ok)
	assert.Equal(t, byLabel, byID)
}

func TestBuildCatalogUnknownLookupMisses(t *testing.T) {
	catalog := BuildCatalog(nil)
	_, ok := catalog.ByLabel("nothing")
	assert.False(t, ok)
	_, ok = catalog.ByID(1)
	assert.False(t, ok)
}

func TestBuildCatalogDropsItemsBeyondPermLimit(t *testing.T) {
	var records []PermissionRecord
	for i := 0; i < PERM_LIMIT+5; i++ {
		records = append(records, PermissionRecord{ID: int32(i + 1), Label: "perm", CategoryID: 1})
	}
	catalog := BuildCatalog(records)
	assert.Len(t, catalog.Categories[0].Items, PERM_LIMIT)
}

func TestBuildCatalogDropsCategoriesBeyondGroupLimit(t *testing.T) {
	var records []PermissionRecord
	for i := 0; i < GROUP_LIMIT+3; i++ {
		records = append(records, PermissionRecord{ID: int32(i + 1), Label: "perm", CategoryID: int32(i + 1)})
	}
	catalog := BuildCatalog(records)
	assert.Len(t, catalog.Categories, GROUP_LIMIT)
}
