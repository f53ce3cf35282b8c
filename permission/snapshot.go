package permission

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BuildSnapshot runs the Loader's five load calls concurrently — mirroring
// the concurrent-fan-out-then-merge shape used elsewhere for loading
// independent row sets — then folds them into the maps the evaluator
// composes against. No partial state is visible: the returned Snapshot
// is either fully built or an error is returned and nothing is swapped
// into a Store.
func BuildSnapshot(ctx context.Context, loader Loader) (*Snapshot, error) {
	var (
		permissions    []PermissionRecord
		collectionRows []CollectionRow
		itemValueRows  []ItemValueRow
		forumPermRows  []ForumPermissionRow
		forumRows      []ForumRow
		moderatorRows  []ModeratorRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		permissions, err = loader.LoadPermissions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		collectionRows, itemValueRows, err = loader.LoadCollections(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		forumPermRows, err = loader.LoadForumPermissions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		forumRows, err = loader.LoadForums(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		moderatorRows, err = loader.LoadModerators(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := BuildCatalog(permissions)

	// collectionValues[collectionID] accumulates every item value set for
	// that collection before it is attached to a group/user key or a
	// forum override.
	collectionValues := make(map[int64]CollectionValues)
	for _, iv := range itemValueRows {
		idx, ok := catalog.ByID(iv.PermissionID)
		if !ok {
			continue
		}
		cv := collectionValues[iv.CollectionID]
		cv[idx.Category] = cv[idx.Category].SetFlag(idx.Item, iv.Value)
		collectionValues[iv.CollectionID] = cv
	}

	collectionKeyOf := make(map[int64]collectionKey, len(collectionRows))
	globalValues := make(map[collectionKey]CollectionValues)
	for _, row := range collectionRows {
		var key collectionKey
		if row.GroupID != 0 {
			key = groupKey(row.GroupID)
		} else {
			key = userKey(row.UserID)
		}
		collectionKeyOf[row.CollectionID] = key
		globalValues[key] = globalValues[key].Join(collectionValues[row.CollectionID])
	}

	forumOverrides := make(map[int32]map[collectionKey]CollectionValues)
	for _, row := range forumPermRows {
		key, ok := collectionKeyOf[row.CollectionID]
		if !ok {
			continue
		}
		byKey, ok := forumOverrides[row.ForumID]
		if !ok {
			byKey = make(map[collectionKey]CollectionValues)
			forumOverrides[row.ForumID] = byKey
		}
		byKey[key] = byKey[key].Join(collectionValues[row.CollectionID])
	}

	forumParent := make(map[int32]int32, len(forumRows))
	for _, row := range forumRows {
		if row.ParentID != 0 {
			forumParent[row.ID] = row.ParentID
		}
	}

	forumModerators := make(map[int32]map[int32]bool)
	for _, row := range moderatorRows {
		mods, ok := forumModerators[row.ForumID]
		if !ok {
			mods = make(map[int32]bool)
			forumModerators[row.ForumID] = mods
		}
		mods[row.UserID] = true
	}

	return &Snapshot{
		Catalog:         catalog,
		GlobalValues:    globalValues,
		ForumOverrides:  forumOverrides,
		ForumParent:     forumParent,
		ForumModerators: forumModerators,
	}, nil
}
