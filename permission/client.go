package permission

// Client identifies the requester being evaluated: a logged-in user's id
// plus the ids of every group they belong to, or a zero UserID with only
// the guest groups populated.
type Client struct {
	UserID   int32
	GroupIDs []int32
}

// IsGuest reports whether this client represents an unauthenticated
// request (no user id, evaluated only against its guest-group rows).
func (c Client) IsGuest() bool {
	return c.UserID == 0
}

// collectionKey addresses one row in the global or forum-scoped values
// maps: exactly one of Group/User is non-zero.
type collectionKey struct {
	GroupID int32
	UserID  int32
}

func groupKey(groupID int32) collectionKey { return collectionKey{GroupID: groupID} }
func userKey(userID int32) collectionKey   { return collectionKey{UserID: userID} }
