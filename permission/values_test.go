package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetFlagAndGetFlag(t *testing.T) {
	var cv CategoryValues
	cv = cv.SetFlag(3, Yes)
	assert.Equal(t, Yes, cv.GetFlag(3))
	assert.Equal(t, Unset, cv.GetFlag(4))

	cv = cv.SetFlag(3, No)
	assert.Equal(t, No, cv.GetFlag(3))

	cv = cv.SetFlag(3, Unset)
	assert.Equal(t, Unset, cv.GetFlag(3))
	assert.False(t, cv.HasExplicitValue(3))
}

func TestJoinNeverDominates(t *testing.T) {
	var a, b CategoryValues
	a = a.SetFlag(0, Yes)
	b = b.SetFlag(0, Never)
	joined := a.Join(b)
	assert.Equal(t, Never, joined.GetFlag(0))
}

func TestJoinYesBeatsNoAtSameLevel(t *testing.T) {
	var a, b CategoryValues
	a = a.SetFlag(0, Yes)
	b = b.SetFlag(0, No)
	joined := a.Join(b)
	assert.Equal(t, Yes, joined.GetFlag(0))
	assert.True(t, joined.Can(0))
}

func TestJoinUnsetIsIdentity(t *testing.T) {
	var a, unset CategoryValues
	a = a.SetFlag(5, No)
	joined := a.Join(unset)
	assert.Equal(t, No, joined.GetFlag(5))
}

func TestCanDeniesUnsetAndNoAndNever(t *testing.T) {
	var cv CategoryValues
	assert.False(t, cv.Can(0))

	cv = cv.SetFlag(0, No)
	assert.False(t, cv.Can(0))

	cv = cv.SetFlag(0, Never)
	assert.False(t, cv.Can(0))
}

func TestCollectionValuesJoinIsCategorywise(t *testing.T) {
	var a, b CollectionValues
	a[0] = a[0].SetFlag(1, Yes)
	b[2] = b[2].SetFlag(4, No)
	joined := a.Join(b)
	assert.True(t, joined.Can(Indices{Category: 0, Item: 1}))
	assert.False(t, joined.Can(Indices{Category: 2, Item: 4}))
	assert.True(t, joined.HasExplicitValue(Indices{Category: 2, Item: 4}))
}
