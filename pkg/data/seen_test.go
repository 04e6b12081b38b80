package data

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentHash(t *testing.T) {
	h := ContentHash("some article text")
	assert.Len(t, h, hashLen)

	// Stable, and whitespace-insensitive at the edges.
	assert.Equal(t, h, ContentHash("some article text"))
	assert.Equal(t, h, ContentHash("  some article text \n"))
	assert.NotEqual(t, h, ContentHash("some other text"))
}

func TestSeenLifecycle(t *testing.T) {
	db := setupTestDB(t)
	h := ContentHash("breaking story")

	seen, err := IsSeen(db, h)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, MarkSeen(db, h))
	seen, err = IsSeen(db, h)
	require.NoError(t, err)
	assert.True(t, seen)

	// Marking again is a no-op.
	require.NoError(t, MarkSeen(db, h))
}

func TestMarkSeen_EmptyHash(t *testing.T) {
	db := setupTestDB(t)
	assert.Error(t, MarkSeen(db, ""))
}

func TestSeen_NilDB(t *testing.T) {
	_, err := IsSeen(nil, "abc")
	assert.Error(t, err)
	assert.Error(t, MarkSeen(nil, "abc"))
}

func TestMarkSeen_Rotation(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < maxSeen+25; i++ {
		require.NoError(t, MarkSeen(db, ContentHash(fmt.Sprintf("content-%d", i))))
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM seen_hash").Scan(&count))
	assert.Equal(t, maxSeen, count)

	// Oldest rotated out, newest retained.
	seen, err := IsSeen(db, ContentHash("content-0"))
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = IsSeen(db, ContentHash(fmt.Sprintf("content-%d", maxSeen+24)))
	require.NoError(t, err)
	assert.True(t, seen)
}
