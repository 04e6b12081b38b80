package data

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// hashLen is the number of hex characters kept from the digest.
	hashLen = 16

	// maxSeen caps the retained seen-hash rows; oldest rows rotate out.
	maxSeen = 500

	insertSeenSQL = `INSERT INTO seen_hash (hash, created) VALUES (?, ?)
		ON CONFLICT(hash) DO NOTHING
	`

	selectSeenSQL = `SELECT COUNT(*) FROM seen_hash WHERE hash = ?`

	rotateSeenSQL = `DELETE FROM seen_hash WHERE id NOT IN (
		SELECT id FROM seen_hash ORDER BY id DESC LIMIT ?
	)`
)

// ContentHash derives the dedup key for a piece of content: the first 16 hex
// characters of the sha256 digest of the trimmed text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])[:hashLen]
}

// IsSeen reports whether the content hash was already marked as analysed.
func IsSeen(db *sql.DB, hash string) (bool, error) {
	if db == nil {
		return false, errDBNotInitialized
	}

	var count int
	if err := db.QueryRow(selectSeenSQL, hash).Scan(&count); err != nil {
		return false, fmt.Errorf("querying seen hash: %w", err)
	}
	return count > 0, nil
}

// MarkSeen records the content hash as analysed and rotates out the oldest
// entries past the retention cap. Marking an already-seen hash is a no-op.
func MarkSeen(db *sql.DB, hash string) error {
	if db == nil {
		return errDBNotInitialized
	}
	if hash == "" {
		return fmt.Errorf("hash required")
	}

	if _, err := db.Exec(insertSeenSQL, hash, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("inserting seen hash: %w", err)
	}
	if _, err := db.Exec(rotateSeenSQL, maxSeen); err != nil {
		return fmt.Errorf("rotating seen hashes: %w", err)
	}
	return nil
}
