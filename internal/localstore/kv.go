// Package localstore keeps a per-user working set of gifts, contacts and
// events consistent with a persisted blob. Mutations apply to memory first;
// the whole blob is re-serialized on every change, degrading by dropping
// oversized embedded images instead of failing the write.
package localstore

import (
	"github.com/pkg/errors"
)

var (
	// ErrBlobNotFound means no blob has been persisted for the user yet.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrPersistFailed means both the guarded write and the all-images-stripped
	// retry failed; in-memory state is the only copy.
	ErrPersistFailed = errors.New("local store write failed, changes kept in memory only")
)

// KV is the persistence boundary: one opaque blob per user identifier.
type KV interface {
	Get(userID string) ([]byte, error)
	Set(userID string, blob []byte) error
}
