package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/colliderlab/physrag/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chkrec"
	chunkSourcePrefix = "chkrecs"
	chunkTagPrefix    = "chkrect"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkSourceKey generates a composite key for the source index.
// Format: prefix:sourceID\x00chunkID
func makeChunkSourceKey(sourceID string, id core.ID) []byte {
	partial := makePartialChunkSourceKey(sourceID)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkSourceKey generates a partial key for source scans.
// The NUL separator keeps one source ID from matching another's prefix.
func makePartialChunkSourceKey(sourceID string) []byte {
	prefix := chunkSourcePrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(sourceID)+1)
	buf = append(buf, prefix...)
	buf = append(buf, sourceID...)
	buf = append(buf, 0)
	return buf
}

// makeChunkTagKey generates a composite key for the tag index.
// Format: prefix:tag\x00chunkID
func makeChunkTagKey(tag string, id core.ID) []byte {
	partial := makePartialChunkTagKey(tag)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkTagKey generates a partial key for tag scans.
func makePartialChunkTagKey(tag string) []byte {
	prefix := chunkTagPrefix + ":"
	buf := make([]byte, 0, len(prefix)+len(tag)+1)
	buf = append(buf, prefix...)
	buf = append(buf, tag...)
	buf = append(buf, 0)
	return buf
}
