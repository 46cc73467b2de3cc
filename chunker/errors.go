package chunker

import "errors"

var (
	// ErrInvalidConfig is returned when the segmentation configuration is
	// incoherent (for example MinChunkSize > ChunkSize).
	ErrInvalidConfig = errors.New("invalid chunker configuration")
)
