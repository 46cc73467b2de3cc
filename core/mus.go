package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted chunk record. These are written by hand
// against the mus-go primitives; the field order below is the wire format
// and must not be reordered.

var (
	// IDMUS serializes an ID.
	IDMUS = idMUS{}
	// ChunkMUS serializes a Chunk.
	ChunkMUS = chunkMUS{}

	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.SourceID, bs[n:])
	n += ord.String.Marshal(c.Source, bs[n:])
	n += ord.String.Marshal(c.Section, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(c.StartChar, bs[n:])
	n += varint.Int.Marshal(c.EndChar, bs[n:])
	n += varint.Int.Marshal(int(c.Type), bs[n:])
	n += stringSliceMUS.Marshal(c.Tags, bs[n:])
	n += ord.Bool.Marshal(c.HasLatex, bs[n:])
	n += ord.Bool.Marshal(c.HasCode, bs[n:])
	n += ord.String.Marshal(c.Language, bs[n:])
	n += ord.Bool.Marshal(c.Oversized, bs[n:])
	n += float32SliceMUS.Marshal(c.Vector, bs[n:])
	n += varint.Int64.Marshal(c.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(c.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.SourceID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Source, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Section, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.StartChar, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.EndChar, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var chunkType int
	if chunkType, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	c.Type = ChunkType(chunkType)
	n += n1
	if c.Tags, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.HasLatex, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.HasCode, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Language, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Oversized, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	c.InsertedAt = time.UnixMicro(micros).UTC()
	n += n1
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	c.UpdatedAt = time.UnixMicro(micros).UTC()
	n += n1
	return
}

func (chunkMUS) Size(c Chunk) (size int) {
	size = IDMUS.Size(c.Id)
	size += ord.String.Size(c.SourceID)
	size += ord.String.Size(c.Source)
	size += ord.String.Size(c.Section)
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(c.StartChar)
	size += varint.Int.Size(c.EndChar)
	size += varint.Int.Size(int(c.Type))
	size += stringSliceMUS.Size(c.Tags)
	size += ord.Bool.Size(c.HasLatex)
	size += ord.Bool.Size(c.HasCode)
	size += ord.String.Size(c.Language)
	size += ord.Bool.Size(c.Oversized)
	size += float32SliceMUS.Size(c.Vector)
	size += varint.Int64.Size(c.InsertedAt.UnixMicro())
	size += varint.Int64.Size(c.UpdatedAt.UnixMicro())
	return size
}

func (chunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	skippers := []func([]byte) (int, error){
		IDMUS.Skip,
		ord.String.Skip,
		ord.String.Skip,
		ord.String.Skip,
		ord.String.Skip,
		varint.Int.Skip,
		varint.Int.Skip,
		varint.Int.Skip,
		stringSliceMUS.Skip,
		ord.Bool.Skip,
		ord.Bool.Skip,
		ord.String.Skip,
		ord.Bool.Skip,
		float32SliceMUS.Skip,
		varint.Int64.Skip,
		varint.Int64.Skip,
	}
	for _, skip := range skippers {
		if n1, err = skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	return
}
