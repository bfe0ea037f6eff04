package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/harborview/signals/core"
)

// Key prefixes for the four collections
const (
	profilePrefix   = "prof"
	snapshotPrefix  = "snap"
	metricPrefix    = "metr"
	chunkPrefix     = "know"
	digestPrefix    = "knowd"
	snapshotIDSeq   = "snapseq"
	metricIDSeq     = "metrseq"
)

// maxSuffix sorts after every timestamp+seq suffix; appended to a
// prefix it yields the seek key for reverse iteration.
var maxSuffix = []byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// makeProfileKey generates the key for a profile by slug.
func makeProfileKey(slug string) []byte {
	return []byte(fmt.Sprintf("%s:%s", profilePrefix, slug))
}

// makeTimeSeriesKey generates a composite key for an append-only row.
// Format: prefix:slug: + timestamp + seq, both BigEndian so that
// lexicographic iteration order equals chronological order.
func makeTimeSeriesKey(prefix, slug string, timestamp time.Time, seq uint64) []byte {
	head := []byte(prefix + ":" + slug + ":")
	buf := make([]byte, len(head)+16)
	offset := copy(buf, head)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeTimeSeriesPrefix generates the iteration prefix for one slug's rows.
func makeTimeSeriesPrefix(prefix, slug string) []byte {
	return []byte(prefix + ":" + slug + ":")
}

// makePartialTimeSeriesKey generates the seek key for range scans
// starting at a timestamp. A zero or pre-epoch timestamp would wrap to
// a huge unsigned value and sort past every row, so those scan from
// the start of the collection instead.
func makePartialTimeSeriesKey(prefix, slug string, timestamp time.Time) []byte {
	head := []byte(prefix + ":" + slug + ":")
	if timestamp.IsZero() || timestamp.UnixMicro() < 0 {
		return head
	}
	buf := make([]byte, len(head)+8)
	offset := copy(buf, head)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeChunkKey generates the key for a knowledge chunk.
// Format: know:slug:source: + index (BigEndian, preserves chunk order).
func makeChunkKey(slug string, source core.ChunkSource, index int) []byte {
	head := []byte(fmt.Sprintf("%s:%s:%s:", chunkPrefix, slug, source))
	buf := make([]byte, len(head)+8)
	offset := copy(buf, head)
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makeChunkPrefix generates the iteration prefix for one (slug, source)
// chunk set.
func makeChunkPrefix(slug string, source core.ChunkSource) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s:", chunkPrefix, slug, source))
}

// makeDigestKey generates the key recording the corpus fingerprint for
// one (slug, source) chunk set.
func makeDigestKey(slug string, source core.ChunkSource) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", digestPrefix, slug, source))
}
