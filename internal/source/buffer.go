package source

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"fortio.org/safecast"
)

// ErrBufferExhausted is returned when an append would push the buffer past
// the addressable range of a Span offset. Callers treat it as fatal.
var ErrBufferExhausted = errors.New("source buffer exhausted")

// maxBufferLen keeps every buffer offset representable as a uint32, so spans
// into the sealed file stay valid.
const maxBufferLen = math.MaxUint32

// Segment maps one appended source line back to its origin. Off is the
// buffer offset where the line starts; File/Line identify where the bytes
// came from before preprocessing.
type Segment struct {
	Off  uint32
	File FileID
	Line uint32 // 1-based line in the origin file
}

// Buffer is the growable text region the preprocessor writes into. The
// parser never sees a Buffer directly; the driver seals it into a read-only
// File once preprocessing finishes.
//
// Invariants: Cap() >= Len() at all times, and a failed append leaves the
// previously written content untouched.
type Buffer struct {
	data     []byte
	segs     []Segment
	sealed   FileID
	isSealed bool
}

// NewBuffer creates an empty buffer with the given capacity hint.
func NewBuffer(capHint uint) *Buffer {
	return &Buffer{
		data: make([]byte, 0, capHint),
	}
}

// Append copies p onto the end of the buffer, growing by doubling. On
// ErrBufferExhausted nothing is written.
func (b *Buffer) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	need := uint64(len(b.data)) + uint64(len(p))
	if need > maxBufferLen {
		return fmt.Errorf("%w: %d bytes requested", ErrBufferExhausted, need)
	}
	if need > uint64(cap(b.data)) {
		newCap := uint64(cap(b.data))
		if newCap == 0 {
			newCap = 1 << 10
		}
		for newCap < need {
			newCap *= 2
		}
		if newCap > maxBufferLen {
			newCap = maxBufferLen
		}
		grown := make([]byte, len(b.data), newCap)
		copy(grown, b.data)
		b.data = grown
	}
	b.data = append(b.data, p...)
	return nil
}

// AppendString copies s onto the end of the buffer.
func (b *Buffer) AppendString(s string) error {
	return b.Append([]byte(s))
}

// MarkSegment records that bytes appended from the current length onwards
// originate at line (1-based) of file.
func (b *Buffer) MarkSegment(file FileID, line uint32) {
	b.segs = append(b.segs, Segment{Off: b.Len(), File: file, Line: line})
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() uint32 {
	n, err := safecast.Conv[uint32](len(b.data))
	if err != nil {
		panic(fmt.Errorf("buffer length overflow: %w", err))
	}
	return n
}

// Cap returns the current capacity.
func (b *Buffer) Cap() uint32 {
	n, err := safecast.Conv[uint32](cap(b.data))
	if err != nil {
		panic(fmt.Errorf("buffer capacity overflow: %w", err))
	}
	return n
}

// Bytes returns a read-only view of the accumulated content. Callers must
// not modify the returned slice.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// String returns the accumulated content as a string.
func (b *Buffer) String() string {
	return string(b.data)
}

// Segments returns the recorded source map, ordered by offset.
func (b *Buffer) Segments() []Segment {
	return b.segs
}

// Resolve maps a buffer offset back to its origin file and line via the
// segment table. Reports ok=false when no segment covers the offset.
func (b *Buffer) Resolve(off uint32) (file FileID, line uint32, ok bool) {
	if len(b.segs) == 0 {
		return 0, 0, false
	}
	// First segment with Off > off, then step back one.
	i := sort.Search(len(b.segs), func(i int) bool {
		return b.segs[i].Off > off
	})
	if i == 0 {
		return 0, 0, false
	}
	seg := b.segs[i-1]
	return seg.File, seg.Line, true
}

// Seal freezes the buffer content into a virtual file in fs and remembers
// the resulting FileID. After sealing, the buffer must not be appended to.
func (b *Buffer) Seal(fs *FileSet, name string) FileID {
	id := fs.Add(name, b.data, FileVirtual|FilePreprocessed)
	b.sealed = id
	b.isSealed = true
	return id
}

// SealedFile returns the FileID produced by Seal.
func (b *Buffer) SealedFile() (FileID, bool) {
	return b.sealed, b.isSealed
}
