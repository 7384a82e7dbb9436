package unorm

import "github.com/normform/unorm/unormdata"

// ReorderingBuffer is an append-only output buffer that maintains canonical
// ordering of combining marks by combining class (CCC) while supporting
// out-of-order insertion. It borrows the caller's output slice (the
// growable storage stays the caller's) and grows it in place.
//
// All cursor state (reorderStart, lastCC, iterPos) is index arithmetic over
// *dest rather than pointers into its backing array, so nothing needs
// fixing up when resize reallocates.
type ReorderingBuffer struct {
	blob *unormdata.Blob
	dest *[]uint16

	limit        int // == len(*dest); kept separately for readability
	reorderStart int
	lastCC       uint8

	// Backwards-walk cursor: iterPos is the start of the most recently
	// decoded code point, iterLimit the boundary just past it (where that
	// walk round began). insert writes at iterLimit — the seam after the
	// first code point whose class no longer exceeds the one being placed.
	iterPos   int
	iterLimit int
}

// NewReorderingBuffer acquires dest as the backing storage and scans its
// existing tail to establish lastCC and reorderStart. dest may be
// non-empty (the append-style entry points hand in a
// destination that already holds prior output).
func NewReorderingBuffer(blob *unormdata.Blob, dest *[]uint16) *ReorderingBuffer {
	rb := &ReorderingBuffer{blob: blob, dest: dest, limit: len(*dest)}
	if rb.limit == 0 {
		rb.lastCC = 0
		rb.reorderStart = 0
		return rb
	}
	rb.resetIterator()
	rb.lastCC = rb.previousCC()
	if rb.lastCC > 1 {
		for rb.previousCC() > 1 {
		}
	}
	rb.reorderStart = rb.iterLimit
	return rb
}

// GetStart and GetLimit expose the buffer's current span; IsEmpty reports
// whether that span is empty.
func (rb *ReorderingBuffer) GetStart() int { return 0 }
func (rb *ReorderingBuffer) GetLimit() int { return rb.limit }
func (rb *ReorderingBuffer) IsEmpty() bool { return rb.limit == 0 }

// Append writes a single code point, inserting it in CCC order if it
// arrives out of order relative to the buffer's current tail.
func (rb *ReorderingBuffer) Append(c rune, cc uint8) error {
	if cc == 0 || cc >= rb.lastCC {
		if err := rb.appendCodePointRaw(c); err != nil {
			return err
		}
		rb.lastCC = cc
		if cc <= 1 {
			rb.reorderStart = rb.limit
		}
		return nil
	}
	return rb.insert(c, cc)
}

// AppendString bulk-appends s, a substring whose first code point has CCC
// leadCC and whose last has CCC trailCC: copied verbatim
// when it doesn't need reordering against the buffer's tail, otherwise
// decomposed into a leading insert plus per-code-point appends so each
// interior code point still lands in CCC order.
func (rb *ReorderingBuffer) AppendString(s []uint16, leadCC, trailCC uint8) error {
	if len(s) == 0 {
		return nil
	}
	if rb.lastCC <= leadCC || leadCC == 0 {
		if trailCC <= 1 {
			rb.reorderStart = rb.limit + len(s)
		} else if leadCC <= 1 {
			rb.reorderStart = rb.limit + 1 // ok if not a code-point boundary
		}
		if err := rb.appendUnitsRaw(s); err != nil {
			return err
		}
		rb.lastCC = trailCC
		return nil
	}

	i := 0
	c, w := decodeUTF16(s, i)
	if err := rb.insert(c, leadCC); err != nil {
		return err
	}
	i += w
	for i < len(s) {
		c, w = decodeUTF16(s, i)
		i += w
		var cc uint8
		if i < len(s) {
			// s is in NFD, so interior CCCs come from the yes-or-maybe
			// accessor rather than a full getCC() walk.
			cc = rb.blob.Thresholds.GetCCFromYesOrMaybe(rb.lookup(c))
		} else {
			cc = trailCC
		}
		if err := rb.Append(c, cc); err != nil {
			return err
		}
	}
	return nil
}

// AppendZeroCC verbatim-copies s, a run known to carry no combining marks.
func (rb *ReorderingBuffer) AppendZeroCC(s []uint16) error {
	if len(s) == 0 {
		return nil
	}
	if err := rb.appendUnitsRaw(s); err != nil {
		return err
	}
	rb.lastCC = 0
	rb.reorderStart = rb.limit
	return nil
}

// RemoveZeroCCSuffix shrinks the buffer by up to n code units, for the
// composer's seam protocol (composeAndAppend pulls the dest suffix back out
// before re-composing it merged with the new input's prefix).
func (rb *ReorderingBuffer) RemoveZeroCCSuffix(n int) {
	if n < rb.limit {
		rb.limit -= n
	} else {
		rb.limit = 0
	}
	*rb.dest = (*rb.dest)[:rb.limit]
	rb.lastCC = 0
	rb.reorderStart = rb.limit
}

// insert places c somewhere before the last character. Precondition:
// 0 < cc < lastCC, which implies reorderStart < limit.
func (rb *ReorderingBuffer) insert(c rune, cc uint8) error {
	rb.resetIterator()
	rb.skipPrevious()
	for rb.previousCC() > cc {
	}
	insertAt := rb.iterLimit

	w := utf16Width(c)
	if err := rb.ensureCapacity(w); err != nil {
		return err
	}
	oldLimit := rb.limit
	*rb.dest = (*rb.dest)[:oldLimit+w]
	copy((*rb.dest)[insertAt+w:oldLimit+w], (*rb.dest)[insertAt:oldLimit])
	encodeUTF16((*rb.dest)[insertAt:insertAt+w], c)
	rb.limit = oldLimit + w

	if cc <= 1 {
		rb.reorderStart = insertAt + w
	}
	return nil
}

// resetIterator points the backwards-walk cursor at the buffer's current
// end.
func (rb *ReorderingBuffer) resetIterator() {
	rb.iterPos = rb.limit
	rb.iterLimit = rb.limit
}

// skipPrevious steps the cursor back over one code point without
// inspecting its combining class. Used once before the insert() search loop
// to unconditionally skip the final character.
func (rb *ReorderingBuffer) skipPrevious() {
	_, w := decodeUTF16Before(*rb.dest, rb.iterPos)
	rb.iterPos -= w
}

// previousCC steps the cursor back over one code point and returns its
// combining class, or 0 once the walk crosses reorderStart — no further
// reordering is needed past that point.
func (rb *ReorderingBuffer) previousCC() uint8 {
	rb.iterLimit = rb.iterPos
	if rb.iterPos <= rb.reorderStart {
		return 0
	}
	c, w := decodeUTF16Before(*rb.dest, rb.iterPos)
	rb.iterPos -= w
	return rb.blob.Thresholds.GetCCFromYesOrMaybe(rb.lookup(c))
}

func (rb *ReorderingBuffer) lookup(c rune) uint16 {
	if c < 0x10000 {
		return rb.blob.Trie.GetBMP(uint16(c))
	}
	return rb.blob.Trie.GetSupplementary(c)
}

func (rb *ReorderingBuffer) appendCodePointRaw(c rune) error {
	w := utf16Width(c)
	if err := rb.ensureCapacity(w); err != nil {
		return err
	}
	buf := make([]uint16, w)
	encodeUTF16(buf, c)
	*rb.dest = append(*rb.dest, buf...)
	rb.limit = len(*rb.dest)
	return nil
}

func (rb *ReorderingBuffer) appendUnitsRaw(s []uint16) error {
	if err := rb.ensureCapacity(len(s)); err != nil {
		return err
	}
	*rb.dest = append(*rb.dest, s...)
	rb.limit = len(*rb.dest)
	return nil
}

func (rb *ReorderingBuffer) ensureCapacity(extra int) error {
	if cap(*rb.dest)-len(*rb.dest) >= extra {
		return nil
	}
	return rb.resize(extra)
}

// resize grows the backing storage to
// max(length+extra, 2*current_capacity, 1024). reorderStart and the other
// cursor fields survive reallocation untouched: they are indexes into
// *dest, not pointers into its backing array.
func (rb *ReorderingBuffer) resize(extra int) error {
	length := len(*rb.dest)
	newCapacity := length + extra
	doubleCapacity := 2 * cap(*rb.dest)
	if newCapacity < doubleCapacity {
		newCapacity = doubleCapacity
	}
	if newCapacity < 1024 {
		newCapacity = 1024
	}
	if newCapacity < 0 { // overflow of int; unreachable on any real input
		return unormdata.ErrOutOfMemory
	}
	grown := make([]uint16, length, newCapacity)
	copy(grown, *rb.dest)
	*rb.dest = grown
	return nil
}
