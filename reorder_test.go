package unorm

import (
	"testing"

	"github.com/normform/unorm/unormdata"
)

func testBlob(t *testing.T) *unormdata.Blob {
	t.Helper()
	return mustNFC(t).blob
}

func ccOfTest(blob *unormdata.Blob, c rune) uint8 {
	return blob.Thresholds.GetCCFromYesOrMaybe(blob.Trie.Get(c))
}

// checkBufferInvariants verifies the three reordering-buffer invariants:
// combining classes are non-decreasing within each span between CCC<=1 code
// points, lastCC matches the final code point, and reorderStart sits just
// past the last CCC<=1 code point.
func checkBufferInvariants(t *testing.T, rb *ReorderingBuffer, blob *unormdata.Blob) {
	t.Helper()
	b := *rb.dest

	var prev, last uint8
	boundaryEnd := 0
	i := 0
	for i < len(b) {
		c, w := decodeUTF16(b, i)
		cc := ccOfTest(blob, c)
		if cc > 1 && prev > 1 && cc < prev {
			t.Errorf("combining classes out of order at unit %d: %d after %d (buffer %s)", i, cc, prev, hex(b))
		}
		if cc <= 1 {
			boundaryEnd = i + w
		}
		prev, last = cc, cc
		i += w
	}
	if rb.lastCC != last {
		t.Errorf("lastCC = %d, want %d (buffer %s)", rb.lastCC, last, hex(b))
	}
	if rb.reorderStart != boundaryEnd {
		t.Errorf("reorderStart = %d, want %d (buffer %s)", rb.reorderStart, boundaryEnd, hex(b))
	}
}

func TestAppendMaintainsCanonicalOrder(t *testing.T) {
	blob := testBlob(t)

	// Each case is a sequence of appends; want is the buffer contents
	// afterwards. Classes: acute 230, cedilla 202.
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"in order", "0065 0327 0301", "0065 0327 0301"},
		{"out of order", "0065 0301 0327", "0065 0327 0301"},
		{"marks only, out of order", "0301 0327", "0327 0301"},
		{"duplicate classes keep arrival order", "0065 0301 0327 0327 0301", "0065 0327 0327 0301 0301"},
		{"starter resets the span", "0065 0301 0065 0301 0327", "0065 0301 0065 0327 0301"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var dest []uint16
			rb := NewReorderingBuffer(blob, &dest)
			for _, u := range cps(t, tc.input) {
				c := rune(u)
				if err := rb.Append(c, ccOfTest(blob, c)); err != nil {
					t.Fatalf("Append(%04X): %v", c, err)
				}
				checkBufferInvariants(t, rb, blob)
			}
			if want := cps(t, tc.want); hex(dest) != hex(want) {
				t.Errorf("buffer:\n%s", diff(hex(want), hex(dest)))
			}
		})
	}
}

func TestInitScansExistingTail(t *testing.T) {
	blob := testBlob(t)

	// A fresh buffer over a destination that already ends in an acute must
	// still reorder a lower-class cedilla in front of it.
	dest := cps(t, "0065 0301")
	rb := NewReorderingBuffer(blob, &dest)
	if rb.lastCC != 230 {
		t.Errorf("lastCC after init = %d, want 230", rb.lastCC)
	}
	if rb.reorderStart != 1 {
		t.Errorf("reorderStart after init = %d, want 1", rb.reorderStart)
	}
	if err := rb.Append(0x0327, 202); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if want := cps(t, "0065 0327 0301"); hex(dest) != hex(want) {
		t.Errorf("buffer:\n%s", diff(hex(want), hex(dest)))
	}
	checkBufferInvariants(t, rb, blob)
}

func TestAppendZeroCCResetsState(t *testing.T) {
	blob := testBlob(t)
	var dest []uint16
	rb := NewReorderingBuffer(blob, &dest)
	if err := rb.Append(0x0065, 0); err != nil {
		t.Fatal(err)
	}
	if err := rb.Append(0x0301, 230); err != nil {
		t.Fatal(err)
	}
	if err := rb.AppendZeroCC(cps(t, "0062 0063")); err != nil {
		t.Fatal(err)
	}
	if rb.lastCC != 0 {
		t.Errorf("lastCC = %d, want 0", rb.lastCC)
	}
	if rb.reorderStart != len(dest) {
		t.Errorf("reorderStart = %d, want %d", rb.reorderStart, len(dest))
	}
	checkBufferInvariants(t, rb, blob)
}

func TestRemoveZeroCCSuffix(t *testing.T) {
	blob := testBlob(t)
	dest := cps(t, "0061 0062 0063")
	rb := NewReorderingBuffer(blob, &dest)
	rb.RemoveZeroCCSuffix(2)
	if want := cps(t, "0061"); hex(dest) != hex(want) {
		t.Errorf("after remove:\n%s", diff(hex(want), hex(dest)))
	}
	if rb.reorderStart != 1 || rb.GetLimit() != 1 {
		t.Errorf("reorderStart/limit = %d/%d, want 1/1", rb.reorderStart, rb.GetLimit())
	}

	// Removing more than the buffer holds clears it.
	rb.RemoveZeroCCSuffix(10)
	if len(dest) != 0 || rb.GetLimit() != 0 {
		t.Errorf("buffer not cleared: %s (limit %d)", hex(dest), rb.GetLimit())
	}
}

func TestBufferGrowsAcrossAppends(t *testing.T) {
	blob := testBlob(t)
	var dest []uint16
	rb := NewReorderingBuffer(blob, &dest)

	chunk := make([]uint16, 600)
	for i := range chunk {
		chunk[i] = 0x0061
	}
	for i := 0; i < 4; i++ {
		if err := rb.AppendZeroCC(chunk); err != nil {
			t.Fatalf("AppendZeroCC chunk %d: %v", i, err)
		}
	}
	if len(dest) != 2400 {
		t.Fatalf("length = %d, want 2400", len(dest))
	}
	for i, u := range dest {
		if u != 0x0061 {
			t.Fatalf("dest[%d] = %04X after growth", i, u)
		}
	}
	// State must survive the reallocations.
	if rb.reorderStart != 2400 || rb.lastCC != 0 {
		t.Errorf("reorderStart/lastCC = %d/%d, want 2400/0", rb.reorderStart, rb.lastCC)
	}
	if err := rb.Append(0x0301, 230); err != nil {
		t.Fatal(err)
	}
	checkBufferInvariants(t, rb, blob)
}

func TestSupplementaryAppendAndWalk(t *testing.T) {
	blob := testBlob(t)
	var dest []uint16
	rb := NewReorderingBuffer(blob, &dest)
	if err := rb.Append(0x1F600, 0); err != nil {
		t.Fatal(err)
	}
	if err := rb.Append(0x0301, 230); err != nil {
		t.Fatal(err)
	}
	if err := rb.Append(0x0327, 202); err != nil {
		t.Fatal(err)
	}
	// The cedilla reorders before the acute; the insert lands just past the
	// surrogate pair (reorderStart), leaving the pair intact.
	if want := cps(t, "1F600 0327 0301"); hex(dest) != hex(want) {
		t.Errorf("buffer:\n%s", diff(hex(want), hex(dest)))
	}
	checkBufferInvariants(t, rb, blob)
}
