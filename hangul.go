package unorm

import "github.com/normform/unorm/unormdata"

// Hangul syllables decompose and compose algorithmically rather than
// through table lookups: a syllable's offset from the syllable base encodes
// its L, V, and T jamo indices, recovered (or folded back in) by plain
// arithmetic.
const (
	hangulLBase  = unormdata.HangulLBase
	hangulVBase  = unormdata.HangulVBase
	hangulTBase  = unormdata.HangulTBase
	hangulSBase  = unormdata.HangulSBase
	hangulTCount = unormdata.HangulTCount
	hangulNCount = unormdata.HangulNCount
	hangulSCount = unormdata.HangulSCount
)

// decomposeHangul writes a Hangul syllable's jamo decomposition into the
// reordering buffer. All jamo carry combining class zero, so a plain
// AppendZeroCC-style write suffices — no recursive decomposition needed.
func decomposeHangul(rb *ReorderingBuffer, s rune) error {
	l, v, t, hasT, ok := unormdata.DecomposeHangul(s)
	if !ok {
		return nil
	}
	buf := make([]uint16, 0, 3)
	buf = append(buf, uint16(l), uint16(v))
	if hasT {
		buf = append(buf, uint16(t))
	}
	return rb.AppendZeroCC(buf)
}

// composeHangul implements the two algorithmic composition rules:
// L+V -> LV syllable, and LV+T -> LVT syllable. It returns ok=false if lead
// and trail do not form one of those two pairs.
func composeHangul(lead, trail rune) (composite rune, ok bool) {
	if isHangulL(lead) && isHangulV(trail) {
		lIndex := lead - hangulLBase
		vIndex := trail - hangulVBase
		return hangulSBase + (lIndex*21+vIndex)*hangulTCount, true
	}
	if isHangulLV(lead) && isHangulT(trail) {
		tIndex := trail - hangulTBase
		return lead + tIndex, true
	}
	return 0, false
}

func isHangulL(c rune) bool { return c >= hangulLBase && c < hangulLBase+19 }
func isHangulV(c rune) bool { return c >= hangulVBase && c < hangulVBase+21 }
func isHangulT(c rune) bool { return c > hangulTBase && c < hangulTBase+28 }

// isHangulLV reports whether c is an LV (T-less) syllable, the only Hangul
// shape that can still absorb a following T jamo.
func isHangulLV(c rune) bool {
	if c < hangulSBase || c >= hangulSBase+hangulSCount {
		return false
	}
	return (c-hangulSBase)%hangulTCount == 0
}

