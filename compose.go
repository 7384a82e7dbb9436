package unorm

import "github.com/normform/unorm/unormdata"

// Composer turns code points into NFC (or NFKC/NFKC_CF), driving a
// ReorderingBuffer: decompose first, then recombine adjacent
// starter+mark pairs into primary composites across the whole output.
type Composer struct {
	blob *unormdata.Blob
	dec  *Decomposer
}

// NewComposer returns a Composer over blob.
func NewComposer(blob *unormdata.Blob) *Composer {
	return &Composer{blob: blob, dec: NewDecomposer(blob)}
}

// Compose writes the NFC (or NFKC/NFKC_CF) form of s into rb.
func (co *Composer) Compose(s []uint16, rb *ReorderingBuffer) error {
	minCompNoMaybeCP := co.blob.Thresholds.GetMinCompNoMaybeCodePoint()
	start := 0
	i := 0
	for i < len(s) {
		c, w := decodeUTF16(s, i)

		if c < minCompNoMaybeCP {
			i += w
			continue
		}

		v := co.lookup(c)
		if co.blob.Thresholds.IsCompYesAndZeroCC(v) {
			i += w
			continue
		}

		// c is maybe-yes, non-zero-cc, or decomposing: flush the verbatim
		// run only up to its last composition starter, then hand everything
		// from that starter on to the decompose-then-recombine path. The
		// starter has to travel with the remainder — c may be a mark or
		// maybe-yes character that combines back onto it.
		run := s[start:i]
		k := co.findPreviousCompStarter(run)
		if err := rb.AppendZeroCC(run[:k]); err != nil {
			return err
		}
		consumed, err := co.decomposeAndRecombine(s[start+k:], rb)
		if err != nil {
			return err
		}
		i = start + k + consumed
		start = i
	}
	return rb.AppendZeroCC(s[start:i])
}

// decomposeAndRecombine decomposes s into a scratch NFD buffer, canonically
// reorders it, then runs the full recombination pass over that buffer —
// repeatedly finding a composition starter, searching forward for a
// following character its compositions list accepts, and collapsing the
// pair — until no further pair in the buffer combines. It returns how many
// UTF-16 units of s were consumed by the decomposition step (the whole
// remainder, since this is only called once decomposition is already known
// to be needed and it is simplest to decompose to the end of input).
func (co *Composer) decomposeAndRecombine(s []uint16, rb *ReorderingBuffer) (int, error) {
	var scratch []uint16
	nfd := NewReorderingBuffer(co.blob, &scratch)
	if err := co.dec.Decompose(s, nfd); err != nil {
		return 0, err
	}

	if err := co.recombine(&scratch); err != nil {
		return 0, err
	}

	if err := rb.AppendString(scratch, co.leadCC(scratch), co.trailCC(scratch)); err != nil {
		return 0, err
	}
	return len(s), nil
}

// recombine performs the full left-to-right recombination pass over a
// canonically-ordered NFD buffer, in place. It tracks the most recent
// composition starter and, for each following character, attempts to
// combine the pair unless an intervening mark blocks it (the canonical-
// ordering rule: a mark is blocked if an earlier unblocked mark with equal
// or greater combining class stands between it and the starter).
// A successful combine rewrites the starter in place, removes the combined
// character, and leaves every skipped mark where it was; the composite
// keeps serving as the starter only while its forward-combining flag says
// it accepts more.
func (co *Composer) recombine(buf *[]uint16) error {
	b := *buf
	starter := -1 // position of the current composition starter, -1 if none
	starterW := 0
	var starterCP rune
	var starterFwd bool
	var prevCC uint8

	i := 0
	for i < len(b) {
		c, w := decodeUTF16(b, i)
		cc := co.ccOf(c)

		// Unblocked means no mark since the starter carried cc >= ours;
		// prevCC == 0 additionally admits starter+starter pairs (Hangul
		// L+V, LV+T), which are only legal when directly adjacent.
		if starter >= 0 && starterFwd && (prevCC < cc || prevCC == 0) {
			if composite, fwd, ok := co.tryCombine(starterCP, c); ok {
				compW := utf16Width(composite)
				mid := append([]uint16(nil), b[starter+starterW:i]...)
				tail := append([]uint16(nil), b[i+w:]...)
				b = b[:starter]
				var enc [2]uint16
				encodeUTF16(enc[:compW], composite)
				b = append(b, enc[:compW]...)
				b = append(b, mid...)
				b = append(b, tail...)

				starterCP = composite
				starterW = compW
				starterFwd = fwd
				i = starter + compW + len(mid)
				// prevCC is unchanged: the combined character is gone, so
				// the marks still standing keep their blocking effect.
				continue
			}
		}

		if cc == 0 {
			if co.isCompStarter(c) {
				starter, starterW, starterCP, starterFwd = i, w, c, true
			} else {
				starter = -1
			}
		}
		prevCC = cc
		i += w
	}
	*buf = b
	return nil
}

// isCompStarter decides whether c begins a new composition span:
// comp-yes-zero-cc is a starter, maybe-yes or non-zero-cc is not,
// algorithmic mappings resolve and retry, and a table-mapped character
// defers to the first code point of its decomposition (provided the mapping
// has zero lead-cc and is non-empty).
func (co *Composer) isCompStarter(c rune) bool {
	for {
		v := co.lookup(c)
		th := co.blob.Thresholds
		switch {
		case th.IsCompYesAndZeroCC(v):
			return true
		case th.IsMaybeOrNonZeroCC(v):
			return false
		case th.IsHangul(v):
			// Decomposes to L+V(+T); the leading L jamo is a starter.
			return true
		case th.IsDecompNoAlgorithmic(v):
			c = th.MapAlgorithmic(c, v)
		default:
			m := co.blob.GetMapping(v)
			if m.LeadCC != 0 || len(m.Text) == 0 {
				return false
			}
			c, _ = decodeUTF16(m.Text, 0)
		}
	}
}

// findPreviousCompStarter returns the position of the last composition
// starter in s, or 0 if s contains none. Used by ComposeAndAppend to decide
// how much of the existing destination must be pulled back and re-composed
// against the new input.
func (co *Composer) findPreviousCompStarter(s []uint16) int {
	p := len(s)
	for p > 0 {
		c, w := decodeUTF16Before(s, p)
		p -= w
		if co.isCompStarter(c) {
			return p
		}
	}
	return 0
}

// findNextCompStarter returns the position of the first composition starter
// in s, or len(s) if s contains none.
func (co *Composer) findNextCompStarter(s []uint16) int {
	p := 0
	for p < len(s) {
		c, w := decodeUTF16(s, p)
		if co.isCompStarter(c) {
			return p
		}
		p += w
	}
	return p
}

// ComposeAndAppend implements the append-seam protocol: when the buffer
// already holds output, its trailing span back to the last
// composition starter is pulled out, concatenated with the new input's
// leading span up to its first composition starter, and that seam string is
// re-composed into the buffer — so a prefix of s that combines with the
// existing suffix composes correctly without re-normalizing the whole
// document. The rest of s is then composed normally, or appended verbatim
// when doCompose is false (the caller asserts it is already composed).
func (co *Composer) ComposeAndAppend(s []uint16, rb *ReorderingBuffer, doCompose bool) error {
	if !rb.IsEmpty() {
		dest := *rb.dest
		lastStarter := co.findPreviousCompStarter(dest)
		firstStarter := co.findNextCompStarter(s)
		scratch := make([]uint16, 0, (len(dest)-lastStarter)+firstStarter)
		scratch = append(scratch, dest[lastStarter:]...)
		scratch = append(scratch, s[:firstStarter]...)
		rb.RemoveZeroCCSuffix(len(dest) - lastStarter)
		s = s[firstStarter:]
		if err := co.Compose(scratch, rb); err != nil {
			return err
		}
	}
	if doCompose {
		return co.Compose(s, rb)
	}
	return rb.AppendZeroCC(s)
}

// tryCombine attempts to combine lead and trail, trying the algorithmic
// Hangul rule first (L+V and LV+T never appear in the data table) and
// falling back to the table-driven composition list.
func (co *Composer) tryCombine(lead, trail rune) (composite rune, forwardCombining bool, ok bool) {
	if c, hok := composeHangul(lead, trail); hok {
		return c, isHangulLV(c), true
	}
	list, has := co.blob.CompositionsFor(lead)
	if !has {
		return 0, false, false
	}
	return unormdata.Combine(list, trail)
}

// ccOf returns c's combining class as seen by the composer: 0 for any
// composition starter (including maybe-yes) or decomposing character, the
// carried cc otherwise.
func (co *Composer) ccOf(c rune) uint8 {
	return co.blob.Thresholds.GetCCFromYesOrMaybe(co.lookup(c))
}

func (co *Composer) leadCC(s []uint16) uint8 {
	if len(s) == 0 {
		return 0
	}
	c, _ := decodeUTF16(s, 0)
	return co.ccOf(c)
}

func (co *Composer) trailCC(s []uint16) uint8 {
	if len(s) == 0 {
		return 0
	}
	c, _ := decodeUTF16Before(s, len(s))
	return co.ccOf(c)
}

func (co *Composer) lookup(c rune) uint16 {
	if c < 0x10000 {
		return co.blob.Trie.GetBMP(uint16(c))
	}
	return co.blob.Trie.GetSupplementary(c)
}
