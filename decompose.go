package unorm

import "github.com/normform/unorm/unormdata"

// Decomposer turns code points into NFD, driving a ReorderingBuffer: a
// fast-path scan over already-normalized runs, falling back to a
// per-code-point recursive expansion only where the trie says a run is not
// decomposition-yes.
//
// Whether canonical or compatibility mappings apply is a property of which
// Blob the caller loaded (the NFC and NFKC data sets carry different
// mapping tables), not of this type.
type Decomposer struct {
	blob *unormdata.Blob
}

// NewDecomposer returns a Decomposer over blob.
func NewDecomposer(blob *unormdata.Blob) *Decomposer {
	return &Decomposer{blob: blob}
}

// Decompose writes the NFD (or NFKD) form of s into rb. It scans forward
// accumulating a run of already-normalized code points (the common case for
// ordinary text), and only pays for a trie lookup or expansion once a code
// point might need one.
func (d *Decomposer) Decompose(s []uint16, rb *ReorderingBuffer) error {
	minDecompNoCP := d.blob.Thresholds.GetMinDecompNoCodePoint()
	start := 0
	i := 0
	for i < len(s) {
		c, w := decodeUTF16(s, i)

		if c < minDecompNoCP {
			i += w
			continue
		}

		v := d.lookup(c)
		if d.blob.Thresholds.IsDecompYes(v) {
			cc := d.blob.Thresholds.GetCCFromYesOrMaybe(v)
			if cc == 0 {
				// A zero-cc character needs no individual placement; it
				// joins the verbatim run like anything below
				// minDecompNoCP.
				i += w
				continue
			}
			// A bare combining mark: no decomposition, but it must be
			// placed one at a time so the reordering buffer can sort it
			// against its neighbors.
			if err := rb.AppendZeroCC(s[start:i]); err != nil {
				return err
			}
			i += w
			if err := rb.Append(c, cc); err != nil {
				return err
			}
			start = i
			continue
		}

		// c needs decomposition: flush the verbatim run collected so far,
		// then expand c.
		if err := rb.AppendZeroCC(s[start:i]); err != nil {
			return err
		}
		i += w
		start = i
		if err := d.decomposeOne(c, v, rb); err != nil {
			return err
		}
	}
	return rb.AppendZeroCC(s[start:i])
}

// decomposeOne expands a single code point known to need decomposition
// (c >= GetMinDecompNoCodePoint() and v is not decomp-yes) and appends its
// fully-decomposed, canonically-ordered expansion to rb. Expansion is
// recursive: a mapping's text can itself contain characters that further
// decompose.
func (d *Decomposer) decomposeOne(c rune, v uint16, rb *ReorderingBuffer) error {
	th := d.blob.Thresholds

	switch {
	case th.IsHangul(v):
		return decomposeHangul(rb, c)

	case th.IsDecompNoAlgorithmic(v):
		mapped := th.MapAlgorithmic(c, v)
		return d.decomposeCodePoint(mapped, rb)

	default:
		m := d.blob.GetMapping(v)
		return d.decomposeMappingText(m.Text, rb)
	}
}

// decomposeCodePoint recursively decomposes a single code point reached via
// an algorithmic mapping's target, which is not guaranteed to be
// decomposition-yes itself.
func (d *Decomposer) decomposeCodePoint(c rune, rb *ReorderingBuffer) error {
	v := d.lookup(c)
	if d.blob.Thresholds.IsDecompYes(v) {
		return rb.Append(c, d.blob.Thresholds.GetCCFromYesOrMaybe(v))
	}
	return d.decomposeOne(c, v, rb)
}

// decomposeMappingText walks a decomposition mapping's NFD text, appending
// each of its code points (recursively decomposing any that are not
// themselves decomposition-yes, per the same rule as decomposeCodePoint).
func (d *Decomposer) decomposeMappingText(text []uint16, rb *ReorderingBuffer) error {
	i := 0
	for i < len(text) {
		c, w := decodeUTF16(text, i)
		i += w
		if err := d.decomposeCodePoint(c, rb); err != nil {
			return err
		}
	}
	return nil
}

// DecomposeAndAppend appends s to rb. With doDecompose set it is a plain
// Decompose — the buffer's own tail state reorders the seam. Without it the
// caller asserts s is already decomposed, and only the seam needs work:
// the leading run of s up to its first zero-cc decomposition-yes code point
// may still have to reorder against the buffer's existing tail, so that run
// is appended code-point-aware (with its real lead and trail combining
// classes) and the rest is copied verbatim.
func (d *Decomposer) DecomposeAndAppend(s []uint16, rb *ReorderingBuffer, doDecompose bool) error {
	if doDecompose {
		return d.Decompose(s, rb)
	}
	th := d.blob.Thresholds
	i := 0
	var leadCC, trailCC uint8
	for i < len(s) {
		c, w := decodeUTF16(s, i)
		v := d.lookup(c)
		cc := th.GetCCFromYesOrMaybe(v)
		if cc == 0 && th.IsDecompYes(v) {
			break
		}
		if i == 0 {
			leadCC = cc
		}
		trailCC = cc
		i += w
	}
	if err := rb.AppendString(s[:i], leadCC, trailCC); err != nil {
		return err
	}
	return rb.AppendZeroCC(s[i:])
}

func (d *Decomposer) lookup(c rune) uint16 {
	if c < 0x10000 {
		return d.blob.Trie.GetBMP(uint16(c))
	}
	return d.blob.Trie.GetSupplementary(c)
}
