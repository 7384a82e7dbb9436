package unormdata

import (
	"fmt"
	"sort"
)

// Trie maps a code point to its 16-bit norm16 classification value via a
// two-stage lookup. The BMP half is a flat two-stage array (fast: one
// index, one lookup); supplementary code points, which are comparatively
// rare in any real text, fall back to a sorted table searched by binary
// search rather than a second two-stage array — a deliberate simplification
// documented in DESIGN.md, not a difference in the public contract: callers
// still get all three accessor shapes (BMP code unit, lead surrogate as a
// code point, and a decoded supplementary pair).
type Trie struct {
	blockShift uint
	blockMask  uint32

	stage1 []uint16 // index: cp>>blockShift, value: block start in stage2
	stage2 []uint16 // index: stage1[...] + (cp&blockMask), value: norm16

	supp []suppEntry // sorted by codepoint, for cp >= 0x10000
}

type suppEntry struct {
	cp    rune
	value uint16
}

// GetBMP returns the norm16 value for a single UTF-16 code unit treated as a
// code point. This is also the correct call for an unpaired lead surrogate:
// real normalization data has no entries above the BMP for lone surrogates,
// so the lookup naturally returns 0.
func (t *Trie) GetBMP(c uint16) uint16 {
	idx := uint32(c) >> t.blockShift
	if int(idx) >= len(t.stage1) {
		return 0
	}
	start := uint32(t.stage1[idx])
	return t.stage2[start+(uint32(c)&t.blockMask)]
}

// GetSupplementary returns the norm16 value for a decoded supplementary code
// point (c >= 0x10000).
func (t *Trie) GetSupplementary(c rune) uint16 {
	i := sort.Search(len(t.supp), func(i int) bool { return t.supp[i].cp >= c })
	if i < len(t.supp) && t.supp[i].cp == c {
		return t.supp[i].value
	}
	return 0
}

// GetFromSurrogatePair combines a lead/trail UTF-16 surrogate pair into a
// code point and looks it up.
func (t *Trie) GetFromSurrogatePair(lead, trail uint16) uint16 {
	c := rune(0x10000 + (rune(lead)-0xD800)<<10 + (rune(trail) - 0xDC00))
	return t.GetSupplementary(c)
}

// Get looks up any decoded code point, dispatching to the BMP or
// supplementary half as appropriate. Most of the hot paths in package unorm
// use GetBMP/GetSupplementary directly to avoid the branch; Get exists for
// callers that already have a decoded rune and don't know or care which
// half it falls in.
func (t *Trie) Get(c rune) uint16 {
	if c < 0x10000 {
		return t.GetBMP(uint16(c))
	}
	return t.GetSupplementary(c)
}

// parseTrie decodes the serialized form written by unormgen:
//
//	u32 blockShift
//	u32 numStage1
//	u32 numStage2
//	u32 numSupplementary
//	stage1 []uint16
//	stage2 []uint16
//	supplementary: numSupplementary * (u32 codepoint, u16 value)
func parseTrie(data []byte) (*Trie, error) {
	p := newParser(data)
	shift, err := p.u32()
	if err != nil {
		return nil, err
	}
	numStage1, err := p.u32()
	if err != nil {
		return nil, err
	}
	numStage2, err := p.u32()
	if err != nil {
		return nil, err
	}
	numSupp, err := p.u32()
	if err != nil {
		return nil, err
	}
	stage1, err := p.u16Slice(int(numStage1))
	if err != nil {
		return nil, err
	}
	stage2, err := p.u16Slice(int(numStage2))
	if err != nil {
		return nil, err
	}
	supp := make([]suppEntry, numSupp)
	for i := range supp {
		cp, err := p.u32()
		if err != nil {
			return nil, err
		}
		v, err := p.u16()
		if err != nil {
			return nil, err
		}
		supp[i] = suppEntry{cp: rune(cp), value: v}
	}
	if shift == 0 || shift > 16 {
		return nil, fmt.Errorf("unormdata: implausible trie block shift %d: %w", shift, ErrInvalidFormat)
	}
	return &Trie{
		blockShift: uint(shift),
		blockMask:  (1 << shift) - 1,
		stage1:     stage1,
		stage2:     stage2,
		supp:       supp,
	}, nil
}
