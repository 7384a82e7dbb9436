package unormdata

import "sort"

// Composition record layout: a trailing-character keyed
// sorted list associated with a forward-combining lead character. Each
// record is 2 or 3 16-bit units:
//
//	unit0 = (trail << 1) | tripleFlag, with the top bit marking "last record
//	        in this list" once the search has walked past it
//	unit1 = composite (if 2-unit: low bit is the forward-combining flag,
//	        remaining bits the BMP composite) or the high word of a
//	        supplementary composite's key (if 3-unit)
//	unit2 = present only for 3-unit records: the low word of the composite
//	        (or, for trail > compOneTrailLimit, the composite itself)
//
// Records within a list are sorted ascending by trail; Combine performs a
// linear search, switching to the two-level key for trail characters at or
// above compOneTrailLimit.
const (
	compOneTrailLimit = 0x3400
	compOneTriple     = 0x0001
	compOneTrailMask  = 0xFFFE
	compOneLastTuple  = 0x8000
	compTrailShift    = 9
	compTwoTrailShift = 6
	compTwoTrailMask  = 0xFFC0
)

// Combine performs the composition-table linear search for a forward-
// combining lead's compositions list against a trailing code point. It
// returns the composite code point and whether the composite is itself
// forward-combining (participates in further composition), or ok=false if
// no entry matches.
func Combine(table []uint16, trail rune) (composite rune, forwardCombining bool, ok bool) {
	i := 0
	if trail < compOneTrailLimit {
		key1 := uint16(trail << 1)
		for {
			if i >= len(table) {
				return 0, false, false
			}
			firstUnit := table[i]
			if key1 <= firstUnit&compOneTrailMask || firstUnit&compOneLastTuple != 0 {
				if key1 == firstUnit&compOneTrailMask {
					if firstUnit&compOneTriple != 0 {
						c := (rune(table[i+1]) << 16) | rune(table[i+2])
						return c >> 1, c&1 != 0, true
					}
					c := rune(table[i+1])
					return c >> 1, c&1 != 0, true
				}
				return 0, false, false
			}
			i += 2 + int(firstUnit&compOneTriple)
		}
	}

	key1 := uint16(compOneTrailLimit+(trail>>compTrailShift)) &^ compOneTriple
	key2 := uint16(trail << compTwoTrailShift)
	for {
		if i >= len(table) {
			return 0, false, false
		}
		firstUnit := table[i]
		if key1 > firstUnit&compOneTrailMask {
			i += 2 + int(firstUnit&compOneTriple)
			continue
		}
		if key1 != firstUnit&compOneTrailMask {
			return 0, false, false
		}
		secondUnit := table[i+1]
		if key2 > secondUnit&compTwoTrailMask {
			if firstUnit&compOneLastTuple != 0 {
				return 0, false, false
			}
			i += 3
			continue
		}
		if key2 != secondUnit&compTwoTrailMask {
			return 0, false, false
		}
		c := (rune(secondUnit&^compTwoTrailMask) << 16) | rune(table[i+2])
		return c >> 1, c&1 != 0, true
	}
}

// leadEntry associates a composition-lead code point (a comp-yes-zero-cc
// starter or a maybe-yes character) with the start of its compositions list
// within the shared compositions array.
type leadEntry struct {
	cp    rune
	start uint16
	count uint16
}

// CompositionsFor returns the compositions list for a lead code point, if it
// has one. Leads are looked up by code point via a sorted side table
// rather than through spare bits of the lead's own norm16 value (see
// DESIGN.md); the contract — a sorted list, searched by Combine — is the
// same either way.
func (b *Blob) CompositionsFor(lead rune) ([]uint16, bool) {
	i := sort.Search(len(b.leadIndex), func(i int) bool { return b.leadIndex[i].cp >= lead })
	if i >= len(b.leadIndex) || b.leadIndex[i].cp != lead {
		return nil, false
	}
	e := b.leadIndex[i]
	return b.compositions[e.start : e.start+e.count], true
}

func parseLeadIndex(p *parser) ([]leadEntry, error) {
	n, err := p.u32()
	if err != nil {
		return nil, err
	}
	out := make([]leadEntry, n)
	for i := range out {
		cp, err := p.u32()
		if err != nil {
			return nil, err
		}
		start, err := p.u16()
		if err != nil {
			return nil, err
		}
		count, err := p.u16()
		if err != nil {
			return nil, err
		}
		out[i] = leadEntry{cp: rune(cp), start: start, count: count}
	}
	return out, nil
}
