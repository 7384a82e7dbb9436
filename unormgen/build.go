package unormgen

import (
	"encoding/binary"
	"sort"
)

// Thresholds shared by every curated data set this package builds. A real
// generator would compute these from how large each norm16 sub-range needs
// to be for the full UCD; the curated tables here are small enough that
// generous fixed constants comfortably hold every assigned value; see
// DESIGN.md.
const (
	minYesNo    = 0x0100
	minNoNo     = 0x0200
	limitNoNo   = 0x0300
	minMaybeYes = 0xFE00 // the V/T jamo block: forward-combining, no mapping

	algorithmicRangeSize = 4
	trieBlockShift       = 8
	trieBlockSize        = 1 << trieBlockShift

	hangulSBase  = 0xAC00
	hangulSCount = 19 * 21 * 28

	jamoVBase  = 0x1161
	jamoVCount = 21
	jamoTBase  = 0x11A8 // first non-empty T jamo
	jamoTCount = 27
)

var hangulNorm16 = uint16(limitNoNo - 1)

// defaultMinCP is the fast-path floor when no curated entry sits lower:
// nothing below U+00C0 decomposes or combines in the canonical tables.
const defaultMinCP = 0x00C0

// BuildNFC returns the "Nrm2" blob for canonical composition/decomposition
// (NFC/NFD): canonical mappings and compositions only.
func BuildNFC() []byte {
	return buildBlob(canonicalMappings, compositions)
}

// BuildNFKC returns the "Nrm2" blob for compatibility composition/
// decomposition (NFKC/NFKD): canonical mappings plus compatibility
// mappings; compositions remain canonical-only, matching real Unicode
// semantics (a compatibility mapping never has a reverse composition).
func BuildNFKC() []byte {
	all := append(append([]mapping{}, canonicalMappings...), compatMappings...)
	return buildBlob(all, compositions)
}

// BuildNFKCCaseFold returns the "Nrm2" blob for NFKC_CF: every NFKC mapping
// plus the curated case-fold mappings, baked in as ordinary decomposition
// records (see source.go).
func BuildNFKCCaseFold() []byte {
	all := append(append([]mapping{}, canonicalMappings...), compatMappings...)
	all = append(all, caseFoldMappings...)
	return buildBlob(all, compositions)
}

func buildBlob(mappingList []mapping, compositionList []composition) []byte {
	norm16, extraData := buildMappings(mappingList)
	trie := buildTrie(norm16)
	extraRegion := buildExtraDataRegion(compositionList, extraData)

	// The fast-path thresholds are the lowest code point any curated entry
	// touches: the NFKC_CF set reaches down to the uppercase ASCII letters
	// its fold mappings cover, the canonical sets stay at the Latin-1
	// accented block.
	minCP := rune(defaultMinCP)
	for _, m := range mappingList {
		if m.cp < minCP {
			minCP = m.cp
		}
	}
	for _, mk := range marks {
		if mk.cp < minCP {
			minCP = mk.cp
		}
	}

	const indexCount = 16
	indexesLen := indexCount * 4
	trieOffset := indexesLen
	extraOffset := trieOffset + len(trie)

	out := make([]byte, 0, 8+indexesLen+len(trie)+len(extraRegion))
	out = append(out, 'N', 'r', 'm', '2')
	out = append(out, 1, 0, 0, 0) // formatVersion0, isBigEndian=0, charsetFamily=0, reserved

	indexes := make([]uint32, indexCount)
	indexes[0] = uint32(trieOffset)
	indexes[1] = uint32(extraOffset)
	indexes[2] = uint32(minCP)
	indexes[3] = uint32(minCP)
	indexes[4] = minYesNo
	indexes[5] = minNoNo
	indexes[6] = limitNoNo
	indexes[7] = minMaybeYes
	for _, v := range indexes {
		out = appendU32(out, v)
	}

	out = append(out, trie...)
	out = append(out, extraRegion...)
	return out
}

// buildMappings assigns norm16 values to every decomposing code point and
// serializes their mapping records into the extraData array, per
// unormdata/mapping.go's record layout.
func buildMappings(mappingList []mapping) (norm16 map[rune]uint16, extraData []uint16) {
	norm16 = make(map[rune]uint16)
	for _, m := range mappingList {
		offset := len(extraData)
		norm16[m.cp] = uint16(minNoNo + offset)

		trailCC := cccOf(m.text[len(m.text)-1])
		leadCC := cccOf(m.text[0])
		first := uint16(len(m.text)) | uint16(trailCC)<<8
		if leadCC != 0 {
			first |= 0x20
			extraData = append(extraData, first, uint16(leadCC)<<8)
		} else {
			extraData = append(extraData, first)
		}
		for _, r := range m.text {
			extraData = append(extraData, uint16(r))
		}
	}
	for _, mk := range marks {
		norm16[mk.cp] = uint16(minYesNo + int(mk.ccc) - 2)
	}
	return norm16, extraData
}

// cccOf returns the curated combining class for r, or 0 if r carries none
// (every code point not in the marks table is a starter).
func cccOf(r rune) uint8 {
	for _, mk := range marks {
		if mk.cp == r {
			return mk.ccc
		}
	}
	return 0
}

// buildTrie serializes a flat two-stage BMP trie (no block sharing — a
// deliberate simplification for this curated generator, see DESIGN.md) plus
// the algorithmic Hangul syllable range.
func buildTrie(norm16 map[rune]uint16) []byte {
	stage2 := make([]uint16, 0x10000)
	for cp, v := range norm16 {
		if cp < 0x10000 {
			stage2[cp] = v
		}
	}
	for cp := rune(hangulSBase); cp < hangulSBase+hangulSCount; cp++ {
		stage2[cp] = hangulNorm16
	}
	// V and T jamo combine forward onto an L or LV starter but have no
	// mapping of their own: maybe-yes.
	for cp := rune(jamoVBase); cp < jamoVBase+jamoVCount; cp++ {
		stage2[cp] = minMaybeYes
	}
	for cp := rune(jamoTBase); cp < jamoTBase+jamoTCount; cp++ {
		stage2[cp] = minMaybeYes
	}

	numStage1 := 0x10000 / trieBlockSize
	stage1 := make([]uint16, numStage1)
	for i := range stage1 {
		stage1[i] = uint16(i * trieBlockSize)
	}

	out := make([]byte, 0, 16+len(stage1)*2+len(stage2)*2)
	out = appendU32(out, trieBlockShift)
	out = appendU32(out, uint32(len(stage1)))
	out = appendU32(out, uint32(len(stage2)))
	out = appendU32(out, 0) // numSupplementary: no supplementary entries in the curated set
	out = appendU16Slice(out, stage1)
	out = appendU16Slice(out, stage2)
	return out
}

// buildExtraDataRegion serializes the lead index, the compositions array,
// and the extraData (mapping) array, in the order unormdata.Parse expects.
func buildExtraDataRegion(compositionList []composition, extraData []uint16) []byte {
	byLead := map[rune][]composition{}
	var leads []rune
	for _, c := range compositionList {
		if _, ok := byLead[c.lead]; !ok {
			leads = append(leads, c.lead)
		}
		byLead[c.lead] = append(byLead[c.lead], c)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i] < leads[j] })

	var compositions []uint16
	type leadRecord struct {
		cp    rune
		start uint16
		count uint16
	}
	var leadRecords []leadRecord
	for _, lead := range leads {
		list := byLead[lead]
		sort.Slice(list, func(i, j int) bool { return list[i].trail < list[j].trail })
		start := len(compositions)
		for _, c := range list {
			unit0 := uint16(c.trail << 1)
			unit1 := uint16(c.composite<<1) | 0
			if c.forwardCombining {
				unit1 |= 1
			}
			compositions = append(compositions, unit0, unit1)
		}
		leadRecords = append(leadRecords, leadRecord{cp: lead, start: uint16(start), count: uint16(len(compositions) - start)})
	}

	out := appendU32(nil, uint32(len(leadRecords)))
	for _, r := range leadRecords {
		out = appendU32(out, uint32(r.cp))
		out = appendU16(out, r.start)
		out = appendU16(out, r.count)
	}
	out = appendU32(out, uint32(len(compositions)))
	out = appendU16Slice(out, compositions)
	out = appendU32(out, uint32(len(extraData)))
	out = appendU16Slice(out, extraData)
	return out
}

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendU16Slice(dst []byte, vs []uint16) []byte {
	for _, v := range vs {
		dst = appendU16(dst, v)
	}
	return dst
}
