package unormdata

import (
	"bytes"
	"fmt"
)

// Blob is a parsed, validated "Nrm2" data set: a trie, a set of composition
// lists, and the variable-length decomposition mapping records, plus the
// norm16 thresholds needed to interpret them. A Blob is immutable after
// Parse returns and may be shared by any number of concurrent normalization
// calls.
type Blob struct {
	Thresholds Thresholds
	Trie       *Trie

	compositions []uint16
	leadIndex    []leadEntry
	extraData    []uint16
}

// Parse validates and decodes a "Nrm2" blob. It does not retain a reference
// into data's backing array: Parse fully decodes the trie, compositions, and
// mapping regions into owned slices, so the caller's byte slice (e.g. a
// memory-mapped file) may be released once Parse returns.
func Parse(data []byte) (*Blob, error) {
	if len(data) < minHeaderSize {
		return nil, fmt.Errorf("unormdata: header too short (%d bytes): %w", len(data), ErrInvalidFormat)
	}
	if !bytes.Equal(data[0:4], dataFormatTag[:]) {
		return nil, fmt.Errorf("unormdata: bad dataFormat tag %q: %w", data[0:4], ErrInvalidFormat)
	}
	if data[4] != formatVersion0 {
		return nil, fmt.Errorf("unormdata: unsupported formatVersion %d: %w", data[4], ErrInvalidFormat)
	}
	if data[5] != 0 {
		return nil, fmt.Errorf("unormdata: big-endian data rejected by a little-endian-only reader: %w", ErrInvalidFormat)
	}
	if data[6] != 0 {
		return nil, fmt.Errorf("unormdata: non-ASCII charsetFamily rejected: %w", ErrInvalidFormat)
	}

	indexesStart := headerFixedSize
	p := newParser(data)
	p.seek(indexesStart)
	trieByteOffsetRaw, err := p.u32()
	if err != nil {
		return nil, err
	}
	indexesLength := int(trieByteOffsetRaw / 4)
	if indexesLength <= IXMinMaybeYes {
		return nil, fmt.Errorf("unormdata: indexes array too short (%d entries): %w", indexesLength, ErrInvalidFormat)
	}

	p.seek(indexesStart)
	rawIndexes := make([]uint32, indexesLength)
	for i := range rawIndexes {
		v, err := p.u32()
		if err != nil {
			return nil, err
		}
		rawIndexes[i] = v
	}
	var indexes [IXCount]uint32
	copy(indexes[:], rawIndexes)

	trieByteOffset := int(indexes[IXNormTrieOffset])
	extraDataByteOffset := int(indexes[IXExtraDataOffset])
	if trieByteOffset < 0 || extraDataByteOffset < trieByteOffset || indexesStart+extraDataByteOffset > len(data) {
		return nil, fmt.Errorf("unormdata: inconsistent region offsets (trie=%d extra=%d): %w", trieByteOffset, extraDataByteOffset, ErrInvalidFormat)
	}

	trieBytes := data[indexesStart+trieByteOffset : indexesStart+extraDataByteOffset]
	trie, err := parseTrie(trieBytes)
	if err != nil {
		return nil, err
	}

	ep := newParser(data)
	ep.seek(indexesStart + extraDataByteOffset)
	leadIndex, err := parseLeadIndex(ep)
	if err != nil {
		return nil, err
	}
	numComp, err := ep.u32()
	if err != nil {
		return nil, err
	}
	compositions, err := ep.u16Slice(int(numComp))
	if err != nil {
		return nil, err
	}
	numExtra, err := ep.u32()
	if err != nil {
		return nil, err
	}
	extraData, err := ep.u16Slice(int(numExtra))
	if err != nil {
		return nil, err
	}

	return &Blob{
		Thresholds: Thresholds{
			MinDecompNoCP:    indexes[IXMinDecompNoCP],
			MinCompNoMaybeCP: indexes[IXMinCompNoMaybeCP],
			MinYesNo:         uint16(indexes[IXMinYesNo]),
			MinNoNo:          uint16(indexes[IXMinNoNo]),
			LimitNoNo:        uint16(indexes[IXLimitNoNo]),
			MinMaybeYes:      uint16(indexes[IXMinMaybeYes]),
		},
		Trie:         trie,
		compositions: compositions,
		leadIndex:    leadIndex,
		extraData:    extraData,
	}, nil
}
