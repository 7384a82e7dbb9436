package unormdata

// Decomposition mapping record layout:
//
//	unit0: bits 0-4 mapping length (0-31 UTF-16 code units), bit 5 flags a
//	       following lead-cc word, bits 8-15 the trail combining class
//	unit1 (optional): bits 8-15 the lead combining class
//	then `length` UTF-16 code units of the NFD mapping text
const (
	mappingLengthMask = 0x1F
	mappingHasLeadCCC = 0x20
)

// Mapping is a decoded decomposition record: `Text` is the NFD mapping as
// UTF-16 code units (so a supplementary character in the mapping is a
// surrogate pair, same as the wire format), with LeadCC/TrailCC the
// combining classes of its first and last code points.
type Mapping struct {
	Text    []uint16
	LeadCC  uint8
	TrailCC uint8
}

// GetMapping decodes the decomposition record for a decomposing (non-
// algorithmic, non-Hangul) norm16 value.
func (b *Blob) GetMapping(v uint16) Mapping {
	data := b.extraData[b.Thresholds.mappingOffset(v):]
	first := data[0]
	length := int(first & mappingLengthMask)
	trailCC := uint8(first >> 8)
	idx := 1
	var leadCC uint8
	if first&mappingHasLeadCCC != 0 {
		leadCC = uint8(data[idx] >> 8)
		idx++
	}
	return Mapping{
		Text:    data[idx : idx+length],
		LeadCC:  leadCC,
		TrailCC: trailCC,
	}
}
