// Package unormgen builds "Nrm2" data blobs (see unorm/unormdata) from a
// small, hand-curated subset of the Unicode Character Database: the offline
// data-generation step that turns UCD source tables into the packed binary
// format the normalization engine actually consumes at run time.
//
// The curated tables here cover combining diacritics and precomposed Latin
// letters used by this repository's test scenarios plus one
// compatibility ligature and a handful of case-fold mappings; they are not a UCD
// transcription tool. A production build of this package would read the
// UCD's UnicodeData.txt and CompositionExclusions.txt, grounded the same
// way, over a much larger table.
package unormgen

// mark is a combining character: it carries a canonical combining class but
// has no decomposition of its own.
type mark struct {
	cp  rune
	ccc uint8
}

// mapping is a decomposition record: cp decomposes to text (itself already
// fully decomposed, matching the UCD's canonical-decomposition invariant).
// compat marks a compatibility-only mapping (present in the NFKC/NFKD and
// NFKC_CF data sets but not in NFC/NFD's).
type mapping struct {
	cp      rune
	text    []rune
	compat  bool
	foldsTo bool // true: this is a case-fold-only mapping, compat-blob-only like compat
}

// composition is a canonical composition pair: lead+trail -> composite.
// Composition pairs are canonical-only — compatibility decompositions
// (like the fi ligature) never have a reverse composition entry, matching
// real Unicode behavior.
type composition struct {
	lead, trail, composite rune
	forwardCombining       bool
}

// Curated combining marks. CCC values match the Unicode Character Database.
var marks = []mark{
	{cp: 0x0301, ccc: 230}, // COMBINING ACUTE ACCENT
	{cp: 0x0327, ccc: 202}, // COMBINING CEDILLA
}

// Curated canonical decomposition mappings.
var canonicalMappings = []mapping{
	{cp: 0x00E9, text: []rune{0x0065, 0x0301}},         // é -> e + acute
	{cp: 0x00E7, text: []rune{0x0065, 0x0327}},         // ç -> e + cedilla
	{cp: 0x1E09, text: []rune{0x0065, 0x0327, 0x0301}}, // canonical e-cedilla-acute -> e + cedilla + acute
}

// Curated compatibility-only decomposition mappings, present in the
// NFKC/NFKD and NFKC_CF data sets in addition to the canonical ones above.
var compatMappings = []mapping{
	{cp: 0xFB01, text: []rune{0x0066, 0x0069}, compat: true}, // ﬁ ligature -> f + i
}

// Curated case-fold mappings, present only in the NFKC_CF data set, on top
// of every NFKC mapping. Case folding is baked in as extra
// decomposition-shaped records rather than a separate fold step in the
// engine.
var caseFoldMappings = []mapping{
	{cp: 0x0041, text: []rune{0x0061}, compat: true, foldsTo: true}, // A -> a
	{cp: 0x0042, text: []rune{0x0062}, compat: true, foldsTo: true}, // B -> b
	{cp: 0x0043, text: []rune{0x0063}, compat: true, foldsTo: true}, // C -> c
	{cp: 0x00C9, text: []rune{0x0065, 0x0301}, compat: true, foldsTo: true}, // É -> e + acute
}

// Curated canonical compositions. Every entry here must correspond to a
// canonicalMappings entry with the operands swapped (decompose(composite)
// == lead ++ trail), which is the invariant real UCD-derived tables
// maintain automatically.
var compositions = []composition{
	{lead: 0x0065, trail: 0x0301, composite: 0x00E9, forwardCombining: false},
	{lead: 0x0065, trail: 0x0327, composite: 0x00E7, forwardCombining: true},
	{lead: 0x00E7, trail: 0x0301, composite: 0x1E09, forwardCombining: false},
}

func init() {
	for _, mk := range marks {
		if !isUnicodeMark(mk.cp) {
			panic("unormgen: curated mark table entry is not a Unicode mark category")
		}
	}
}
