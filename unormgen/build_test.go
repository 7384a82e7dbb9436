package unormgen

import (
	"strconv"
	"strings"
	"testing"

	"github.com/normform/unorm/unormdata"
)

// The builder's contract is that unormdata can read back exactly what it
// wrote; these tests run each built blob through the real parser rather
// than inspecting bytes.

func TestBuildNFCRoundTrips(t *testing.T) {
	blob, err := unormdata.Parse(BuildNFC())
	if err != nil {
		t.Fatalf("Parse(BuildNFC()): %v", err)
	}

	th := blob.Thresholds
	if v := blob.Trie.GetBMP(0x00E9); th.IsDecompYes(v) {
		t.Errorf("norm16(00E9) = %#x: classified decomposition-yes", v)
	}
	m := blob.GetMapping(blob.Trie.GetBMP(0x00E9))
	if hexUnits(m.Text) != "65 301" {
		t.Errorf("mapping(00E9) = %s, want 65 301", hexUnits(m.Text))
	}
	if m.LeadCC != 0 || m.TrailCC != 230 {
		t.Errorf("mapping(00E9) lead/trail cc = %d/%d, want 0/230", m.LeadCC, m.TrailCC)
	}

	if cc := th.GetCCFromYesOrMaybe(blob.Trie.GetBMP(0x0301)); cc != 230 {
		t.Errorf("cc(0301) = %d, want 230", cc)
	}
	if cc := th.GetCCFromYesOrMaybe(blob.Trie.GetBMP(0x0327)); cc != 202 {
		t.Errorf("cc(0327) = %d, want 202", cc)
	}

	if v := blob.Trie.GetBMP(0xAC00); !th.IsHangul(v) {
		t.Errorf("norm16(AC00) = %#x: not the Hangul marker", v)
	}
	if v := blob.Trie.GetBMP(0x1161); th.IsCompYesAndZeroCC(v) || v < th.MinMaybeYes {
		t.Errorf("norm16(1161) = %#x: V jamo must be maybe-yes", v)
	}

	list, ok := blob.CompositionsFor(0x0065)
	if !ok {
		t.Fatalf("CompositionsFor(0065): no list")
	}
	c, fwd, ok := unormdata.Combine(list, 0x0301)
	if !ok || c != 0x00E9 {
		t.Errorf("Combine(e, acute) = %04X ok=%v, want 00E9", c, ok)
	}
	if fwd {
		t.Errorf("Combine(e, acute): composite marked forward-combining")
	}
	c, fwd, ok = unormdata.Combine(list, 0x0327)
	if !ok || c != 0x00E7 || !fwd {
		t.Errorf("Combine(e, cedilla) = %04X fwd=%v ok=%v, want 00E7 forward-combining", c, fwd, ok)
	}
	if _, _, ok := unormdata.Combine(list, 0x0328); ok {
		t.Errorf("Combine(e, ogonek) matched an absent trail")
	}
}

func TestBuildVariantsDiffer(t *testing.T) {
	nfc, err := unormdata.Parse(BuildNFC())
	if err != nil {
		t.Fatal(err)
	}
	nfkc, err := unormdata.Parse(BuildNFKC())
	if err != nil {
		t.Fatal(err)
	}
	cf, err := unormdata.Parse(BuildNFKCCaseFold())
	if err != nil {
		t.Fatal(err)
	}

	// The fi ligature only decomposes under the compatibility sets.
	if v := nfc.Trie.GetBMP(0xFB01); !nfc.Thresholds.IsDecompYes(v) {
		t.Errorf("canonical set decomposes FB01")
	}
	if v := nfkc.Trie.GetBMP(0xFB01); nfkc.Thresholds.IsDecompYes(v) {
		t.Errorf("compatibility set does not decompose FB01")
	}

	// Case folds only appear in the NFKC_CF set, and pull its fast-path
	// threshold down to the uppercase letters.
	if v := nfkc.Trie.GetBMP(0x0041); nfkc.Thresholds.IsDecompYes(v) == false {
		t.Errorf("NFKC set folds A")
	}
	if v := cf.Trie.GetBMP(0x0041); cf.Thresholds.IsDecompYes(v) {
		t.Errorf("NFKC_CF set does not fold A")
	}
	if got := cf.Thresholds.GetMinDecompNoCodePoint(); got != 0x0041 {
		t.Errorf("NFKC_CF MinDecompNoCP = %04X, want 0041", got)
	}
	if got := nfc.Thresholds.GetMinDecompNoCodePoint(); got != 0x00C0 {
		t.Errorf("NFC MinDecompNoCP = %04X, want 00C0", got)
	}
}

func hexUnits(s []uint16) string {
	parts := make([]string, len(s))
	for i, u := range s {
		parts[i] = strconv.FormatUint(uint64(u), 16)
	}
	return strings.Join(parts, " ")
}
