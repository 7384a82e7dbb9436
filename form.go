package unorm

import (
	"fmt"

	"github.com/normform/unorm/unormdata"
)

// Form identifies one of the four canonical Unicode normalization forms plus
// the compatibility-caseless variant.
type Form int

const (
	FormNFC Form = iota
	FormNFD
	FormNFKC
	FormNFKD
	FormNFKCCaseFold
)

// Normalizer is a loaded, immutable normalization engine bound to one data
// set. It is safe for concurrent use by any number of callers — Blob, Trie
// and Props are read-only after Parse, and every call gets its own
// ReorderingBuffer.
type Normalizer struct {
	blob *unormdata.Blob
	form Form
	dec  *Decomposer
	comp *Composer
}

// NewNormalizer builds a Normalizer for form from a parsed blob. The blob's
// mapping table must already match the form's canonical/compatibility
// distinction — callers typically obtain blob, form pairs
// from the NFC/NFKC/NFKCCaseFold singleton accessors rather than calling
// this directly.
func NewNormalizer(blob *unormdata.Blob, form Form) *Normalizer {
	return &Normalizer{
		blob: blob,
		form: form,
		dec:  NewDecomposer(blob),
		comp: NewComposer(blob),
	}
}

// Decompose writes the fully decomposed (NFD or NFKD) form of s to dst,
// which must be empty. Valid for any Normalizer regardless of its bound
// Form: decomposition is always available since composition is built on
// top of it. On failure dst is truncated back to empty — partial output is
// never left behind.
func (n *Normalizer) Decompose(s []uint16, dst *[]uint16) error {
	if dst == nil {
		return fmt.Errorf("unorm: nil destination: %w", ErrInvalidArgument)
	}
	rb := NewReorderingBuffer(n.blob, dst)
	if err := n.dec.Decompose(s, rb); err != nil {
		*dst = (*dst)[:0]
		return err
	}
	return nil
}

// DecomposeAndAppend appends s's decomposition to dst, which may already
// hold prior output; the seam between dst's existing tail and s's leading
// combining marks is reordered correctly. With doDecompose false the caller
// asserts s is already decomposed and only the seam is reordered. On
// failure dst is left valid but unspecified.
func (n *Normalizer) DecomposeAndAppend(s []uint16, dst *[]uint16, doDecompose bool) error {
	if dst == nil {
		return fmt.Errorf("unorm: nil destination: %w", ErrInvalidArgument)
	}
	rb := NewReorderingBuffer(n.blob, dst)
	return n.dec.DecomposeAndAppend(s, rb, doDecompose)
}

// Compose writes the composed form of s to dst (NFC, NFKC, or NFKC_CF
// depending on which blob this Normalizer is bound to), which must be
// empty. On failure dst is truncated back to empty.
func (n *Normalizer) Compose(s []uint16, dst *[]uint16) error {
	if dst == nil {
		return fmt.Errorf("unorm: nil destination: %w", ErrInvalidArgument)
	}
	rb := NewReorderingBuffer(n.blob, dst)
	if err := n.comp.Compose(s, rb); err != nil {
		*dst = (*dst)[:0]
		return err
	}
	return nil
}

// ComposeAndAppend appends s's composition to dst, re-composing the seam
// between dst's trailing span (back to its last composition starter) and
// s's leading span so that characters combining across the append boundary
// compose exactly as if dst and s had been normalized as one string. With
// doCompose false the caller asserts s is already composed and only the
// seam is re-composed. On failure dst is left valid but unspecified.
func (n *Normalizer) ComposeAndAppend(s []uint16, dst *[]uint16, doCompose bool) error {
	if dst == nil {
		return fmt.Errorf("unorm: nil destination: %w", ErrInvalidArgument)
	}
	rb := NewReorderingBuffer(n.blob, dst)
	return n.comp.ComposeAndAppend(s, rb, doCompose)
}

// Normalize writes s's form (as selected by NewNormalizer's form argument)
// to dst. NFC/NFKC/NFKCCaseFold compose; NFD/NFKD only decompose.
func (n *Normalizer) Normalize(s []uint16, dst *[]uint16) error {
	switch n.form {
	case FormNFD, FormNFKD:
		return n.Decompose(s, dst)
	default:
		return n.Compose(s, dst)
	}
}
