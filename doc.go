// Package unorm implements the Unicode normalization core: decomposition
// and composition of UTF-16 code-unit sequences into NFC, NFD, NFKC, NFKD,
// and NFKC_CF, driven by a precompiled binary data blob (package
// unorm/unormdata).
//
// A Normalizer is built from a parsed unormdata.Blob via NewNormalizer, or
// obtained pre-loaded and cached via the NFC, NFKC, and NFKCCaseFold
// singleton accessors. ReorderingBuffer, Decomposer, and Composer implement
// the engine's three stages and are exported for callers assembling custom
// pipelines (e.g. a streaming normalizer that interleaves decomposition with
// its own I/O), but ordinary callers only need Normalizer.
package unorm
