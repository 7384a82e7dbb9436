package unorm

import (
	"fmt"
	"sync"

	"github.com/normform/unorm/unormdata"
	"github.com/normform/unorm/unormgen"
)

// Loader supplies the raw bytes of one of the three named data sets. The
// engine only consumes a parsed blob; where the bytes come from is the
// Loader's concern — by default they are built in-process by unormgen, but
// a caller linking a custom data build can install its own Loader before
// first use of NFC/NFKC/NFKCCaseFold.
type Loader func(form Form) ([]byte, error)

var loadData Loader = defaultLoader

// defaultLoader builds each data set from unormgen's curated tables
// in-process, rather than reading a file — this repository ships no
// prebuilt data file, so there is nothing on disk for a default Loader to
// read. A host that wants file-backed or embedded data instead generates it
// with cmd/gennorm2 and installs its own Loader via SetLoader before first
// use.
func defaultLoader(form Form) ([]byte, error) {
	switch form {
	case FormNFC, FormNFD:
		return unormgen.BuildNFC(), nil
	case FormNFKC, FormNFKD:
		return unormgen.BuildNFKC(), nil
	case FormNFKCCaseFold:
		return unormgen.BuildNFKCCaseFold(), nil
	default:
		return nil, fmt.Errorf("unorm: unknown form %d: %w", form, ErrInvalidArgument)
	}
}

// SetLoader overrides how singleton instances obtain their blob bytes. It
// must be called, if at all, before NFC/NFKC/NFKCCaseFold are first used —
// singletons are cached forever once built.
func SetLoader(l Loader) { loadData = l }

type singleton struct {
	once sync.Once
	n    *Normalizer
	err  error
}

var (
	nfcSingleton  singleton
	nfkcSingleton singleton
	nfkcCfSingle  singleton
)

func (s *singleton) get(form Form) (*Normalizer, error) {
	s.once.Do(func() {
		data, err := loadData(form)
		if err != nil {
			s.err = err
			return
		}
		blob, err := unormdata.Parse(data)
		if err != nil {
			s.err = err
			return
		}
		s.n = NewNormalizer(blob, form)
	})
	return s.n, s.err
}

// NFC returns the lazily-initialized, process-wide NFC normalizer.
func NFC() (*Normalizer, error) { return nfcSingleton.get(FormNFC) }

// NFKC returns the lazily-initialized, process-wide NFKC normalizer.
func NFKC() (*Normalizer, error) { return nfkcSingleton.get(FormNFKC) }

// NFKCCaseFold returns the lazily-initialized, process-wide NFKC_CF
// normalizer.
func NFKCCaseFold() (*Normalizer, error) { return nfkcCfSingle.get(FormNFKCCaseFold) }
