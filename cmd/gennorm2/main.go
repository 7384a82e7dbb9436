// Command gennorm2 writes a "Nrm2" normalization data blob to disk. It is
// the offline counterpart to package unorm's run-time loader: a build
// pipeline that wants on-disk or embedded data files (rather than the
// in-process default the unorm package falls back to) runs this command and
// points unorm.SetLoader at the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/normform/unorm/unormgen"
)

func main() {
	form := flag.String("form", "nfc", "data set to generate: nfc, nfkc, or nfkccf")
	out := flag.String("out", "", "output file path (required)")
	flag.Parse()

	if *out == "" {
		fmt.Fprintln(os.Stderr, "gennorm2: -out is required")
		os.Exit(2)
	}

	var data []byte
	switch *form {
	case "nfc":
		data = unormgen.BuildNFC()
	case "nfkc":
		data = unormgen.BuildNFKC()
	case "nfkccf":
		data = unormgen.BuildNFKCCaseFold()
	default:
		fmt.Fprintf(os.Stderr, "gennorm2: unknown -form %q (want nfc, nfkc, or nfkccf)\n", *form)
		os.Exit(2)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "gennorm2: %v\n", err)
		os.Exit(1)
	}
}
