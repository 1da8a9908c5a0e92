package knxprojformat

import (
	"strings"

	"github.com/klauspost/compress/zip"
)

// projectID scans the outer container's entry list for the signature
// marker "P-*.signature" and returns the filename with the suffix removed.
// Entries are visited in listing order; the first match wins (archives are
// expected to carry exactly one). It runs before any XML is touched so a
// damaged archive fails fast.
func projectID(files []*zip.File) (string, error) {
	for _, f := range files {
		if strings.HasPrefix(f.Name, "P-") && strings.HasSuffix(f.Name, signatureSuffix) {
			return strings.TrimSuffix(f.Name, signatureSuffix), nil
		}
	}
	return "", ErrProjectNotFound
}
