package knxprojformat

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yeka/zip"
)

// protectedArchive is an open inner container together with the effective
// zip password (raw for the legacy tier, derived for the current tier).
// Entries are decrypted on open.
type protectedArchive struct {
	reader   *zip.Reader
	password string
}

// openProtectedArchive opens the embedded encrypted container with the
// tier-appropriate scheme: the classic per-entry stream cipher with the
// raw password on the legacy tier, AES with the derived key otherwise.
// The password is verified eagerly against the metadata entry so a wrong
// password fails here and never yields a partial stream. Every underlying
// decryption failure is reported as ErrInvalidPassword.
func openProtectedArchive(data []byte, tier Tier, password string) (*protectedArchive, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password required", ErrInvalidPassword)
	}

	effective := password
	if tier == TierCurrent {
		derived, err := deriveZipPassword(password)
		if err != nil {
			return nil, err
		}
		effective = derived
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	p := &protectedArchive{reader: r, password: effective}

	// Drain the metadata entry once. The stream cipher's check byte and
	// CRC, and the AES verifier and authentication code, all surface here.
	rc, err := p.openEntry(tier.metaFilename())
	if err != nil {
		if errors.Is(err, ErrUnexpectedFileContent) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	if _, err := io.Copy(io.Discard, rc); err != nil {
		rc.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	if err := rc.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}
	return p, nil
}

// openEntry opens a named entry of the inner container for reading.
func (p *protectedArchive) openEntry(name string) (io.ReadCloser, error) {
	for _, f := range p.reader.File {
		if f.Name != name {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(p.password)
		}
		return f.Open()
	}
	return nil, fmt.Errorf("%w: entry %q not found in project container", ErrUnexpectedFileContent, name)
}
