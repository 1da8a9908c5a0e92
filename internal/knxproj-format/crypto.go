package knxprojformat

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/encoding/unicode"
)

// deriveZipPassword derives the inner-container password for current-tier
// archives from the user password. The producing tool feeds the password as
// UTF-16LE bytes (not UTF-8) into PBKDF2-HMAC-SHA256 with a fixed ASCII
// salt, then hands the base64 form of the 32 raw key bytes to its zip
// encryptor. All parameters are format constants; the result is a pure
// function of the password.
func deriveZipPassword(password string) (string, error) {
	utf16le := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := utf16le.Bytes([]byte(password))
	if err != nil {
		return "", fmt.Errorf("knxproj: encoding password: %w", err)
	}
	key := pbkdf2.Key(encoded, []byte(zipPasswordSalt), zipPasswordIterations, zipPasswordKeyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(key), nil
}
