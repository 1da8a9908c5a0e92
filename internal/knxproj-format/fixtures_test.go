package knxprojformat

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	kzip "github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
	yzip "github.com/yeka/zip"
)

// Plaintext fixtures served by the built archives.
var (
	indexFixture = []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n" +
		`<KNX><Project Id="P-0502"><Installations/></Project></KNX>` + "\n")
	metaFixture = []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n" +
		`<KNX><Project Id="P-0502" Name="fixture"/></KNX>` + "\n")
)

// entry is one named member of a fixture container.
type entry struct {
	name string
	data []byte
}

// masterXML renders a minimal knx_master.xml whose second line declares a
// namespace with the given schema version.
func masterXML(version int) []byte {
	return []byte(fmt.Sprintf(
		"<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"+
			"<KNX CreatedBy=\"ETS\" xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\" xmlns=\"http://knx.org/xml/project/%d\">\n"+
			"</KNX>\n", version))
}

// writeZip builds a plain zip in memory.
func writeZip(t *testing.T, entries []entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := kzip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = f.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// writeEncryptedZip builds a zip whose entries are all encrypted with the
// given scheme and zip password.
func writeEncryptedZip(t *testing.T, entries []entry, password string, method yzip.EncryptionMethod) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := yzip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Encrypt(e.name, password, method)
		require.NoError(t, err)
		_, err = f.Write(e.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// writeArchiveFile persists container bytes as an .knxproj file under a
// test temp dir and returns its path.
func writeArchiveFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.knxproj")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// unprotectedArchive builds an outer container with the project files laid
// out under the project-id prefix.
func unprotectedArchive(t *testing.T, id string, version int) string {
	t.Helper()
	meta := tierFor(version).metaFilename()
	return writeArchiveFile(t, writeZip(t, []entry{
		{id + ".signature", []byte("sig")},
		{"knx_master.xml", masterXML(version)},
		{id + "/" + indexFilename, indexFixture},
		{id + "/" + meta, metaFixture},
	}))
}

// protectedArchiveFixture builds an outer container embedding an encrypted
// inner container named after the project id. The inner zip password is
// derived from userPassword exactly the way the opener expects for the
// tier the version falls in.
func protectedArchiveFixture(t *testing.T, id string, version int, userPassword string) string {
	t.Helper()
	tier := tierFor(version)
	zipPassword := userPassword
	method := yzip.StandardEncryption
	if tier == TierCurrent {
		derived, err := deriveZipPassword(userPassword)
		require.NoError(t, err)
		zipPassword = derived
		method = yzip.AES256Encryption
	}
	inner := writeEncryptedZip(t, []entry{
		{indexFilename, indexFixture},
		{tier.metaFilename(), metaFixture},
	}, zipPassword, method)

	return writeArchiveFile(t, writeZip(t, []entry{
		{id + ".signature", []byte("sig")},
		{"knx_master.xml", masterXML(version)},
		{id + ".zip", inner},
	}))
}
