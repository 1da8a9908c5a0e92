package knxprojformat

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("logger", "knxproj")

// ProjectContents is an open read session for a .knxproj archive. It owns
// the outer container handle and, for password-protected projects, the
// decrypted inner container. It is not safe for concurrent use; open one
// session per goroutine.
type ProjectContents struct {
	desc  ProjectDescriptor
	outer *zip.ReadCloser

	// inner is non-nil iff the project is password protected; entries
	// are then served from it instead of the outer container.
	inner *protectedArchive

	// relPath prefixes entry names inside the outer container
	// ("<project id>/"); inside the inner container it is empty.
	relPath string
}

// Open opens the archive at path and resolves its project descriptor.
// password may be empty for unprotected archives. Errors opening the path
// itself (missing file, not a zip) propagate unwrapped; everything past
// that is classified as ErrProjectNotFound, ErrUnexpectedFileContent or
// ErrInvalidPassword. The caller must Close the returned session; on error
// nothing is left open.
func Open(path string, password string) (*ProjectContents, error) {
	logger.Debugf("opening KNX project file %q", path)
	outer, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}

	contents, err := resolve(outer, password)
	if err != nil {
		outer.Close()
		return nil, err
	}
	return contents, nil
}

// Extract opens the archive, hands the session to fn, and closes it when
// fn returns, on every path. It is the scoped form of Open for callers
// that do not want to manage the handle themselves.
func Extract(path string, password string, fn func(*ProjectContents) error) error {
	contents, err := Open(path, password)
	if err != nil {
		return err
	}
	defer contents.Close()
	return fn(contents)
}

// resolve runs the descriptor pipeline over an open outer container:
// locate the signature entry, sniff the namespace, classify the schema,
// probe for an embedded protected container and open it when present.
func resolve(outer *zip.ReadCloser, password string) (*ProjectContents, error) {
	id, err := projectID(outer.File)
	if err != nil {
		return nil, err
	}

	master, err := openOuterEntry(&outer.Reader, masterFilename)
	if err != nil {
		return nil, err
	}
	namespace, err := xmlNamespace(master)
	master.Close()
	if err != nil {
		return nil, err
	}
	version, err := schemaVersion(namespace)
	if err != nil {
		return nil, err
	}
	logger.Debugf("namespace %s, schema version %d (%s tier)", namespace, version, tierFor(version))

	desc := ProjectDescriptor{
		ProjectID:     id,
		XMLNamespace:  namespace,
		SchemaVersion: version,
	}

	protected := findOuterEntry(&outer.Reader, id+".zip")
	if protected == nil {
		logger.Debugf("project %s is not password protected", id)
		return &ProjectContents{desc: desc, outer: outer, relPath: id + "/"}, nil
	}

	logger.Debugf("project %s is password protected", id)
	desc.PasswordProtected = true
	data, err := readOuterEntry(protected)
	if err != nil {
		return nil, err
	}
	inner, err := openProtectedArchive(data, desc.Tier(), password)
	if err != nil {
		return nil, err
	}
	return &ProjectContents{desc: desc, outer: outer, inner: inner}, nil
}

// Descriptor returns what Open learned about the archive.
func (c *ProjectContents) Descriptor() ProjectDescriptor {
	return c.desc
}

// OpenProjectIndex opens the project index document (0.xml) for reading.
// The caller closes the returned stream before closing the session.
func (c *ProjectContents) OpenProjectIndex() (io.ReadCloser, error) {
	return c.openEntry(c.relPath + indexFilename)
}

// OpenProjectMeta opens the project metadata document for reading. Its
// filename casing is a pure function of the schema tier.
func (c *ProjectContents) OpenProjectMeta() (io.ReadCloser, error) {
	return c.openEntry(c.relPath + c.desc.Tier().metaFilename())
}

// openEntry serves an entry from the inner container when the project is
// protected, from the outer container otherwise.
func (c *ProjectContents) openEntry(name string) (io.ReadCloser, error) {
	if c.inner != nil {
		return c.inner.openEntry(name)
	}
	rc, err := openOuterEntry(&c.outer.Reader, name)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// Close releases the session: inner container first, then the outer
// handle. It is safe to call once on every exit path.
func (c *ProjectContents) Close() error {
	c.inner = nil // backed by memory, nothing to release
	return c.outer.Close()
}

// findOuterEntry returns the named entry of the outer container, or nil.
func findOuterEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// openOuterEntry opens a named outer entry, reporting a format violation
// when it is absent.
func openOuterEntry(r *zip.Reader, name string) (io.ReadCloser, error) {
	f := findOuterEntry(r, name)
	if f == nil {
		return nil, fmt.Errorf("%w: entry %q not found in archive", ErrUnexpectedFileContent, name)
	}
	return f.Open()
}

// readOuterEntry loads one outer entry fully into memory. The protected
// inner container needs random access, which a zip entry stream cannot
// provide directly.
func readOuterEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
