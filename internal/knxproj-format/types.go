package knxprojformat

// Constants of the .knxproj container format and environment variables.
const (
	// EnvPass names the environment variable the CLI reads the archive
	// password from.
	EnvPass = "KNXPROJ_PASS"

	// masterFilename is the master-metadata XML at the outer container
	// root. Its second line declares the schema namespace.
	masterFilename = "knx_master.xml"

	// signatureSuffix terminates the entry whose filename carries the
	// project identifier (content unused).
	signatureSuffix = ".signature"

	// indexFilename is the main project document inside the project
	// container.
	indexFilename = "0.xml"

	// metaFilenameLegacy and metaFilenameCurrent name the project
	// metadata document; the casing changed between tool generations.
	metaFilenameLegacy  = "Project.xml"
	metaFilenameCurrent = "project.xml"
)

// Key-derivation constants for current-tier protected containers. These are
// fixed by the producing tool and must match it bit-exactly.
const (
	zipPasswordSalt       = "21.project.ets.knx.org"
	zipPasswordIterations = 65536
	zipPasswordKeyLen     = 32
)

// Schema generations. The version is the trailing path segment of the
// project XML namespace, e.g. http://knx.org/xml/project/20.
const (
	// schemaVersionETS4Max is the last schema generation written by the
	// ETS 4 tool line; at or below it the archive is legacy tier.
	schemaVersionETS4Max = 14

	// schemaVersionETS6Min is the first schema generation written by the
	// ETS 6 tool line, which introduced the AES-protected container.
	schemaVersionETS6Min = 21
)

// Tier groups schema generations by the container conventions they use:
// the inner-container encryption scheme and the metadata filename casing.
// It is decided once per archive and never re-decided mid-operation.
type Tier int

const (
	// TierLegacy covers schema generations up to schemaVersionETS4Max.
	TierLegacy Tier = iota
	// TierCurrent covers everything newer.
	TierCurrent
)

// String implements fmt.Stringer for log output.
func (t Tier) String() string {
	if t == TierLegacy {
		return "legacy"
	}
	return "current"
}

// metaFilename returns the project metadata document name for the tier.
func (t Tier) metaFilename() string {
	if t == TierLegacy {
		return metaFilenameLegacy
	}
	return metaFilenameCurrent
}

// tierFor classifies a schema version.
func tierFor(schemaVersion int) Tier {
	if schemaVersion <= schemaVersionETS4Max {
		return TierLegacy
	}
	return TierCurrent
}

// ProjectDescriptor holds what Open learns about an archive before any
// project file is read. It is derived once and immutable afterwards.
type ProjectDescriptor struct {
	// ProjectID is the internal identifier recovered from the signature
	// entry, e.g. "P-0502".
	ProjectID string
	// XMLNamespace is the namespace URI declared by knx_master.xml.
	XMLNamespace string
	// SchemaVersion is the integer suffix of XMLNamespace.
	SchemaVersion int
	// PasswordProtected reports whether the outer container embeds an
	// encrypted "<ProjectID>.zip" inner container.
	PasswordProtected bool
}

// Tier returns the schema tier the descriptor's version falls in.
func (d ProjectDescriptor) Tier() Tier {
	return tierFor(d.SchemaVersion)
}
