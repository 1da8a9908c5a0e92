package knxprojformat

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Aliases for the CLI commands for convenience.
var (
	aliasesInfo = map[string]bool{"i": true, "-i": true, "info": true, "--info": true}
	aliasesCat  = map[string]bool{"cat": true, "--cat": true}
	aliasesHelp = map[string]bool{"h": true, "-h": true, "help": true, "--help": true}
)

// RunCLI parses os.Args and dispatches to the info or cat commands. The
// archive password, when needed, comes from the KNXPROJ_PASS environment
// variable; unprotected archives need none.
func RunCLI(argv []string) error {
	if len(argv) < 2 || aliasesHelp[argv[1]] {
		printHelp()
		return nil
	}

	cmd := argv[1]
	switch {
	case aliasesInfo[cmd]:
		if len(argv) < 3 {
			return errors.New("usage: knxproj-format info ARCHIVE.knxproj")
		}
		return Extract(argv[2], os.Getenv(EnvPass), func(c *ProjectContents) error {
			d := c.Descriptor()
			fmt.Printf("project id:         %s\n", d.ProjectID)
			fmt.Printf("xml namespace:      %s\n", d.XMLNamespace)
			fmt.Printf("schema version:     %d (%s tier)\n", d.SchemaVersion, d.Tier())
			fmt.Printf("password protected: %v\n", d.PasswordProtected)
			return nil
		})

	case aliasesCat[cmd]:
		if len(argv) < 4 {
			return errors.New("usage: knxproj-format cat ARCHIVE.knxproj (index|meta)")
		}
		return Extract(argv[2], os.Getenv(EnvPass), func(c *ProjectContents) error {
			var rc io.ReadCloser
			var err error
			switch argv[3] {
			case "index":
				rc, err = c.OpenProjectIndex()
			case "meta":
				rc, err = c.OpenProjectMeta()
			default:
				return fmt.Errorf("unknown file %q, expected index or meta", argv[3])
			}
			if err != nil {
				return err
			}
			defer rc.Close()
			_, err = io.Copy(os.Stdout, rc)
			return err
		})

	default:
		return fmt.Errorf("unknown command %q. Use --help", cmd)
	}
}

// printHelp prints CLI usage, environment, and examples.
func printHelp() {
	fmt.Println(`knxproj-format — read-only extractor for KNX ETS project archives

USAGE:
  knxproj-format (i|-i|info|--info) ARCHIVE.knxproj
  knxproj-format (cat|--cat)        ARCHIVE.knxproj (index|meta)
  knxproj-format (h|-h|help|--help)

ENV:
  KNXPROJ_PASS  Password for protected projects (ZipCrypto for legacy
                schemas, AES with a PBKDF2-derived key otherwise)

EXAMPLES:
  knxproj-format info house.knxproj
  export KNXPROJ_PASS=secret
  knxproj-format cat house.knxproj index > 0.xml
  knxproj-format cat house.knxproj meta  > project.xml`)
}
