package knxprojformat

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// namespacePattern extracts the xmlns attribute value from the root
// element. A single capture is enough; the file layout is a convention of
// the producing tool, not something worth a full XML parse.
var namespacePattern = regexp.MustCompile(` xmlns="(.+?)"`)

// xmlNamespace returns the namespace URI declared on the master file's
// root element. The XML declaration occupies line 1 and the root element
// line 2; only those two lines are read, so a large document costs nothing.
// Decoding or pattern failure reports ErrUnexpectedFileContent.
func xmlNamespace(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	var line string
	for i := 0; i < 2; i++ {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("%w: reading master file: %v", ErrUnexpectedFileContent, err)
		}
		if s == "" {
			return "", fmt.Errorf("%w: master file has no root element line", ErrUnexpectedFileContent)
		}
		line = s
	}

	if !utf8.ValidString(line) {
		return "", fmt.Errorf("%w: master file is not valid UTF-8", ErrUnexpectedFileContent)
	}
	m := namespacePattern.FindStringSubmatch(line)
	if m == nil {
		return "", fmt.Errorf("%w: could not parse XML namespace", ErrUnexpectedFileContent)
	}
	return m[1], nil
}

// schemaVersion parses the integer schema version out of the namespace
// URI's trailing path segment.
func schemaVersion(namespace string) (int, error) {
	tail := namespace[strings.LastIndexByte(namespace, '/')+1:]
	v, err := strconv.Atoi(tail)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: could not parse schema version from %q", ErrUnexpectedFileContent, namespace)
	}
	return v, nil
}
