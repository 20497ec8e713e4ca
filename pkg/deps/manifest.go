package deps

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	gferr "github.com/matzehuels/goodfirst/pkg/errors"
)

// ManifestParser reads declared dependencies from manifest contents.
type ManifestParser interface {
	// Parse returns the dependencies in declaration order. Malformed input
	// fails with an INVALID_MANIFEST error.
	Parse(data []byte) ([]Dependency, error)
	// Supports reports whether this parser handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest type identifier (e.g., "package.json").
	Type() string
}

// DetectManifest finds a parser that supports the given file path.
// An empty or hidden base name is INVALID_MANIFEST; otherwise an
// UNSUPPORTED error is returned if no parser matches.
func DetectManifest(path string, parsers ...ManifestParser) (ManifestParser, error) {
	name := filepath.Base(path)
	if err := gferr.ValidateManifestFilename(name); err != nil {
		return nil, err
	}
	for _, p := range parsers {
		if p.Supports(name) {
			return p, nil
		}
	}
	return nil, gferr.New(gferr.ErrCodeUnsupported, "unsupported manifest: %s", name)
}

// ReadManifest reads a manifest from disk. A missing file is reported as
// FILE_NOT_FOUND and any other read failure as INVALID_MANIFEST.
func ReadManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gferr.Wrap(gferr.ErrCodeFileNotFound, err, "manifest %s not found", path)
	}
	return nil, gferr.Wrap(gferr.ErrCodeInvalidManifest, err, "read manifest %s", path)
}
