package javascript

import "github.com/matzehuels/goodfirst/pkg/deps"

// Parsers returns the manifest parsers for the npm ecosystem.
func Parsers() []deps.ManifestParser {
	return []deps.ManifestParser{&PackageJSON{}}
}
