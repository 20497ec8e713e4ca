// Package deps defines the dependency model shared by goodfirst's parser,
// resolver and report.
//
// # Overview
//
// A manifest file declares the direct dependencies of a project. A
// [ManifestParser] turns manifest contents into a flat, ordered list of
// [Dependency] values:
//
//	data, err := deps.ReadManifest("package.json")
//	if err != nil {
//	    return err // FILE_NOT_FOUND or INVALID_MANIFEST
//	}
//	parser, err := deps.DetectManifest("package.json", &javascript.PackageJSON{})
//	list, err := parser.Parse(data)
//
// # Ordering
//
// Dependencies are listed section by section ([Runtime], then
// [Development], then [Peer]) and, within a section, in the order the
// manifest declares them. Downstream stages preserve this order, so a
// report always reads like the manifest it came from.
//
// # Repositories
//
// A [RepoRef] names the GitHub repository a dependency is developed in.
// The resolver returns nil when none can be determined.
//
// Parsers for specific ecosystems live in subpackages:
//
//   - [javascript]: package.json
//
// [javascript]: github.com/matzehuels/goodfirst/pkg/deps/javascript
package deps
