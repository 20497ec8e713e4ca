// Package javascript parses npm manifests.
//
// # Manifest Parsing
//
// [PackageJSON] reads the dependencies, devDependencies and
// peerDependencies sections of a package.json:
//
//	list, err := (&javascript.PackageJSON{}).Parse(data)
//
// Only direct dependencies are listed; lock files and transitive
// dependencies are not read. Version specifiers are kept verbatim.
package javascript
