package deps

import "fmt"

// Type is the manifest section a dependency was declared in.
type Type string

const (
	Runtime     Type = "runtime"     // "dependencies"
	Development Type = "development" // "devDependencies"
	Peer        Type = "peer"        // "peerDependencies"
)

func (t Type) String() string { return string(t) }

// Dependency is one declared dependency of a manifest. The same name in
// two sections yields two records.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"` // specifier as written, never interpreted
	Type    Type   `json:"type"`
}

// RepoRef identifies a GitHub repository. A missing repository is a nil
// *RepoRef.
type RepoRef struct {
	Owner   string `json:"owner"`
	Project string `json:"project"`
}

// String returns "owner/project".
func (r RepoRef) String() string { return r.Owner + "/" + r.Project }

// URL returns the repository's web address.
func (r RepoRef) URL() string { return fmt.Sprintf("https://github.com/%s/%s", r.Owner, r.Project) }
