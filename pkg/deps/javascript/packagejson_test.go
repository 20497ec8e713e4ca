package javascript

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
)

func TestPackageJSON_Supports(t *testing.T) {
	parser := &PackageJSON{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"package.json", true},
		{"Package.json", true},
		{"PACKAGE.JSON", true},
		{"package-lock.json", false},
		{"Cargo.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := parser.Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestPackageJSON_Type(t *testing.T) {
	parser := &PackageJSON{}
	if got := parser.Type(); got != "package.json" {
		t.Errorf("Type() = %q, want %q", got, "package.json")
	}
}

func TestPackageJSON_Parse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []deps.Dependency
	}{
		{
			name:    "runtime only",
			content: `{"dependencies":{"axios":"^1.6.0","lodash":"4.17.21"}}`,
			want: []deps.Dependency{
				{Name: "axios", Version: "^1.6.0", Type: deps.Runtime},
				{Name: "lodash", Version: "4.17.21", Type: deps.Runtime},
			},
		},
		{
			name:    "development only",
			content: `{"devDependencies":{"jest":"^29.0.0"}}`,
			want: []deps.Dependency{
				{Name: "jest", Version: "^29.0.0", Type: deps.Development},
			},
		},
		{
			name:    "empty object",
			content: `{}`,
		},
		{
			name:    "null sections",
			content: `{"dependencies":null,"devDependencies":null,"peerDependencies":null}`,
		},
		{
			name: "sections ordered regardless of position",
			content: `{
  "name": "my-package",
  "peerDependencies": {"react": ">=18"},
  "devDependencies": {"typescript": "^5.0.0"},
  "scripts": {"test": "jest"},
  "dependencies": {"zod": "^3.0.0", "axios": "^1.0.0"}
}`,
			want: []deps.Dependency{
				{Name: "zod", Version: "^3.0.0", Type: deps.Runtime},
				{Name: "axios", Version: "^1.0.0", Type: deps.Runtime},
				{Name: "typescript", Version: "^5.0.0", Type: deps.Development},
				{Name: "react", Version: ">=18", Type: deps.Peer},
			},
		},
		{
			name:    "same name in two sections",
			content: `{"dependencies":{"a":"1"},"devDependencies":{"a":"2"}}`,
			want: []deps.Dependency{
				{Name: "a", Version: "1", Type: deps.Runtime},
				{Name: "a", Version: "2", Type: deps.Development},
			},
		},
		{
			name:    "repeated key keeps first position and last version",
			content: `{"dependencies":{"a":"1","b":"1","a":"2"}}`,
			want: []deps.Dependency{
				{Name: "a", Version: "2", Type: deps.Runtime},
				{Name: "b", Version: "1", Type: deps.Runtime},
			},
		},
		{
			name:    "repeated section replaces earlier one",
			content: `{"dependencies":{"a":"1"},"dependencies":{"b":"1"}}`,
			want: []deps.Dependency{
				{Name: "b", Version: "1", Type: deps.Runtime},
			},
		},
		{
			name:    "section not an object counts as empty",
			content: `{"dependencies":["a"],"devDependencies":"x","peerDependencies":{"p":"1"}}`,
			want: []deps.Dependency{
				{Name: "p", Version: "1", Type: deps.Peer},
			},
		},
		{
			name:    "non-string versions kept with empty specifier",
			content: `{"dependencies":{"a":"1","b":1,"c":{"version":"2"},"d":null}}`,
			want: []deps.Dependency{
				{Name: "a", Version: "1", Type: deps.Runtime},
				{Name: "b", Version: "", Type: deps.Runtime},
				{Name: "c", Version: "", Type: deps.Runtime},
				{Name: "d", Version: "", Type: deps.Runtime},
			},
		},
		{
			name:    "scoped and non-semver specifiers",
			content: `{"dependencies":{"@babel/core":"github:babel/babel","x":"file:../x","y":"*"}}`,
			want: []deps.Dependency{
				{Name: "@babel/core", Version: "github:babel/babel", Type: deps.Runtime},
				{Name: "x", Version: "file:../x", Type: deps.Runtime},
				{Name: "y", Version: "*", Type: deps.Runtime},
			},
		},
	}

	parser := &PackageJSON{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse([]byte(tt.content))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackageJSON_ParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{not json`},
		{"empty input", ``},
		{"array", `[]`},
		{"string", `"package"`},
		{"truncated", `{"dependencies":{"a":"1"}`},
		{"trailing data", `{} {}`},
	}

	parser := &PackageJSON{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse([]byte(tt.content))
			if !gferr.Is(err, gferr.ErrCodeInvalidManifest) {
				t.Fatalf("error = %v, want INVALID_MANIFEST", err)
			}
			if got != nil {
				t.Errorf("Parse returned %v alongside an error", got)
			}
		})
	}
}

func TestParsers(t *testing.T) {
	p, err := deps.DetectManifest("/project/package.json", Parsers()...)
	if err != nil {
		t.Fatalf("DetectManifest: %v", err)
	}
	if p.Type() != "package.json" {
		t.Errorf("Type() = %q", p.Type())
	}
}
