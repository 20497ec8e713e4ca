package javascript

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
)

// sections maps package.json keys to dependency types, in output order.
var sections = []struct {
	key string
	typ deps.Type
}{
	{"dependencies", deps.Runtime},
	{"devDependencies", deps.Development},
	{"peerDependencies", deps.Peer},
}

// PackageJSON parses package.json files. It extracts dependencies,
// devDependencies, and peerDependencies in declaration order.
type PackageJSON struct{}

func (p *PackageJSON) Type() string              { return "package.json" }
func (p *PackageJSON) Supports(name string) bool { return strings.EqualFold(name, "package.json") }

// Parse walks the document token by token so keys keep manifest order.
// A key repeated within a section keeps its first position and its last
// version; a repeated section replaces the earlier one.
//
// Only text that is not a JSON object fails. A section that is not an
// object counts as empty, and a version that is not a string is kept
// as an empty specifier so the dependency is still reported.
func (p *PackageJSON) Parse(data []byte) ([]deps.Dependency, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, invalid(err, "manifest must be a JSON object")
	}

	found := make(map[deps.Type][]deps.Dependency, len(sections))
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, invalid(err, "malformed manifest")
		}

		typ, ok := sectionType(key)
		if !ok {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, invalid(err, "malformed value for %q", key)
			}
			continue
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, invalid(err, "malformed value for %q", key)
		}
		list, err := readSection(raw, typ)
		if err != nil {
			return nil, invalid(err, "malformed value for %q", key)
		}
		found[typ] = list
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, invalid(err, "malformed manifest")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, invalid(err, "unexpected data after manifest object")
	}

	var out []deps.Dependency
	for _, s := range sections {
		out = append(out, found[s.typ]...)
	}
	return out, nil
}

func readSection(raw json.RawMessage, typ deps.Type) ([]deps.Dependency, error) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var list []deps.Dependency
	index := make(map[string]int)
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		var version string
		if json.Unmarshal(value, &version) != nil {
			version = ""
		}

		if i, seen := index[name]; seen {
			list[i].Version = version
			continue
		}
		index[name] = len(list)
		list = append(list, deps.Dependency{Name: name, Version: version, Type: typ})
	}
	return list, expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", errNotString
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errNotObject
	}
	return nil
}

func sectionType(key string) (deps.Type, bool) {
	for _, s := range sections {
		if s.key == key {
			return s.typ, true
		}
	}
	return "", false
}

func invalid(cause error, format string, args ...any) error {
	return gferr.Wrap(gferr.ErrCodeInvalidManifest, cause, format, args...)
}

var (
	errNotObject = errors.New("expected an object")
	errNotString = errors.New("expected a string")
)
