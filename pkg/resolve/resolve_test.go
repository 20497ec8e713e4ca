package resolve

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/goodfirst/pkg/deps"
	gferr "github.com/matzehuels/goodfirst/pkg/errors"
	"github.com/matzehuels/goodfirst/pkg/integrations"
	"github.com/matzehuels/goodfirst/pkg/integrations/npm"
)

type fakeRegistry struct {
	meta  map[string]*npm.Metadata
	err   error
	calls []string
}

func (f *fakeRegistry) FetchMetadata(ctx context.Context, name string, refresh bool) (*npm.Metadata, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.meta[name]
	if !ok {
		return nil, fmt.Errorf("%w: npm package %s", integrations.ErrNotFound, name)
	}
	return m, nil
}

func withRepo(url string) *npm.Metadata {
	return &npm.Metadata{Latest: "1.0.0", Repository: &npm.Repository{Type: "git", URL: url}}
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url    string
		want   *deps.RepoRef
		wantOK bool
	}{
		{"git+https://github.com/axios/axios.git", &deps.RepoRef{Owner: "axios", Project: "axios"}, true},
		{"git+ssh://git@github.com/a/b.git", &deps.RepoRef{Owner: "a", Project: "b"}, true},
		{"git@github.com:a/b.git", &deps.RepoRef{Owner: "a", Project: "b"}, true},
		{"https://github.com/babel/babel.git", &deps.RepoRef{Owner: "babel", Project: "babel"}, true},
		{"git://github.com/o/p.git#main", &deps.RepoRef{Owner: "o", Project: "p"}, true},
		// greedy captures keep extra path segments in the owner
		{"https://github.com/a/b/c.git", &deps.RepoRef{Owner: "a/b", Project: "c"}, true},
		{"git+https://github.com//.git", &deps.RepoRef{}, true},
		{"git+https://gitlab.com/x/y.git", nil, false},
		{"https://bitbucket.org/x/y.git", nil, false},
		{"https://github.com/axios/axios", nil, false},
		{"axios/axios", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := ParseRepoURL(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ParseRepoURL(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRepoURL(%q) mismatch (-want +got):\n%s", tt.url, diff)
			}
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	reg := &fakeRegistry{meta: map[string]*npm.Metadata{
		"axios":       withRepo("git+https://github.com/axios/axios.git"),
		"gitlab":      withRepo("git+https://gitlab.com/x/y.git"),
		"norepo":      {Latest: "1.0.0"},
		"emptyurl":    {Latest: "1.0.0", Repository: &npm.Repository{Type: "git"}},
		"@babel/core": withRepo("https://github.com/babel/babel.git"),
	}}
	r := New(reg, false)

	tests := []struct {
		name       string
		wantRef    *deps.RepoRef
		wantReason Reason
	}{
		{"axios", &deps.RepoRef{Owner: "axios", Project: "axios"}, Resolved},
		{"@babel/core", &deps.RepoRef{Owner: "babel", Project: "babel"}, Resolved},
		{"gitlab", nil, UnsupportedHost},
		{"norepo", nil, NoRepository},
		{"emptyurl", nil, NoRepository},
		{"missing", nil, NotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(context.Background(), tt.name)
			if res.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q (err %v)", res.Reason, tt.wantReason, res.Err)
			}
			if diff := cmp.Diff(tt.wantRef, res.Ref); diff != "" {
				t.Errorf("Ref mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolver_QueriesOwnName(t *testing.T) {
	reg := &fakeRegistry{meta: map[string]*npm.Metadata{}}
	r := New(reg, false)

	for _, name := range []string{"lodash", "react", "@types/node"} {
		r.Resolve(context.Background(), name)
	}

	want := []string{"lodash", "react", "@types/node"}
	if diff := cmp.Diff(want, reg.calls); diff != "" {
		t.Errorf("registry calls mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_InvalidNameSkipsRegistry(t *testing.T) {
	reg := &fakeRegistry{}
	r := New(reg, false)

	for _, name := range []string{"", "../../etc/passwd", "a b", "@scope/"} {
		res := r.Resolve(context.Background(), name)
		if res.Reason != InvalidName {
			t.Errorf("Resolve(%q).Reason = %q, want %q", name, res.Reason, InvalidName)
		}
		if res.Ref != nil {
			t.Errorf("Resolve(%q).Ref = %v, want nil", name, res.Ref)
		}
	}
	if len(reg.calls) != 0 {
		t.Errorf("registry called %d times, want 0", len(reg.calls))
	}
}

func TestResolver_RegistryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network", fmt.Errorf("%w: connection refused", integrations.ErrNetwork)},
		{"rate limited", integrations.ErrRateLimited},
		{"canceled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeRegistry{err: tt.err}, false)
			res := r.Resolve(context.Background(), "axios")
			if res.Reason != RegistryError {
				t.Errorf("Reason = %q, want %q", res.Reason, RegistryError)
			}
			if !errors.Is(res.Err, tt.err) {
				t.Errorf("Err = %v, want %v", res.Err, tt.err)
			}
			if !gferr.Is(res.Err, gferr.ErrCodeNetwork) {
				t.Errorf("Err = %v, want code %s", res.Err, gferr.ErrCodeNetwork)
			}
			if res.Ref != nil {
				t.Errorf("Ref = %v, want nil", res.Ref)
			}
		})
	}
}

func TestResolver_NotFoundIsCoded(t *testing.T) {
	res := New(&fakeRegistry{}, false).Resolve(context.Background(), "missing-pkg")
	if res.Reason != NotFound {
		t.Fatalf("Reason = %q, want %q", res.Reason, NotFound)
	}
	if !gferr.Is(res.Err, gferr.ErrCodePackageNotFound) {
		t.Errorf("Err = %v, want code %s", res.Err, gferr.ErrCodePackageNotFound)
	}
	if !errors.Is(res.Err, integrations.ErrNotFound) {
		t.Errorf("Err = %v, should wrap integrations.ErrNotFound", res.Err)
	}
}
