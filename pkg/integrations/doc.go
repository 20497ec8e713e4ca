// Package integrations provides HTTP clients for the registry and issue
// tracker APIs goodfirst talks to.
//
// # Overview
//
// Each upstream service has its own subpackage:
//
//   - [npm]: npm registry metadata (repository URL of the latest version)
//   - [github]: GitHub issues API (good first issues of a repository)
//
// # Client Pattern
//
// Service clients embed [Client], which provides:
//   - JSON GET requests with default headers
//   - Response caching with a per-client key prefix and TTL
//   - Status mapping to [ErrNotFound], [ErrRateLimited] and [ErrNetwork]
//
// Requests are made exactly once. Callers that want to tolerate failures
// (the resolver and the issue fetcher do) degrade their result instead
// of retrying.
//
// [npm]: github.com/matzehuels/goodfirst/pkg/integrations/npm
// [github]: github.com/matzehuels/goodfirst/pkg/integrations/github
package integrations
