// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package documents from the npm registry
// (https://registry.npmjs.org) and reduces them to the repository field
// of the latest published version.
//
// # Usage
//
//	client := npm.NewClient(fileCache, 24*time.Hour)
//
//	meta, err := client.FetchMetadata(ctx, "axios", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if meta.Repository != nil {
//	    fmt.Println(meta.Repository.URL) // git+https://github.com/axios/axios.git
//	}
//
// # Version Selection
//
// The full document is requested and the version tagged "latest" in
// dist-tags is used. Aggregate fields at the top level of the document
// are ignored: a package that moved repositories reports where its
// latest release lives.
//
// # Caching
//
// Only the reduced [Metadata] is cached, not the full document. Pass
// refresh=true to bypass the cache.
package npm
