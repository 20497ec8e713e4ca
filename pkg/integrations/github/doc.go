// Package github provides an HTTP client for the GitHub issues API.
//
// # Overview
//
// This package lists issues of a repository from GitHub
// (https://api.github.com), filtered by label and state. goodfirst uses it
// to find issues labeled "good first issue" in each dependency's repository.
//
// # Usage
//
//	client := github.NewClient(token, fileCache, time.Hour)
//
//	issues, err := client.ListIssues(ctx, "axios", "axios", github.IssueQuery{
//	    Labels: []string{"good first issue"},
//	}, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, is := range issues {
//	    fmt.Println(is.Title, is.HTMLURL)
//	}
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour. An exhausted quota is
// reported as [integrations.ErrRateLimited].
//
// # Ordering
//
// Issues are returned in the API's order (newest first by default) and
// only the first page is fetched.
//
// [integrations.ErrRateLimited]: github.com/matzehuels/goodfirst/pkg/integrations.ErrRateLimited
package github
