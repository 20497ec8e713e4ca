package github

// Issue is the part of an issues-endpoint entry goodfirst keeps. The
// endpoint lists pull requests too; they are not told apart.
type Issue struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}
