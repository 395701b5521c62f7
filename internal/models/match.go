// Package models defines the request and response shapes of the devicematch API.
package models

// MatchRequest is a category match request. Query is passed to the embedding
// provider as-is, without validation; Locale is an optional preferred locale
// tag such as "en_GB".
type MatchRequest struct {
	Query  string `json:"query"`
	Locale string `json:"locale,omitempty"`
}

// MatchResponse is the result of a match: the winning category, its similarity
// score, and the localized title when one could be resolved. LocaleTitle is
// omitted entirely when no localization is available.
type MatchResponse struct {
	Category    string  `json:"category"`
	Similarity  float64 `json:"similarity"`
	LocaleTitle *string `json:"locale_title,omitempty"`
}
