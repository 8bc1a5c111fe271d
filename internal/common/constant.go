package common

// Application identity, surfaced by the API alongside catalog reads.
const (
	AppTitle   = "Maintenance Tracker"
	AppVersion = "0.1.0"
)

// AuthHeaderName is the HTTP header carrying the access token on
// mutating requests.
const AuthHeaderName = "Authorization"
