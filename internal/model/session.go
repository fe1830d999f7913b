package model

// Session is the authenticated connection used for every gateway call.
type Session struct {
	// URL is the Odoo server base URL (e.g. https://erp.example.com)
	URL string `json:"url"`

	// APIKey is the bearer key sent on wire A calls
	APIKey string `json:"apiKey"`

	// Database is sent as X-Odoo-Database
	Database string `json:"database"`

	// Username is the login the session belongs to
	Username string `json:"username"`
}

// AuthState is the in-memory state of the auth store.
type AuthState struct {
	IsLoggedIn bool     `json:"isLoggedIn"`
	User       *Session `json:"user"`
}

// AuthRecord is the persisted form of AuthState (blob "auth-storage").
// The API key is never written; Credential holds a sealed blob instead.
type AuthRecord struct {
	IsLoggedIn bool           `json:"isLoggedIn"`
	User       *SessionRecord `json:"user,omitempty"`
}

// SessionRecord is a Session without the clear-text API key.
type SessionRecord struct {
	URL        string `json:"url"`
	Database   string `json:"database"`
	Username   string `json:"username"`
	Credential []byte `json:"credential,omitempty"`
}

// CredentialLabel returns the label a session's API key is sealed under.
func CredentialLabel(url, database, username string) string {
	return username + "@" + database + "@" + url
}
