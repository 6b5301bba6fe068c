package models

import "strings"

// Session is the credential an authenticated super-admin carries between
// requests. It is handed explicitly to every backend gateway call.
type Session struct {
	Token string
}

// SignedIn reports whether the session holds a token.
func (s *Session) SignedIn() bool {
	return s != nil && strings.TrimSpace(s.Token) != ""
}

// Bearer returns the Authorization header value for this session, or ""
// when there is no token.
func (s *Session) Bearer() string {
	if !s.SignedIn() {
		return ""
	}
	return "Bearer " + s.Token
}
