package apiclient

import (
	"net/http"
	"strings"
)

// Credential is an API key or access token bound to a base URL. It is fixed at
// construction and owned by a single platform client.
type Credential struct {
	secret  string
	baseURL string
}

// NewCredential returns a credential with trailing slashes trimmed from baseURL.
func NewCredential(secret, baseURL string) Credential {
	return Credential{secret: secret, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c Credential) Secret() string  { return c.secret }
func (c Credential) BaseURL() string { return c.baseURL }

// Empty reports whether no secret was supplied.
func (c Credential) Empty() bool { return strings.TrimSpace(c.secret) == "" }

// Authenticator injects a credential into an outbound request.
type Authenticator interface {
	Authenticate(req *http.Request)
}

// HeaderAuth carries the secret in a request header.
type HeaderAuth struct {
	Header string
	Value  string
}

func (a HeaderAuth) Authenticate(req *http.Request) {
	req.Header.Set(a.Header, a.Value)
}

// QueryAuth carries the secret as a query parameter.
type QueryAuth struct {
	Param string
	Value string
}

func (a QueryAuth) Authenticate(req *http.Request) {
	q := req.URL.Query()
	q.Set(a.Param, a.Value)
	req.URL.RawQuery = q.Encode()
}
