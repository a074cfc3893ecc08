package exchange

import (
	"net/http"
	"time"
)

type Options struct {
	Timeout         time.Duration
	FollowRedirects bool
	Auth            AuthOptions
	SkipVerify      bool
	ForceHTTP1      bool

	// Transport overrides the default round tripper. Tests use this.
	Transport http.RoundTripper
}

type AuthOptions struct {
	Enabled bool
	// Credentials is "USERNAME[:PASSWORD]" for basic and the bare token
	// for bearer.
	Credentials string
	Type        AuthType
}
