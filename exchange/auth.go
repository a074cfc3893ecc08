package exchange

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

type AuthType string

const (
	AuthBasic  AuthType = "basic"
	AuthBearer AuthType = "bearer"
)

// Auth is the resolved authentication scheme of a request.
type Auth struct {
	Type     AuthType
	UserName string
	Password string
	Token    string
}

// ResolveAuth turns the raw credential string into a concrete scheme.
// Basic is the default type. Basic credentials split at the first colon;
// a missing password resolves to the empty string.
func ResolveAuth(options *AuthOptions) (*Auth, error) {
	if !options.Enabled {
		return nil, nil
	}
	switch options.Type {
	case AuthBearer:
		return &Auth{Type: AuthBearer, Token: options.Credentials}, nil
	case AuthBasic, "":
		userName := options.Credentials
		password := ""
		if colon := strings.IndexByte(options.Credentials, ':'); colon != -1 {
			userName = options.Credentials[:colon]
			password = options.Credentials[colon+1:]
		}
		return &Auth{Type: AuthBasic, UserName: userName, Password: password}, nil
	default:
		return nil, errors.Errorf("unknown auth type: %s", options.Type)
	}
}

// HeaderValue renders the Authorization header for the scheme.
func (a *Auth) HeaderValue() string {
	if a.Type == AuthBearer {
		return "Bearer " + a.Token
	}
	credentials := a.UserName + ":" + a.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
