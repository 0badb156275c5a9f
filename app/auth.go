package app

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"library_backend/db"
	"library_backend/models"
	"library_backend/session"
)

type CredentialScheme string

const (
	SchemeBasic  CredentialScheme = "basic"
	SchemeBearer CredentialScheme = "bearer"
)

// Credential is a parsed Authorization header: either a Basic
// username/password pair or an opaque bearer token. It is parsed once
// and verified through a single path regardless of scheme.
type Credential struct {
	Scheme   CredentialScheme
	Username string
	Password string
	Token    string
}

var (
	ErrBadAuthorization   = errors.New("authorization header is missing or invalid")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ParseAuthorization turns a raw Authorization header into a Credential.
func ParseAuthorization(header string) (Credential, error) {
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || rest == "" {
		return Credential{}, ErrBadAuthorization
	}
	switch {
	case strings.EqualFold(scheme, "basic"):
		raw, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return Credential{}, ErrBadAuthorization
		}
		username, password, ok := strings.Cut(string(raw), ":")
		if !ok {
			return Credential{}, ErrBadAuthorization
		}
		return Credential{Scheme: SchemeBasic, Username: username, Password: password}, nil
	case strings.EqualFold(scheme, "bearer"):
		return Credential{Scheme: SchemeBearer, Token: rest}, nil
	}
	return Credential{}, ErrBadAuthorization
}

// Authenticator resolves credentials to users.
type Authenticator struct {
	Repo   *db.Repo
	Tokens session.Store
}

func NewAuthenticator(repo *db.Repo, tokens session.Store) *Authenticator {
	return &Authenticator{Repo: repo, Tokens: tokens}
}

// Verify resolves a credential to the acting user. Disabled accounts
// always fail, whatever the scheme.
func (a *Authenticator) Verify(ctx context.Context, cred Credential) (*models.User, error) {
	var u *models.User

	switch cred.Scheme {
	case SchemeBasic:
		found, err := a.Repo.FindUserByUsername(ctx, cred.Username)
		if err != nil || !found.CheckPassword(cred.Password) {
			return nil, ErrInvalidCredentials
		}
		u = found
	case SchemeBearer:
		tok, err := a.Tokens.Get(ctx, cred.Token)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		found, err := a.Repo.FindUserByID(ctx, tok.UserID)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		u = found
	default:
		return nil, ErrBadAuthorization
	}

	if u.Disabled {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
