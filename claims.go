package maestro

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// CredentialClaims is a display-only peek into the stored bearer token. The
// signature is never verified client-side and the fields never gate anything;
// credential validity is judged solely by the server's 401.
type CredentialClaims struct {
	Subject   string
	Issuer    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// PeekClaims decodes the registered claims of a bearer token without
// verifying it.
func PeekClaims(token string) (*CredentialClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "credential is not a decodable token")
	}

	out := &CredentialClaims{}

	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		out.Issuer = iss
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = &iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = &exp.Time
	}

	return out, nil
}
