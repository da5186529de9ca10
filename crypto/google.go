package crypto

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// ErrInvalidGoogleToken is returned when a Google ID token fails verification
var ErrInvalidGoogleToken = errors.New("invalid Google ID token")

// GoogleIdentity is the subset of a verified Google ID token used for sign-in
type GoogleIdentity struct {
	Subject string // stable Google account id
	Email   string
	Name    string
}

// GoogleVerifier verifies a Google-issued ID token and extracts the identity.
// It is an interface so sign-in logic can be tested without Google's key set.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleIdentity, error)
}

// GoogleIDTokenVerifier validates tokens against Google's public keys
type GoogleIDTokenVerifier struct {
	clientID string
}

// NewGoogleIDTokenVerifier creates a verifier bound to an OAuth client id (audience)
func NewGoogleIDTokenVerifier(clientID string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{clientID: clientID}
}

// Verify validates the token signature, expiry and audience
func (v *GoogleIDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	identity := &GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}

	if identity.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrInvalidGoogleToken)
	}

	return identity, nil
}
