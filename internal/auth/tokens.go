package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/linkstashapp/linkstash-server/internal/errors"
	"github.com/linkstashapp/linkstash-server/internal/id"
)

const (
	tokenIssuer   = "linkstash-server"
	tokenAudience = "linkstash-client"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string
)

// Claims are the verified contents of an access token: exactly one scope and,
// for account scope, the bound account id.
type Claims struct {
	Subject   string    // admin username or account email
	Scope     Scope     // the single authorization tier
	AccountID string    // set only when Scope is ScopeAccount
	ExpiresAt time.Time // absolute expiry instant
}

// wireClaims is the JSON shape of the claims inside the token. The scopes
// claim stays a list on the wire so a token smuggling zero or multiple
// scopes can be rejected structurally after signature verification.
type wireClaims struct {
	Subject    string    `json:"sub"`
	Scopes     []string  `json:"scopes"`
	AccountID  *string   `json:"account_id"`
	Expiration time.Time `json:"exp"`
}

// TokenService mints and verifies PASETO v4.local access tokens.
// Verification is pure computation against the symmetric key; no I/O.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	tokenTTL     time.Duration
}

// NewTokenService creates a token service from a hex-encoded 256-bit key.
func NewTokenService(keyHex string, tokenTTL time.Duration) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey: key,
		tokenTTL:     tokenTTL,
	}, nil
}

// Generate mints a v4.local access token carrying the subject, the single
// scope, and (for account scope) the bound account id.
// Returns the encrypted token and its absolute expiry instant.
func (s *TokenService) Generate(subject string, scope Scope, accountID string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(s.tokenTTL)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(subject)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expires)

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("scopes", []string{string(scope)})
	if scope == ScopeAccount {
		//nolint:errcheck // Token.Set only errors on invalid types, which we control
		_ = token.Set("account_id", accountID)
	}

	return token.V4Encrypt(s.symmetricKey, nil), expires, nil
}

// Verify decrypts and validates an access token. Beyond signature and expiry,
// the scopes claim must contain exactly one known scope; a cryptographically
// valid token carrying zero or multiple scopes is never trusted.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		// go-paseto exports no typed error for rule failures; the NotExpired
		// rule reports "this token has expired", so match on that substring.
		if strings.Contains(err.Error(), "expired") {
			return nil, errors.TokenExpired("token has expired").WithCause(err)
		}
		return nil, errors.TokenMalformed("could not validate token").WithCause(err)
	}

	var wire wireClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &wire); err != nil {
		return nil, errors.TokenMalformed("could not parse token claims").WithCause(err)
	}

	if len(wire.Scopes) != 1 {
		return nil, errors.InvalidScope("token must carry exactly one scope")
	}
	scope := Scope(wire.Scopes[0])
	if !scope.Valid() {
		return nil, errors.InvalidScope(fmt.Sprintf("unknown scope %q", wire.Scopes[0]))
	}

	claims := &Claims{
		Subject:   wire.Subject,
		Scope:     scope,
		ExpiresAt: wire.Expiration,
	}
	if wire.AccountID != nil {
		claims.AccountID = *wire.AccountID
	}
	if scope == ScopeAccount && claims.AccountID == "" {
		return nil, errors.TokenMalformed("account scope token missing account_id")
	}

	return claims, nil
}

// TokenTTL returns the configured access token lifetime.
func (s *TokenService) TokenTTL() time.Duration {
	return s.tokenTTL
}
