// This file implements the persisted session credential: an HS256-signed
// token written to disk on sign-in and read back at startup.
package identity

import (
	"fmt"
	"os"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// credentialTTL bounds how long a persisted session survives without a
// fresh sign-in.
const credentialTTL = 30 * 24 * time.Hour

// credentialFile issues, persists, and parses session tokens.
type credentialFile struct {
	path   string
	secret []byte
}

func newCredentialFile(path, secret string) *credentialFile {
	return &credentialFile{path: path, secret: []byte(secret)}
}

// save signs a token for the session and writes it to the credential
// file, readable only by the owner.
func (c *credentialFile) save(userID, email string) error {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(credentialTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("signing credential: %w", err)
	}
	return os.WriteFile(c.path, []byte(token), 0o600)
}

// load reads and validates the persisted token. Any failure (missing
// file, expired or tampered token) is returned as an error; the caller
// treats it as "no persisted session".
func (c *credentialFile) load() (userID, email string, err error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return "", "", err
	}

	token, err := jwt.Parse(string(raw), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("invalid credential claims")
	}
	userID, _ = claims["user_id"].(string)
	email, _ = claims["email"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("credential missing user id")
	}
	return userID, email, nil
}

// clear removes the credential file. A file that was never written is
// not an error.
func (c *credentialFile) clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
