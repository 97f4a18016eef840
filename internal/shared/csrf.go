package shared

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const (
	// CSRFSessionKey is the session value holding the issued token.
	CSRFSessionKey = "csrf_token"
	// CSRFFormField is the hidden form field carrying the token.
	CSRFFormField = "csrf_token"
	// CSRFHeader carries the token on scripted and backend requests.
	CSRFHeader = "X-CSRFToken"
)

// CSRFManager issues per-session tokens of the form nonce.signature, where the
// signature binds the nonce to the session id.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager returns a CSRFManager signing with secret.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// EnsureToken returns the session token, issuing one on first use.
func (m *CSRFManager) EnsureToken(ctx context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", ErrSessionMissing
	}
	if token := sess.Get(CSRFSessionKey); token != "" {
		return token, nil
	}
	nonce := make([]byte, 18)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	token := encode(nonce) + "." + encode(m.sign(sess.ID, nonce))
	sess.Set(CSRFSessionKey, token)
	return token, nil
}

// VerifyToken accepts token only when it equals the issued token and its
// signature still matches the session id.
func (m *CSRFManager) VerifyToken(ctx context.Context, sess *Session, token string) error {
	if sess == nil {
		return ErrCSRFTokenMissing
	}
	expected := sess.Get(CSRFSessionKey)
	if expected == "" || token == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	rawNonce, rawSig, ok := strings.Cut(token, ".")
	if !ok {
		return ErrCSRFTokenMismatch
	}
	nonce, err := base64.RawURLEncoding.DecodeString(rawNonce)
	if err != nil {
		return ErrCSRFTokenMismatch
	}
	sig, err := base64.RawURLEncoding.DecodeString(rawSig)
	if err != nil || !hmac.Equal(sig, m.sign(sess.ID, nonce)) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) sign(sessionID string, nonce []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write([]byte{'|'})
	_, _ = mac.Write(nonce)
	return mac.Sum(nil)
}

func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
