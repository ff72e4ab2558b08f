package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// HMACSignatureService implements ports.SignatureService using HMAC-SHA256.
// It also issues the CSRF tokens embedded in server-rendered forms.
type HMACSignatureService struct {
	csrfKey string
	now     func() time.Time
}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
// csrfKey signs CSRF tokens and must be kept secret.
func NewHMACSignatureService(csrfKey string) *HMACSignatureService {
	return &HMACSignatureService{csrfKey: csrfKey, now: time.Now}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// IssueCSRFToken returns "<unix>.<hmac(subject|unix)>".
func (s *HMACSignatureService) IssueCSRFToken(subject string) string {
	ts := strconv.FormatInt(s.now().Unix(), 10)
	return ts + "." + s.Sign(s.csrfKey, csrfPayload(subject, ts))
}

// VerifyCSRFToken checks the token was issued for subject within ttl.
func (s *HMACSignatureService) VerifyCSRFToken(subject string, token string, ttl time.Duration) bool {
	ts, sig, ok := strings.Cut(token, ".")
	if !ok {
		return false
	}
	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	age := s.now().Sub(time.Unix(issued, 0))
	if age < 0 || age > ttl {
		return false
	}
	return s.Verify(s.csrfKey, csrfPayload(subject, ts), sig)
}

func csrfPayload(subject, ts string) string {
	return "csrf|" + subject + "|" + ts
}
