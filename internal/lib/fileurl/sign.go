// Package fileurl signs object store URLs so service images can be embedded in
// <img> tags without a session token. URLs carry an expiry and an HMAC-SHA256
// signature over "{fileID}:{expiresUnix}".
package fileurl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

const pathPrefix = "/api/v1/files/"

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// URL returns a relative retrieval URL for fileID.
func (s *Signer) URL(fileID string) string {
	if fileID == "" {
		return ""
	}
	expires := s.now().Add(s.ttl).Unix()
	return fmt.Sprintf("%s%s?expires=%d&sig=%s", pathPrefix, fileID, expires, s.sign(fileID, expires))
}

// Verify checks that the signature is valid and the URL has not expired.
func (s *Signer) Verify(fileID, expires, sig string) bool {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if s.now().Unix() > exp {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(s.sign(fileID, exp)))
}

func (s *Signer) sign(fileID string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(fmt.Sprintf("%s:%d", fileID, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}
