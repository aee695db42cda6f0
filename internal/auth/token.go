package auth

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// Tokens are base64("<userID>.<issuedAtMillis>"): reversible, unsigned and
// non-expiring. Clients discard them on logout; the server never revokes one.
// This matches the wire format existing clients already hold.

func GenerateToken(userID string) string {
	payload := userID + "." + strconv.FormatInt(time.Now().UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// VerifyToken decodes a token and returns the embedded user id. It performs
// no expiry or signature check; ok is false only when decoding fails or the
// id portion is empty.
func VerifyToken(token string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(token)

	if err != nil {
		return "", false
	}

	userID, _, _ := strings.Cut(string(raw), ".")

	if userID == "" {
		return "", false
	}

	return userID, true
}
