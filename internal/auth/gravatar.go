package auth

import (
	"crypto/md5" //nolint:gosec // gravatar addresses images by the md5 of the email
	"encoding/hex"
	"strings"
)

// AvatarURL returns the protocol-relative gravatar URL for email
// (200px, pg rating, mystery-man fallback).
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email)))) //nolint:gosec
	return "//www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
