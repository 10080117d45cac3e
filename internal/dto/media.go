package dto

import (
	"net/url"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/storage"
)

// IsObjectURL reports whether s is an absolute http(s) URL whose path names
// a storage key, i.e. a reference the media signer can sign later.
func IsObjectURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	_, err = storage.KeyFromURL(s)
	return err == nil
}
