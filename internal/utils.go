package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateEntryID creates a unique ID for a phrase entry based on timestamp and text
// Format: epochMillis_md5(text)[:8]
func GenerateEntryID(text string) string {
	now := time.Now()
	epochMillis := now.UnixNano() / 1000000

	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a Creole phrase
func SanitizeFilename(s string) string {
	result := ""
	for _, r := range s {
		if isFilenameSafe(r) || r == '-' || r == '_' {
			result += string(r)
		} else {
			result += "_"
		}
	}
	return result
}

// isFilenameSafe reports whether a rune may appear unescaped in a filename.
// Covers ASCII letters and digits plus the accented vowels used in Haitian
// Creole orthography.
func isFilenameSafe(r rune) bool {
	if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return true
	}
	switch r {
	case 'è', 'ò', 'à', 'È', 'Ò', 'À':
		return true
	}
	return false
}
