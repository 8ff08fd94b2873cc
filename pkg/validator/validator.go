package validator

import (
	"net/url"
	"strings"
)

// ValidateURL validates if the URL belongs to an allowed video platform
func ValidateURL(videoURL string, allowedDomains []string) bool {
	u, err := url.Parse(videoURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	for _, domain := range allowedDomains {
		cleanDomain := strings.ToLower(strings.TrimSpace(domain))
		if cleanDomain == "" {
			continue
		}
		if host == cleanDomain || strings.HasSuffix(host, "."+cleanDomain) || strings.Contains(host, cleanDomain) {
			return true
		}
	}
	return false
}

// ValidateFormatID validates a catalog format identifier
func ValidateFormatID(formatID string) bool {
	return len(formatID) > 0 && len(formatID) <= 50
}

// SanitizeFilename removes dangerous characters from filename
func SanitizeFilename(filename string) string {
	dangerousChars := []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*", "\x00"}
	result := filename
	for _, char := range dangerousChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	return result
}

// TruncateFilename truncates filename to max length while preserving the
// extension. Rune-level so UTF-8 multi-byte characters stay intact.
func TruncateFilename(filename string, maxLen int) string {
	runes := []rune(filename)
	if len(runes) <= maxLen {
		return filename
	}

	lastDot := strings.LastIndex(filename, ".")
	if lastDot == -1 {
		return string(runes[:maxLen])
	}

	ext := filename[lastDot:]
	availableLen := maxLen - len([]rune(ext))
	if availableLen <= 0 {
		return string(runes[:maxLen])
	}
	return string(runes[:availableLen]) + ext
}
