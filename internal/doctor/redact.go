package doctor

import (
	"net/url"
	"strings"
)

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts credentials from URLs such as an authenticated private
// registry. The password keeps only its last 4 characters.
// If the URL cannot be parsed, it is returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.User == nil {
		return rawURL
	}

	password, hasPassword := parsed.User.Password()
	if !hasPassword || password == "" {
		return rawURL
	}

	// url.UserPassword would percent-encode the mask.
	parsed.User = url.User(parsed.User.Username())
	return strings.Replace(parsed.String(), "@", ":"+MaskValue(password)+"@", 1)
}
