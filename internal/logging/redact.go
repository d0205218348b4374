package logging

import "strings"

const redacted = "[redacted]"

// sensitiveSuffixes match credential-bearing attribute keys, compared on the
// last dotted segment in lower case.
var sensitiveSuffixes = []string{"password", "pass", "api_key", "apikey", "token", "secret"}

func isSensitive(key string) bool {
	if i := strings.LastIndexByte(key, '.'); i >= 0 {
		key = key[i+1:]
	}
	key = strings.ToLower(key)
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}
