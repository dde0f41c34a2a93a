package hosting

import "strings"

var nameReplacer = strings.NewReplacer("/", "-", ":", "-", "_", "-", "#", "-")

// NormalizeName replaces the characters "/", ":", "_" and "#" with
// dashes so a free-form label can be used as a channel id. Everything
// else, including letter case, passes through unchanged.
func NormalizeName(name string) string {
	return nameReplacer.Replace(name)
}
