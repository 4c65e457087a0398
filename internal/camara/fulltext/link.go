package fulltext

import "regexp"

// scheme, then a domain, localhost or an IPv4 address, an optional port and an optional path
var linkPattern = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z]{2,6}\.?|[A-Z0-9-]{2,}\.?)|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// ValidLink reports whether link has the shape of a downloadable URL.
func ValidLink(link string) bool {
	return linkPattern.MatchString(link)
}
