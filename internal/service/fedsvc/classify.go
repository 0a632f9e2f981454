package fedsvc

import (
	"regexp"
	"strings"

	"github.com/cartesiandb/federation-registry-server/internal/service"
)

// markerPattern matches the engine's conventional error marker on a single
// line of a raw error message. The marker and everything before it is
// stripped before classification.
var markerPattern = regexp.MustCompile(`(?:ERROR|FATAL|PANIC):\s*(.+)`)

// sqlStatePattern matches the driver's trailing SQLSTATE annotation, which
// carries no information for the caller.
var sqlStatePattern = regexp.MustCompile(`\s*\(SQLSTATE [0-9A-Z]{5}\)$`)

// Classification rules, evaluated in order. The first matching rule wins.
var (
	notFoundPattern     = regexp.MustCompile(`\bdoes not exist\b`)
	unauthorizedPattern = regexp.MustCompile(`^Not enough permissions to access the server `)

	unprocessablePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^Server name .+ is too long to be used as identifier`),
		regexp.MustCompile(`^Could not import table .+ of server .+`),
		regexp.MustCompile(`^Could not import table .+ as .+ already exists`),
		regexp.MustCompile(`^non integer id_column .+`),
		regexp.MustCompile(`^non geometry column .+`),
	}
)

// ClassifyStoreError converts a raw federation store error into a typed
// domain error. Errors whose message carries no engine marker, or matches no
// known pattern, are returned unchanged so that nothing is ever silently
// downgraded or swallowed.
func ClassifyStoreError(err error) error {
	if err == nil {
		return nil
	}

	message := extractEngineMessage(err.Error())
	if message == "" {
		return err
	}

	switch {
	case notFoundPattern.MatchString(message):
		return &service.NotFoundError{Message: message}
	case unauthorizedPattern.MatchString(message):
		return &service.UnauthorizedError{Message: message}
	}
	for _, pattern := range unprocessablePatterns {
		if pattern.MatchString(message) {
			return &service.UnprocessableError{Message: message}
		}
	}

	return err
}

// extractEngineMessage returns the first line of the raw message carrying an
// engine error marker, with the marker and the trailing SQLSTATE annotation
// stripped. It returns "" when no line matches.
func extractEngineMessage(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		if m := markerPattern.FindStringSubmatch(line); m != nil {
			return sqlStatePattern.ReplaceAllString(strings.TrimSpace(m[1]), "")
		}
	}
	return ""
}
