package errs

import (
	"fmt"
	"strings"
)

var sanitizer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize renders a value for an error message on a single line.
func sanitize(v any) string {
	return sanitizer.Replace(fmt.Sprintf("%s", v))
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %s)", msg, sanitize(cause.Error()))
}
