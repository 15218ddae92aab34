package llm

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// ErrorKind partitions API failures for the retry policy.
type ErrorKind int

const (
	// ErrOther covers failures that retrying will not fix (bad request,
	// auth, network teardown). These fail immediately.
	ErrOther ErrorKind = iota
	// ErrRateLimited marks quota and throttling responses, which are worth
	// backing off and retrying.
	ErrRateLimited
)

// Classify decides whether err is a rate-limit condition. Typed errors from
// both SDK generations are checked first; the substring fallback catches
// wrapped transport errors that lose the type.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrOther
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return ErrRateLimited
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == 429 {
		return ErrRateLimited
	}

	msg := err.Error()
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") {
		return ErrRateLimited
	}
	return ErrOther
}
