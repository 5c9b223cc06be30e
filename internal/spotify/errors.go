package spotify

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	api "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

var (
	// ErrSessionExpired marks a failure caused by expired or revoked
	// credentials. Distinct from generic failures so the caller can
	// re-authenticate instead of backing off.
	ErrSessionExpired = errors.New("spotify session expired")

	// ErrMalformedResponse marks a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed spotify response")
)

// Failure is the recovery strategy a poll error calls for.
type Failure int

const (
	// FailureUnknown: log full detail, short sleep, retry.
	FailureUnknown Failure = iota
	// FailureSessionExpired: rebuild the client, retry without sleeping.
	FailureSessionExpired
	// FailureNetwork: sleep the full poll interval, retry.
	FailureNetwork
	// FailureDecode: short sleep, retry.
	FailureDecode
)

// ClassifyError buckets an error from a poll cycle into a Failure.
// The checks are mutually exclusive and run in priority order: credential
// problems win over transport problems, which win over decode problems.
func ClassifyError(err error) Failure {
	var (
		retrieveErr *oauth2.RetrieveError
		apiErr      api.Error
		netErr      net.Error
		jsonSyntax  *json.SyntaxError
		jsonBadType *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, ErrSessionExpired):
		return FailureSessionExpired
	// The oauth2 transport fails the whole request when the refresh token
	// can no longer be exchanged; that is a credential problem, not a
	// network one, even though it arrives wrapped in a url.Error.
	case errors.As(err, &retrieveErr):
		return FailureSessionExpired
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		return FailureSessionExpired
	case errors.As(err, &netErr):
		return FailureNetwork
	case errors.Is(err, ErrMalformedResponse), errors.As(err, &jsonSyntax), errors.As(err, &jsonBadType):
		return FailureDecode
	default:
		return FailureUnknown
	}
}
