package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	api "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

func TestClassifyError(t *testing.T) {
	syntaxErr := json.Unmarshal([]byte(`{`), &struct{}{})

	tests := []struct {
		name string
		err  error
		want Failure
	}{
		{
			name: "session expired sentinel",
			err:  fmt.Errorf("%w: currently-playing returned status 401", ErrSessionExpired),
			want: FailureSessionExpired,
		},
		{
			name: "oauth2 token exchange rejected",
			err:  &url.Error{Op: "Get", URL: "https://api.spotify.com", Err: &oauth2.RetrieveError{}},
			want: FailureSessionExpired,
		},
		{
			name: "api error with 401",
			err:  api.Error{Status: http.StatusUnauthorized, Message: "The access token expired"},
			want: FailureSessionExpired,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			want: FailureNetwork,
		},
		{
			name: "transport failure wrapped in url.Error",
			err:  &url.Error{Op: "Get", URL: "https://api.spotify.com", Err: errors.New("no route to host")},
			want: FailureNetwork,
		},
		{
			name: "malformed response sentinel",
			err:  fmt.Errorf("%w: unexpected EOF", ErrMalformedResponse),
			want: FailureDecode,
		},
		{
			name: "raw json syntax error",
			err:  syntaxErr,
			want: FailureDecode,
		},
		{
			name: "anything else",
			err:  errors.New("rate limit exceeded"),
			want: FailureUnknown,
		},
		{
			name: "api error with non-auth status",
			err:  api.Error{Status: http.StatusTooManyRequests, Message: "rate limited"},
			want: FailureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestClassifyErrorPriority(t *testing.T) {
	// A credential failure arrives wrapped in a url.Error, which also
	// satisfies net.Error; the credential check must win.
	err := &url.Error{Op: "Get", URL: "https://api.spotify.com", Err: &oauth2.RetrieveError{}}
	assert.Equal(t, FailureSessionExpired, ClassifyError(err))
}
