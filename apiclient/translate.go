package apiclient

import (
	"github.com/kbukum/arangodb/errors"
	"github.com/kbukum/arangodb/serialization"
	"github.com/kbukum/arangodb/transport"
)

// TranslateError converts a non-success response into an *errors.ClientError
// and closes it. When the body is not a recognizable error envelope the
// result carries errors.UnknownErrorNum and errors.UnknownErrorMessage; the
// decode failure itself is never returned.
func TranslateError(resp *transport.Response) error {
	defer resp.Close()

	server, err := serialization.Decode[errors.ServerError](resp.Body, serialization.DefaultPolicy)
	if err != nil {
		return errors.NewClientError(resp.StatusCode, nil)
	}
	return errors.NewClientError(resp.StatusCode, &server)
}

// ResponseBase is the envelope shared by most success bodies.
type ResponseBase struct {
	Error bool `json:"error"`
	Code  int  `json:"code"`
}
