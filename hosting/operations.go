package hosting

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
)

// operation a long-running hosting API job. Once done is set, exactly one
// of response or error carries the outcome.
type operation struct {
	Name     string          `json:"name"`
	Done     bool            `json:"done"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    *operationError `json:"error,omitempty"`
}

type operationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

var errOperationPending = errors.New("operation still running")

// awaitOperation polls an operation until it reaches a terminal state and
// returns its response payload. The wait between attempts comes from the
// client's backoff strategy. A value is never returned while the
// operation reports done=false.
func (c *Client) awaitOperation(ctx context.Context, name string) (json.RawMessage, error) {
	var result json.RawMessage

	poll := func() error {
		body, err := c.do(ctx, http.MethodGet, "/"+apiVersion+"/"+name, nil, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		var op operation
		if err := json.Unmarshal(body, &op); err != nil {
			return backoff.Permanent(err)
		}

		if !op.Done {
			log.Debugf("operation %s still running", name)
			return errOperationPending
		}

		if op.Error != nil {
			return backoff.Permanent(&RequestError{
				StatusCode: op.Error.Code,
				Message:    op.Error.Message,
			})
		}

		result = op.Response
		return nil
	}

	if err := backoff.Retry(poll, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return nil, err
	}

	return result, nil
}
