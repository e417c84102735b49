package s3

import (
	"errors"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/imamik/opsretry/internal/util/retry"
)

// Throttled matches requests the storage asked us to slow down.
func Throttled() retry.Kind {
	return func(err error) bool {
		return hasErrorCode(err, "SlowDown", "Throttling", "TooManyRequests") || statusCode(err) == http.StatusTooManyRequests
	}
}

// ServerError matches transient server side failures.
func ServerError() retry.Kind {
	return func(err error) bool {
		if hasErrorCode(err, "RequestTimeout", "InternalError", "ServiceUnavailable") {
			return true
		}
		return statusCode(err) >= http.StatusInternalServerError
	}
}

// ConnectionError matches requests that never got a response.
func ConnectionError() retry.Kind {
	return retry.ErrorAs[*smithyhttp.RequestSendError]()
}

// Transient is the allow-list shared by all object storage operations.
func Transient() []retry.Kind {
	return []retry.Kind{Throttled(), ServerError(), ConnectionError()}
}

// statusCode returns the HTTP status of a failed response, or 0.
func statusCode(err error) int {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
