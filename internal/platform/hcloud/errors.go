package hcloud

import (
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/opsretry/internal/util/retry"
)

// ResourceLocked matches errors for resources busy with another action.
// These occur during snapshot creation and other long-running operations.
func ResourceLocked() retry.Kind {
	return errorCodes(
		hcloud.ErrorCodeLocked,         // Item is locked (action running)
		hcloud.ErrorCodeResourceLocked, // Resource locked (contact support)
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// RateLimited matches rate limit errors.
func RateLimited() retry.Kind {
	return errorCodes(hcloud.ErrorCodeRateLimitExceeded)
}

// Conflict matches errors for resources changed during the request.
func Conflict() retry.Kind {
	return errorCodes(hcloud.ErrorCodeConflict)
}

// Transient is the allow-list shared by all mutating operations.
func Transient() []retry.Kind {
	return []retry.Kind{ResourceLocked(), RateLimited(), Conflict()}
}

func errorCodes(codes ...hcloud.ErrorCode) retry.Kind {
	return func(err error) bool {
		return isHCloudErrorCode(err, codes...)
	}
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeNotFound)
}
