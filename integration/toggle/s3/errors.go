package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig      = errors.New("s3 toggle source: bucket, key and region are required")
	ErrObjectNotFound     = errors.New("s3 toggle source: object not found")
	ErrBucketNotFound     = errors.New("s3 toggle source: bucket not found")
	ErrAccessDenied       = errors.New("s3 toggle source: access denied")
	ErrServiceUnavailable = errors.New("s3 toggle source: service unavailable")
	ErrOperationTimeout   = errors.New("s3 toggle source: operation timed out")
	ErrOperationCanceled  = errors.New("s3 toggle source: operation canceled")
)

// classifyError maps SDK errors to package errors so callers can use errors.Is.
func classifyError(err error, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: get %s", ErrOperationTimeout, key)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: get %s", ErrOperationCanceled, key)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "AccessDenied":
			return fmt.Errorf("%w: get %s", ErrAccessDenied, key)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: get %s", ErrServiceUnavailable, key)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("get %s failed (code: %s): %w", key, code, err)
		}
	}

	return fmt.Errorf("get %s failed: %w", key, err)
}
