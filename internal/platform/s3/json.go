package s3

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/opsretry/internal/util/retry"
)

// MarshalJSON renders v the way exported documents are stored: indented by
// two spaces with a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// PutJSON stores v as an indented JSON document under key.
func (c *Client) PutJSON(ctx context.Context, bucket, key string, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}

	p, h := c.profile(OpObjectPut)
	err = retry.Exec(ctx, OpObjectPut, func(ctx context.Context) error {
		return c.PutObject(ctx, bucket, key, data)
	}, Transient(), p.MaxAttempts, h)
	if err != nil {
		return err
	}

	c.logger.Info("exported document", "bucket", bucket, "key", key, "bytes", len(data))
	return nil
}

// GetJSON downloads key and decodes it into v. Missing keys return
// ErrObjectNotFound.
func (c *Client) GetJSON(ctx context.Context, bucket, key string, v any) error {
	p, h := c.profile(OpObjectGet)
	data, err := retry.Do(ctx, OpObjectGet, func(ctx context.Context) ([]byte, error) {
		return c.GetObject(ctx, bucket, key)
	}, retry.Policy[[]byte]{Retryable: Transient(), MaxAttempts: p.MaxAttempts}, h)
	if err != nil {
		if isNotFoundError(err) {
			return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
		}
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", bucket, key, err)
	}
	return nil
}

// EnsureBucket creates bucket unless it already exists.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	p, h := c.profile(OpBucketEnsure)
	return retry.Exec(ctx, OpBucketEnsure, func(ctx context.Context) error {
		exists, err := c.BucketExists(ctx, bucket)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		c.logger.Info("creating bucket", "bucket", bucket, "region", c.region)
		return c.CreateBucket(ctx, bucket)
	}, Transient(), p.MaxAttempts, h)
}
