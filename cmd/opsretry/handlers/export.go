package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/platform/s3"
)

// objectStore is the part of s3.Client the handlers use.
type objectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutJSON(ctx context.Context, bucket, key string, v any) error
	GetJSON(ctx context.Context, bucket, key string, v any) error
}

// ErrVerifyMismatch is returned when the stored document differs from the
// uploaded one.
var ErrVerifyMismatch = errors.New("stored document differs from upload")

// ExportOptions configures Export.
type ExportOptions struct {
	Bucket string
	Key    string
	File   string
	// Verify reads the object back and compares it with the file.
	Verify bool
}

// Factory function variables - can be replaced in tests.
var (
	s3Credentials = config.S3FromEnv

	newObjectStore = func(creds config.S3Credentials, env *Env) (objectStore, error) {
		return s3.NewClient(creds.Endpoint, creds.Region, creds.AccessKey, creds.SecretKey,
			s3.WithConfig(env.Config),
			s3.WithHandler(env.Handler()),
			s3.WithLogger(env.Logger),
		)
	}
)

// Export uploads the JSON document in opts.File to opts.Bucket/opts.Key.
// The document is re-indented by two spaces on the way; values, including
// number literals, are kept byte for byte.
func Export(ctx context.Context, out io.Writer, opts ExportOptions) error {
	env := EnvFrom(ctx)

	// #nosec G304
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.File, err)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%s is not valid JSON", opts.File)
	}
	doc := json.RawMessage(data)

	creds, err := s3Credentials()
	if err != nil {
		return err
	}
	store, err := newObjectStore(creds, env)
	if err != nil {
		return err
	}

	if err := env.Observe(s3.OpBucketEnsure, store.EnsureBucket(ctx, opts.Bucket)); err != nil {
		return err
	}
	if err := env.Observe(s3.OpObjectPut, store.PutJSON(ctx, opts.Bucket, opts.Key, doc)); err != nil {
		return err
	}

	if opts.Verify {
		if err := env.Observe(s3.OpObjectGet, verifyObject(ctx, store, opts.Bucket, opts.Key, doc)); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(out, "%s exported %s to s3://%s/%s\n", okStyle.Render("✓"), opts.File, opts.Bucket, opts.Key)
	return err
}

func verifyObject(ctx context.Context, store objectStore, bucket, key string, want json.RawMessage) error {
	var got json.RawMessage
	if err := store.GetJSON(ctx, bucket, key, &got); err != nil {
		return err
	}

	var wantBuf, gotBuf bytes.Buffer
	if err := json.Compact(&wantBuf, want); err != nil {
		return err
	}
	if err := json.Compact(&gotBuf, got); err != nil {
		return err
	}
	if !bytes.Equal(wantBuf.Bytes(), gotBuf.Bytes()) {
		return fmt.Errorf("%w: s3://%s/%s", ErrVerifyMismatch, bucket, key)
	}
	return nil
}
