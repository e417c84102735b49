package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/go-logr/logr"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/util/retry"
)

// Operation names used for retry profiles, logs and metrics.
const (
	OpObjectPut    = "s3.object.put"
	OpObjectGet    = "s3.object.get"
	OpBucketEnsure = "s3.bucket.ensure"
)

// ErrObjectNotFound is returned by GetJSON for missing keys.
var ErrObjectNotFound = errors.New("object not found")

// Client wraps the S3 client for Hetzner Object Storage.
type Client struct {
	s3      *s3.Client
	region  string
	config  *config.Config
	handler retry.Handler
	logger  logr.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithConfig sets the retry configuration.
func WithConfig(cfg *config.Config) ClientOption {
	return func(c *Client) {
		c.config = cfg
	}
}

// WithHandler adds a handler that runs before the backoff wait of every retry.
func WithHandler(h retry.Handler) ClientOption {
	return func(c *Client) {
		c.handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// Endpoint returns the Hetzner Object Storage endpoint for a location.
func Endpoint(region string) string {
	return fmt.Sprintf("https://%s.your-objectstorage.com", region)
}

// NewClient creates a new S3 client for Hetzner Object Storage.
//
// The SDK's own retryer is disabled: every call retries through the
// profile of its operation instead.
func NewClient(endpoint, region, accessKey, secretKey string, opts ...ClientOption) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion(region),
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = false // Hetzner uses virtual-hosted style
	})

	return newClient(client, region, opts...), nil
}

func newClient(client *s3.Client, region string, opts ...ClientOption) *Client {
	c := &Client{
		s3:     client,
		region: region,
		config: config.Default(),
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Region returns the object storage location of the client.
func (c *Client) Region() string {
	return c.region
}

func (c *Client) profile(operation string) (config.Profile, retry.Handler) {
	p := c.config.Profile(operation)
	h := retry.Chain(
		c.handler,
		retry.LogHandler(c.logger.V(1)),
		p.Handler(retry.WithLogger(c.logger)),
	)
	return p, h
}

// CreateBucket creates a new S3 bucket.
// Returns nil if the bucket already exists and is owned by us.
func (c *Client) CreateBucket(ctx context.Context, bucketName string) error {
	_, err := c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	return nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// PutObject uploads an object to a bucket.
func (c *Client) PutObject(ctx context.Context, bucketName, key string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucketName, err)
	}
	return nil
}

// GetObject downloads an object from a bucket.
func (c *Client) GetObject(ctx context.Context, bucketName, key string) ([]byte, error) {
	result, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucketName, err)
	}
	defer result.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(result.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	return buf.Bytes(), nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	// S3-compatible services may not return the exact SDK error types
	return hasErrorCode(err, "BucketAlreadyOwnedByYou")
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	return hasErrorCode(err, "NotFound", "NoSuchBucket", "NoSuchKey", "404")
}

func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}
