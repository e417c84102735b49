// Package s3 provides a client for Hetzner Object Storage (S3-compatible).
//
// Documents are exported as indented JSON. Every call runs under the retry
// profile of its operation (s3.object.put, s3.object.get, s3.bucket.ensure)
// and retries throttling, 5xx responses and connection failures.
package s3
