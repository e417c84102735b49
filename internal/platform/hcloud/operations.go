package hcloud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/opsretry/internal/util/retry"
)

// DeleteOperation encapsulates deletion logic for any hcloud resource.
// It provides consistent retry and error handling across all resource types.
//
// Usage example:
//
//	func (c *Client) DeleteSSHKey(ctx context.Context, name string) error {
//	    return (&DeleteOperation[*hcloud.SSHKey]{
//	        Name:         name,
//	        ResourceType: "ssh key",
//	        Operation:    OpSSHKeyDelete,
//	        Get:          c.client.SSHKey.Get,
//	        Delete:       c.client.SSHKey.Delete,
//	    }).Execute(ctx, c)
//	}
type DeleteOperation[T any] struct {
	Name         string
	ResourceType string
	Operation    string

	// Get retrieves the resource by name
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Delete removes the resource
	Delete func(ctx context.Context, resource T) (*hcloud.Response, error)
}

// Execute performs the delete operation under the retry profile of
// op.Operation. It succeeds if the resource doesn't exist. Locked, rate
// limited and conflicting requests are retried; anything else fails at once.
func (op *DeleteOperation[T]) Execute(ctx context.Context, client *Client) error {
	p, h := client.profile(op.Operation)

	return retry.Exec(ctx, op.Operation, func(ctx context.Context) error {
		resource, _, err := op.Get(ctx, op.Name)
		if err != nil {
			return fmt.Errorf("failed to get %s: %w", op.ResourceType, err)
		}

		// Already deleted
		if isNil(resource) {
			return nil
		}

		if _, err := op.Delete(ctx, resource); err != nil {
			if IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err)
		}
		return nil
	}, Transient(), p.MaxAttempts, h)
}

// EnsureOperation encapsulates get-or-create logic for any hcloud resource.
//
// Ensure with validation:
//
//	EnsureOperation{
//	    // ... other fields
//	    Validate: func(key *hcloud.SSHKey) error {
//	        if key.PublicKey != publicKey {
//	            return fmt.Errorf("ssh key exists with a different public key")
//	        }
//	        return nil
//	    },
//	}
type EnsureOperation[T any, CreateOpts any] struct {
	Name         string
	ResourceType string
	Operation    string

	// Get retrieves the resource by name
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Create creates the resource with the given options
	Create func(ctx context.Context, opts CreateOpts) (T, *hcloud.Response, error)

	// Validate checks if existing resource matches desired state (optional)
	Validate func(resource T) error

	// CreateOpts are passed to Create
	CreateOpts CreateOpts
}

// Execute gets the existing resource, validating it if a validator is set,
// or creates it. The whole sequence is retried under the profile of
// op.Operation, so a create that raced with another writer is re-read on the
// next attempt.
func (op *EnsureOperation[T, CreateOpts]) Execute(ctx context.Context, client *Client) (T, error) {
	p, h := client.profile(op.Operation)

	return retry.Do(ctx, op.Operation, func(ctx context.Context) (T, error) {
		var zero T

		resource, _, err := op.Get(ctx, op.Name)
		if err != nil {
			return zero, fmt.Errorf("failed to get %s: %w", op.ResourceType, err)
		}

		if !isNil(resource) {
			if op.Validate != nil {
				if err := op.Validate(resource); err != nil {
					return zero, err
				}
			}
			return resource, nil
		}

		created, _, err := op.Create(ctx, op.CreateOpts)
		if err != nil {
			return zero, fmt.Errorf("failed to create %s: %w", op.ResourceType, err)
		}
		return created, nil
	}, retry.Policy[T]{
		Retryable:   append(Transient(), uniquenessError()),
		MaxAttempts: p.MaxAttempts,
	}, h)
}

// uniquenessError matches create calls that lost a race with a concurrent
// create of the same name.
func uniquenessError() retry.Kind {
	return errorCodes(hcloud.ErrorCodeUniquenessError)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
