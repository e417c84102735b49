package hcloud

import (
	"context"
	"fmt"
	"strings"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureSSHKey registers publicKey under name unless a key with that name
// exists. An existing key with different key material is an error.
func (c *Client) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	publicKey = strings.TrimSpace(publicKey)

	return (&EnsureOperation[*hcloud.SSHKey, hcloud.SSHKeyCreateOpts]{
		Name:         name,
		ResourceType: "ssh key",
		Operation:    OpSSHKeyEnsure,
		Get:          c.client.SSHKey.Get,
		Create:       c.client.SSHKey.Create,
		Validate: func(key *hcloud.SSHKey) error {
			if strings.TrimSpace(key.PublicKey) != publicKey {
				return fmt.Errorf("ssh key %s exists with a different public key (fingerprint %s)", name, key.Fingerprint)
			}
			return nil
		},
		CreateOpts: hcloud.SSHKeyCreateOpts{
			Name:      name,
			PublicKey: publicKey,
			Labels:    labels,
		},
	}).Execute(ctx, c)
}

// DeleteSSHKey deletes the SSH key with the given name.
func (c *Client) DeleteSSHKey(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.SSHKey]{
		Name:         name,
		ResourceType: "ssh key",
		Operation:    OpSSHKeyDelete,
		Get:          c.client.SSHKey.Get,
		Delete:       c.client.SSHKey.Delete,
	}).Execute(ctx, c)
}
