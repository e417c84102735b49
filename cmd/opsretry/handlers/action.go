package handlers

import (
	"context"
	"fmt"
	"io"

	hcloudgo "github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/platform/hcloud"
)

// hcloudClient is the part of hcloud.Client the handlers use.
type hcloudClient interface {
	WaitForAction(ctx context.Context, id int64) (*hcloudgo.Action, error)
	EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloudgo.SSHKey, error)
	DeleteSSHKey(ctx context.Context, name string) error
}

// Factory function variables - can be replaced in tests.
var (
	hcloudCredentials = config.HCloudFromEnv

	newHCloudClient = func(token string, env *Env) hcloudClient {
		return hcloud.NewClient(token,
			hcloud.WithConfig(env.Config),
			hcloud.WithHandler(env.Handler()),
			hcloud.WithLogger(env.Logger),
		)
	}
)

// ActionWait polls a Hetzner Cloud action until it finishes.
func ActionWait(ctx context.Context, out io.Writer, id int64) error {
	env := EnvFrom(ctx)

	client, err := hcloudFromEnv(env)
	if err != nil {
		return err
	}

	action, err := client.WaitForAction(ctx, id)
	if err := env.Observe(hcloud.OpActionWait, err); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s action %d (%s) %s\n",
		okStyle.Render("✓"), action.ID, action.Command, action.Status)
	return err
}

func hcloudFromEnv(env *Env) (hcloudClient, error) {
	creds, err := hcloudCredentials()
	if err != nil {
		return nil, err
	}
	return newHCloudClient(creds.Token, env), nil
}
