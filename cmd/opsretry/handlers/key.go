package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/imamik/opsretry/internal/platform/hcloud"
	"github.com/imamik/opsretry/internal/util/keygen"
	"github.com/imamik/opsretry/internal/util/labels"
)

// ErrAborted is returned when the user declines a confirmation.
var ErrAborted = errors.New("aborted")

// KeyCreateOptions configures KeyCreate.
type KeyCreateOptions struct {
	Name   string
	Bits   int
	OutDir string
	Upload bool
	// Labels are added to the standard labels of an uploaded key.
	Labels map[string]string
}

// KeyUploadOptions configures KeyUpload.
type KeyUploadOptions struct {
	Name   string
	OutDir string
	Labels map[string]string
}

// Factory function variables - can be replaced in tests.
var (
	generateKeyPair = keygen.GenerateRSAKeyPair

	confirmDelete = func(ctx context.Context, name string) (bool, error) {
		var ok bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete SSH key %q?", name)).
					Description("Servers created with this key keep it; new servers cannot use it.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&ok),
			),
		).RunWithContext(ctx)
		return ok, err
	}
)

// KeyCreate generates a key pair, stores it below opts.OutDir and
// optionally registers the public key with Hetzner Cloud.
func KeyCreate(ctx context.Context, out io.Writer, opts KeyCreateOptions) error {
	env := EnvFrom(ctx)

	bits := opts.Bits
	if bits == 0 {
		bits = keygen.DefaultBits
	}

	// Resolve the client first so missing credentials fail before any file is written.
	var client hcloudClient
	if opts.Upload {
		c, err := hcloudFromEnv(env)
		if err != nil {
			return err
		}
		client = c
	}

	kp, err := generateKeyPair(bits)
	if err != nil {
		return err
	}

	path, err := keygen.WriteKeyFile(opts.OutDir, opts.Name, kp)
	if err != nil {
		return err
	}
	env.Logger.Info("wrote key file", "path", path, "fingerprint", kp.Fingerprint)
	fmt.Fprintf(out, "%s key written to %s\n", okStyle.Render("✓"), path)

	if !opts.Upload {
		return nil
	}

	return uploadKey(ctx, out, env, client, opts.Name, kp.AuthorizedKey(), opts.Labels)
}

// KeyUpload registers the public key of an existing key file with Hetzner
// Cloud.
func KeyUpload(ctx context.Context, out io.Writer, opts KeyUploadOptions) error {
	env := EnvFrom(ctx)

	path, err := keygen.KeyFilePath(opts.OutDir, opts.Name)
	if err != nil {
		return err
	}
	kf, err := keygen.ReadKeyFile(path)
	if err != nil {
		return err
	}

	client, err := hcloudFromEnv(env)
	if err != nil {
		return err
	}
	return uploadKey(ctx, out, env, client, opts.Name, kf.PublicKey, opts.Labels)
}

func uploadKey(ctx context.Context, out io.Writer, env *Env, client hcloudClient, account, publicKey string, extra map[string]string) error {
	name := keygen.LocalPart(account)
	keyLabels := labels.NewLabelBuilder(name).Merge(extra).Build()

	key, err := client.EnsureSSHKey(ctx, name, publicKey, keyLabels)
	if err := env.Observe(hcloud.OpSSHKeyEnsure, err); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s ssh key %s registered (id %d, fingerprint %s)\n",
		okStyle.Render("✓"), key.Name, key.ID, key.Fingerprint)
	return err
}

// KeyDelete removes the Hetzner Cloud SSH key name after confirmation.
func KeyDelete(ctx context.Context, out io.Writer, name string, yes bool) error {
	env := EnvFrom(ctx)

	client, err := hcloudFromEnv(env)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := confirmDelete(ctx, name)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	if err := env.Observe(hcloud.OpSSHKeyDelete, client.DeleteSSHKey(ctx, name)); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s ssh key %s deleted\n", okStyle.Render("✓"), name)
	return err
}
