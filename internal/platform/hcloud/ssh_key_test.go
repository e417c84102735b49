package hcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicKey = "ssh-rsa AAAAB3NzaC1yc2EAAAADAQABAAABAQC7 deploy"

func TestEnsureSSHKey_Creates(t *testing.T) {
	t.Parallel()

	ts := newTestServer()
	defer ts.close()

	var created atomic.Int32
	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "deploy", r.URL.Query().Get("name"))
			jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{SSHKeys: []schema.SSHKey{}})
		case http.MethodPost:
			created.Add(1)
			var req struct {
				Name      string            `json:"name"`
				PublicKey string            `json:"public_key"`
				Labels    map[string]string `json:"labels"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "deploy", req.Name)
			assert.Equal(t, testPublicKey, req.PublicKey)
			assert.Equal(t, "opsretry", req.Labels["opsretry.io/managed-by"])
			jsonResponse(w, http.StatusCreated, schema.SSHKeyCreateResponse{
				SSHKey: schema.SSHKey{ID: 1, Name: req.Name, PublicKey: req.PublicKey},
			})
		}
	})

	key, err := ts.client().EnsureSSHKey(context.Background(), "deploy", testPublicKey+"\n",
		map[string]string{"opsretry.io/managed-by": "opsretry"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), key.ID)
	assert.Equal(t, int32(1), created.Load())
}

func TestEnsureSSHKey_ExistingMatches(t *testing.T) {
	t.Parallel()

	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request", r.Method)
			return
		}
		jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{
			SSHKeys: []schema.SSHKey{{ID: 5, Name: "deploy", PublicKey: testPublicKey}},
		})
	})

	key, err := ts.client().EnsureSSHKey(context.Background(), "deploy", testPublicKey, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), key.ID)
}

func TestEnsureSSHKey_ExistingDiffers(t *testing.T) {
	t.Parallel()

	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{
			SSHKeys: []schema.SSHKey{{ID: 5, Name: "deploy", PublicKey: "ssh-rsa OTHER", Fingerprint: "aa:bb"}},
		})
	})

	_, err := ts.client().EnsureSSHKey(context.Background(), "deploy", testPublicKey, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different public key")
	assert.Contains(t, err.Error(), "aa:bb")
}

func TestDeleteSSHKey_RetriesLocked(t *testing.T) {
	t.Parallel()

	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{
			SSHKeys: []schema.SSHKey{{ID: 7, Name: "deploy", PublicKey: testPublicKey}},
		})
	})
	var deletes atomic.Int32
	ts.handleFunc("/ssh_keys/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if deletes.Add(1) == 1 {
			errorResponse(w, http.StatusLocked, hcloud.ErrorCodeLocked, "ssh key is locked")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, ts.client().DeleteSSHKey(context.Background(), "deploy"))
	assert.Equal(t, int32(2), deletes.Load())
}

func TestDeleteSSHKey_Missing(t *testing.T) {
	t.Parallel()

	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/ssh_keys", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.SSHKeyListResponse{SSHKeys: []schema.SSHKey{}})
	})

	require.NoError(t, ts.client().DeleteSSHKey(context.Background(), "deploy"))
}
