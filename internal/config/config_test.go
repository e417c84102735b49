package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/opsretry/internal/util/retry"
)

func ptrTo[T any](v T) *T { return &v }

func TestConfig_ProfileBuiltinDefaults(t *testing.T) {
	t.Parallel()

	p := Default().Profile("anything")

	assert.Equal(t, DefaultMaxAttempts, p.MaxAttempts)
	assert.Equal(t, retry.DefaultBackoff(), p.Backoff)
	assert.NoError(t, p.Validate())
}

func TestConfig_ProfileFallsBackPerField(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Defaults: ProfileConfig{
			MaxAttempts: ptrTo(8),
			Backoff: BackoffConfig{
				Base:   ptrTo(time.Second),
				Jitter: ptrTo(false),
			},
		},
		Operations: map[string]ProfileConfig{
			"hcloud.action.wait": {
				MaxAttempts: ptrTo(60),
				Backoff:     BackoffConfig{MaxDelay: ptrTo(10 * time.Second)},
			},
			"s3.put": {
				Backoff: BackoffConfig{Exponent: ptrTo(3.0)},
			},
		},
	}

	wait := cfg.Profile("hcloud.action.wait")
	assert.Equal(t, 60, wait.MaxAttempts)
	assert.Equal(t, time.Second, wait.Backoff.Base, "inherited from defaults")
	assert.Equal(t, 2.0, wait.Backoff.Exponent, "built-in")
	assert.False(t, wait.Backoff.Jitter, "inherited from defaults")
	assert.Equal(t, 10*time.Second, wait.Backoff.MaxDelay)

	put := cfg.Profile("s3.put")
	assert.Equal(t, 8, put.MaxAttempts)
	assert.Equal(t, 3.0, put.Backoff.Exponent)
	assert.Equal(t, retry.DefaultMaxDelay, put.Backoff.MaxDelay)

	other := cfg.Profile("unknown")
	assert.Equal(t, 8, other.MaxAttempts)
	assert.Equal(t, time.Second, other.Backoff.Base)
}

func TestProfile_Handler(t *testing.T) {
	t.Parallel()

	p := Profile{MaxAttempts: 3, Backoff: retry.Backoff{Base: time.Second, Exponent: 2, MaxDelay: time.Minute}}
	h := p.Handler(retry.WithJitter(true))

	b := h.Backoff()
	assert.Equal(t, time.Second, b.Base)
	assert.Equal(t, time.Minute, b.MaxDelay)
	assert.True(t, b.Jitter, "later options win")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "defaults are valid",
			cfg:  Default(),
		},
		{
			name:    "zero max attempts in defaults",
			cfg:     &Config{Defaults: ProfileConfig{MaxAttempts: ptrTo(0)}},
			wantErr: "defaults: invalid value: max_attempts must be at least 1, got 0",
		},
		{
			name: "exponent not above one in operation",
			cfg: &Config{Operations: map[string]ProfileConfig{
				"groups.add": {Backoff: BackoffConfig{Exponent: ptrTo(1.0)}},
			}},
			wantErr: "operation groups.add: invalid value: backoff exponent must be greater than 1",
		},
		{
			name: "negative base",
			cfg: &Config{Operations: map[string]ProfileConfig{
				"roles.create": {Backoff: BackoffConfig{Base: ptrTo(-time.Second)}},
			}},
			wantErr: "backoff base must be positive",
		},
		{
			name: "empty operation name",
			cfg: &Config{Operations: map[string]ProfileConfig{
				"": {MaxAttempts: ptrTo(2)},
			}},
			wantErr: "operation name must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
