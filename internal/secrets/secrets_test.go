package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVault struct {
	values map[string]string
	calls  int
}

func (f *fakeVault) GetSecret(_ context.Context, name string, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.calls++
	v, ok := f.values[name]
	if !ok {
		return azsecrets.GetSecretResponse{}, errors.New("SecretNotFound")
	}
	return azsecrets.GetSecretResponse{Secret: azsecrets.Secret{Value: &v}}, nil
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		source SecretSource
		env    string
		want   SecretSource
	}{
		{SourceAuto, "development", SourceEnvironment},
		{SourceAuto, "", SourceEnvironment},
		{SourceAuto, "production", SourceVault},
		{SourceAuto, "staging", SourceVault},
		{SourceEnvironment, "production", SourceEnvironment},
		{SourceVault, "development", SourceVault},
	}
	for _, tt := range tests {
		t.Run(string(tt.source)+"/"+tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveSource(tt.source, tt.env))
		})
	}
}

func TestVaultClient_CachesSecrets(t *testing.T) {
	fake := &fakeVault{values: map[string]string{"jwt-secret": "s3cret"}}
	v := newVaultClient(fake, &VaultConfig{CacheEnabled: true, CacheTTL: time.Minute}, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, err := v.GetSecret(context.Background(), "jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", got)
	}
	assert.Equal(t, 1, fake.calls)
}

func TestVaultClient_NoCache(t *testing.T) {
	fake := &fakeVault{values: map[string]string{"a": "1"}}
	v := newVaultClient(fake, &VaultConfig{}, zap.NewNop())

	_, _ = v.GetSecret(context.Background(), "a")
	_, _ = v.GetSecret(context.Background(), "a")
	assert.Equal(t, 2, fake.calls)
}

func TestVaultClient_MissingSecret(t *testing.T) {
	v := newVaultClient(&fakeVault{values: map[string]string{}}, &VaultConfig{}, zap.NewNop())
	_, err := v.GetSecret(context.Background(), "nope")
	assert.Error(t, err)
}

func TestSecretCache_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newSecretCache(time.Minute, func() time.Time { return now })

	c.put("k", "v")
	got, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	now = now.Add(2 * time.Minute)
	_, ok = c.get("k")
	assert.False(t, ok)
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("INFRADESK_TEST_SECRET", "from-env")
	p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	got, err := p.GetSecret(context.Background(), "INFRADESK_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)

	_, err = p.GetSecret(context.Background(), "INFRADESK_TEST_UNSET")
	assert.Error(t, err)
	assert.False(t, p.IsVaultEnabled())
}

func TestProvider_GetSecretOrEnvPrefersOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "override")
	p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	got, err := p.GetSecretOrEnv(context.Background(), "jwt-secret", "JWT_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "override", got)
}
