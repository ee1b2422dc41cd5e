package clientcli_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirmackk/backuper-cli/clientcli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare host and port", "localhost:44987", "http://localhost:44987"},
		{"http preserved", "http://backups.example.net", "http://backups.example.net"},
		{"https preserved", "https://backups.example.net", "https://backups.example.net"},
		{"trailing slash stripped", "http://localhost:44987/", "http://localhost:44987"},
		{"bare host with trailing slash", "localhost:44987/", "http://localhost:44987"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clientcli.NormalizeServerURL(tt.in))
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		cfg := (&clientcli.Config{}).WithDefaults()
		assert.Equal(t, clientcli.DefaultServerURL, cfg.ServerURL)
		assert.Equal(t, clientcli.DefaultTimeout, cfg.Timeout)
		assert.False(t, cfg.LooseTLS)
	})

	t.Run("scheme normalization applied", func(t *testing.T) {
		cfg := (&clientcli.Config{ServerURL: "backups.example.net:44987"}).WithDefaults()
		assert.Equal(t, "http://backups.example.net:44987", cfg.ServerURL)
	})

	t.Run("explicit values kept", func(t *testing.T) {
		cfg := (&clientcli.Config{
			ServerURL: "https://backups.example.net",
			Timeout:   20 * time.Second,
			LooseTLS:  true,
		}).WithDefaults()
		assert.Equal(t, "https://backups.example.net", cfg.ServerURL)
		assert.Equal(t, 20*time.Second, cfg.Timeout)
		assert.True(t, cfg.LooseTLS)
	})

	t.Run("original left unmodified", func(t *testing.T) {
		orig := &clientcli.Config{}
		_ = orig.WithDefaults()
		assert.Empty(t, orig.ServerURL)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid after defaults", func(t *testing.T) {
		cfg := (&clientcli.Config{}).WithDefaults()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing server url", func(t *testing.T) {
		cfg := &clientcli.Config{}
		assert.Error(t, cfg.Validate())
	})
}

func TestMergeConfig(t *testing.T) {
	t.Run("later values win", func(t *testing.T) {
		merged := clientcli.MergeConfig(
			&clientcli.Config{ServerURL: "http://a", Timeout: time.Second},
			&clientcli.Config{ServerURL: "http://b"},
		)
		assert.Equal(t, "http://b", merged.ServerURL)
		assert.Equal(t, time.Second, merged.Timeout)
	})

	t.Run("zero values do not override", func(t *testing.T) {
		merged := clientcli.MergeConfig(
			&clientcli.Config{ServerURL: "http://a", Timeout: 3 * time.Second},
			&clientcli.Config{},
		)
		assert.Equal(t, "http://a", merged.ServerURL)
		assert.Equal(t, 3*time.Second, merged.Timeout)
	})

	t.Run("loose tls is sticky", func(t *testing.T) {
		merged := clientcli.MergeConfig(
			&clientcli.Config{LooseTLS: true},
			&clientcli.Config{},
		)
		assert.True(t, merged.LooseTLS)
	})

	t.Run("nil configs skipped", func(t *testing.T) {
		merged := clientcli.MergeConfig(nil, &clientcli.Config{ServerURL: "http://a"}, nil)
		assert.Equal(t, "http://a", merged.ServerURL)
	})
}

func TestConfigFile_Profiles(t *testing.T) {
	t.Run("get by name", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "home", ServerURL: "http://localhost:44987"},
			{Name: "offsite", ServerURL: "https://backups.example.net"},
		}}

		p, err := cf.GetProfile("offsite")
		require.NoError(t, err)
		assert.Equal(t, "https://backups.example.net", p.ServerURL)
	})

	t.Run("empty name resolves default", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "home"},
			{Name: "offsite", Default: true},
		}}

		p, err := cf.GetProfile("")
		require.NoError(t, err)
		assert.Equal(t, "offsite", p.Name)
	})

	t.Run("no default falls back to first", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "home"},
			{Name: "offsite"},
		}}

		p, err := cf.GetDefaultProfile()
		require.NoError(t, err)
		assert.Equal(t, "home", p.Name)
	})

	t.Run("unknown profile", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{{Name: "home"}}}
		_, err := cf.GetProfile("nope")
		assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
	})

	t.Run("no profiles", func(t *testing.T) {
		cf := &clientcli.ConfigFile{}
		_, err := cf.GetProfile("")
		assert.ErrorIs(t, err, clientcli.ErrNoProfiles)
	})

	t.Run("add duplicate", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{{Name: "home"}}}
		err := cf.AddProfile(clientcli.Profile{Name: "home"})
		assert.ErrorIs(t, err, clientcli.ErrProfileExists)
	})

	t.Run("set default clears others", func(t *testing.T) {
		cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "home", Default: true},
			{Name: "offsite"},
		}}

		require.NoError(t, cf.SetDefault("offsite"))
		assert.False(t, cf.Profiles[0].Default)
		assert.True(t, cf.Profiles[1].Default)
	})

	t.Run("remove missing", func(t *testing.T) {
		cf := &clientcli.ConfigFile{}
		assert.ErrorIs(t, cf.RemoveProfile("nope"), clientcli.ErrProfileNotFound)
	})
}

func TestConfigFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cf := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
		{Name: "home", ServerURL: "http://localhost:44987", Timeout: 10, Default: true},
		{Name: "offsite", ServerURL: "https://backups.example.net", LooseTLS: true},
	}}

	require.NoError(t, cf.Save(path))

	loaded, err := clientcli.LoadConfigFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Profiles, 2)
	assert.Equal(t, cf.Profiles, loaded.Profiles)
}

func TestConfigFromProfile(t *testing.T) {
	t.Run("fields mapped", func(t *testing.T) {
		cfg := clientcli.ConfigFromProfile(&clientcli.Profile{
			Name:      "offsite",
			ServerURL: "https://backups.example.net",
			Timeout:   12,
			LooseTLS:  true,
		})
		assert.Equal(t, "https://backups.example.net", cfg.ServerURL)
		assert.Equal(t, 12*time.Second, cfg.Timeout)
		assert.True(t, cfg.LooseTLS)
	})

	t.Run("nil profile", func(t *testing.T) {
		cfg := clientcli.ConfigFromProfile(nil)
		assert.Empty(t, cfg.ServerURL)
	})
}
