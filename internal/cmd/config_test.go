package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		want string
	}{
		{"equals", []string{"layout", "--config=a.yaml"}, "", "a.yaml"},
		{"separate", []string{"--config", "b.toml", "bringup"}, "", "b.toml"},
		{"dangling", []string{"--config"}, "", ""},
		{"env", []string{"layout"}, "c.json", "c.json"},
		{"flag beats env", []string{"--config=d.yaml"}, "c.json", "d.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigEnv, tt.env)
			assert.Equal(t, tt.want, FindUserConfig(tt.args))
		})
	}
}

func TestConfigPaths(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		wantJSON []string
		wantYAML []string
		wantTOML []string
	}{
		{
			name:     "defaults",
			wantJSON: []string{"ehci-arena.json"},
			wantYAML: []string{"ehci-arena.yaml", "ehci-arena.yml"},
			wantTOML: []string{"ehci-arena.toml"},
		},
		{
			name:     "yaml",
			user:     "/etc/arena.YML",
			wantJSON: []string{"ehci-arena.json"},
			wantYAML: []string{"/etc/arena.YML", "ehci-arena.yaml", "ehci-arena.yml"},
			wantTOML: []string{"ehci-arena.toml"},
		},
		{
			name:     "toml",
			user:     "arena.toml",
			wantJSON: []string{"ehci-arena.json"},
			wantYAML: []string{"ehci-arena.yaml", "ehci-arena.yml"},
			wantTOML: []string{"arena.toml", "ehci-arena.toml"},
		},
		{
			name:     "other extension",
			user:     "arena.conf",
			wantJSON: []string{"arena.conf", "ehci-arena.json"},
			wantYAML: []string{"ehci-arena.yaml", "ehci-arena.yml"},
			wantTOML: []string{"ehci-arena.toml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, m := ConfigPaths(tt.user)
			assert.Equal(t, tt.wantJSON, j)
			assert.Equal(t, tt.wantYAML, y)
			assert.Equal(t, tt.wantTOML, m)
		})
	}
}
