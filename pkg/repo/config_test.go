package repo

import (
	"os"
	"strings"
	"testing"
)

func TestReadConfigMissing(t *testing.T) {
	r := initTestRepo(t)
	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if cfg.User.Name != "" || len(cfg.Remotes) != 0 {
		t.Errorf("Expected empty config, got %+v", cfg)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	r := initTestRepo(t)
	cfg := &Config{
		User: UserConfig{
			Name:       "Alice",
			Email:      "alice@example.com",
			SigningKey: "~/.ssh/id_ed25519",
		},
		Remotes: map[string]string{"origin": "ssh://example.com/repo"},
	}
	if err := r.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}

	got, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if got.User != cfg.User {
		t.Errorf("User: got %+v, want %+v", got.User, cfg.User)
	}
	if got.Remotes["origin"] != cfg.Remotes["origin"] {
		t.Errorf("Remotes: got %v", got.Remotes)
	}

	// The on-disk format is TOML.
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "[user]") {
		t.Errorf("Config file missing [user] table:\n%s", data)
	}
}

func TestUserConfigAuthor(t *testing.T) {
	cases := []struct {
		user UserConfig
		want string
	}{
		{UserConfig{}, ""},
		{UserConfig{Name: "Alice"}, "Alice"},
		{UserConfig{Name: "Alice", Email: "a@b.c"}, "Alice <a@b.c>"},
	}
	for _, tc := range cases {
		if got := tc.user.Author(); got != tc.want {
			t.Errorf("Author(%+v): got %q, want %q", tc.user, got, tc.want)
		}
	}
}

func TestSetRemoteAndRemoteURL(t *testing.T) {
	r := initTestRepo(t)
	if err := r.SetRemote("origin", "ssh://example.com/repo"); err != nil {
		t.Fatalf("SetRemote: %v", err)
	}
	url, err := r.RemoteURL("origin")
	if err != nil {
		t.Fatalf("RemoteURL: %v", err)
	}
	if url != "ssh://example.com/repo" {
		t.Errorf("URL: got %q", url)
	}
	if _, err := r.RemoteURL("upstream"); err == nil {
		t.Error("Unconfigured remote should fail")
	}
	if err := r.SetRemote("", "url"); err == nil {
		t.Error("Empty remote name should fail")
	}
}
