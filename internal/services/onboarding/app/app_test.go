package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	return Config{
		Store:           StoreConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "inpact.db")},
		ObjectStorePath: filepath.Join(dir, "objects.db"),
		PublicBaseURL:   "http://localhost:8080",
		SessionSecret:   testSecret,
	}
}

func TestOpenWiresRuntime(t *testing.T) {
	t.Parallel()

	rt, err := Open(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	if rt.Store == nil || rt.Objects == nil || rt.Wizards == nil {
		t.Fatalf("stores not wired: %#v", rt)
	}
	if rt.Sessions == nil || rt.Credentials == nil || rt.Submitter == nil {
		t.Fatalf("services not wired: %#v", rt)
	}
	if rt.YouTube == nil || rt.Refiner == nil {
		t.Fatalf("clients not wired: %#v", rt)
	}
	if rt.Google != nil {
		t.Fatalf("Google = %#v, want nil without client id", rt.Google)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "short secret", mutate: func(c *Config) { c.SessionSecret = "short" }, wantErr: "init sessions"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mysql" }, wantErr: `unknown store driver "mysql"`},
		{name: "unknown wizard store", mutate: func(c *Config) { c.WizardStore = "disk" }, wantErr: `unknown wizard store "disk"`},
		{name: "missing object store", mutate: func(c *Config) { c.ObjectStorePath = "" }, wantErr: "open object store"},
		{name: "google without secret", mutate: func(c *Config) { c.GoogleClientID = "client" }, wantErr: "init google sign in"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			tc.mutate(&cfg)
			rt, err := Open(context.Background(), cfg)
			if err == nil {
				_ = rt.Close()
				t.Fatalf("Open() error = nil, want %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Open() error = %q, want substring %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	rt, err := Open(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	var nilRuntime *Runtime
	if err := nilRuntime.Close(); err != nil {
		t.Fatalf("nil Close() error = %v", err)
	}
}
