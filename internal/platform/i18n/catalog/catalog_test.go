package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if !bundle.HasLocale(BaseLocale) {
		t.Fatalf("expected base locale %s", BaseLocale)
	}
	if !bundle.HasLocale("es-ES") {
		t.Fatalf("expected locale es-ES")
	}

	if got := len(bundle.NamespaceMessages("en-US", "core")); got == 0 {
		t.Fatalf("expected en-US core namespace messages")
	}
}

func TestLoadFromFSRejectsCoreKeyOutsideCoreNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "core.bad": "nope"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.good": "ok"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsDuplicateKeysAcrossNamespaces(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "a.key": "a"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "a.key": "b"
`)

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("fr-FR", "Please select a role.")
	if !ok || got != "Please select a role." {
		t.Fatalf("Message() = %q, %t", got, ok)
	}
	if _, ok := bundle.Message("es-ES", "no.such.key"); ok {
		t.Fatal("expected unknown key to miss")
	}
}

func TestLoadFromFSRejectsMalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), "locale: [unterminated\n")

	_, err := LoadFromFS(os.DirFS(tempDir))
	if err == nil {
		t.Fatal("expected yaml decode error")
	}
}

func TestLoadEmbeddedRegistersOnboardingTranslations(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	got, ok := bundle.Message("es-ES", "Please select a role.")
	if !ok || got != "Selecciona un rol." {
		t.Fatalf("Message() = %q, %t", got, ok)
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestStatusReportsEmbeddedCoverage(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	statuses := bundle.Status()
	if len(statuses) != 1 || statuses[0].Locale != "es-ES" {
		t.Fatalf("Status() = %#v, want one es-ES entry", statuses)
	}
	es := statuses[0]
	if es.BaseKeys == 0 || es.Translated == 0 {
		t.Fatalf("es-ES status = %#v", es)
	}
	if es.Translated+len(es.MissingKeys) != es.BaseKeys {
		t.Fatalf("translated %d + missing %d != base %d", es.Translated, len(es.MissingKeys), es.BaseKeys)
	}
}

func TestStatusFlagsMissingAndExtraKeys(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/web.yaml"), `locale: "en-US"
namespace: "web"
messages:
  "web.a": "A"
  "web.b": "B"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-ES/web.yaml"), `locale: "es-ES"
namespace: "web"
messages:
  "web.a": "A es"
  "web.z": "Z es"
`)
	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}
	statuses := bundle.Status()
	if len(statuses) != 1 {
		t.Fatalf("Status() len = %d, want 1", len(statuses))
	}
	got := statuses[0]
	if got.Translated != 1 || len(got.MissingKeys) != 1 || got.MissingKeys[0] != "web.b" {
		t.Fatalf("status = %#v", got)
	}
	if len(got.ExtraKeys) != 1 || got.ExtraKeys[0] != "web.z" {
		t.Fatalf("extra keys = %#v, want [web.z]", got.ExtraKeys)
	}
	if got.Completion() != 0.5 {
		t.Fatalf("Completion() = %v, want 0.5", got.Completion())
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es-ES/web.yaml"), `locale: "es-ES"
namespace: "web"
messages:
  "web.a": "A"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected missing base locale error")
	}
}
