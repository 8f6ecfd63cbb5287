// Package app composes web modules into one root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/louisbranch/inpact/internal/services/web/module"
	"github.com/louisbranch/inpact/internal/services/web/platform/httpx"
	"github.com/louisbranch/inpact/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/inpact/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/inpact/internal/services/web/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies     module.Dependencies
	AuthRequired     func(*http.Request) bool
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Compose builds a root HTTP handler from module groups. Every module is
// mounted at its prefix and at the prefix without its trailing slash.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.AuthRequired == nil {
		input.AuthRequired = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountFeature(root, feature, input.Dependencies, seen, nil); err != nil {
			return nil, err
		}
	}

	protect := requireAuth(input.AuthRequired)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountFeature(root, feature, input.Dependencies, seen, protect); err != nil {
			return nil, err
		}
	}

	return requireCookieSameOrigin(input.Dependencies.RequestSchemePolicy)(root), nil
}

func mountFeature(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, pattern := range mountPatterns(prefix) {
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if err := validatePrefix(mount.Prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, mount.Prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

// mountPatterns returns the prefix and, below the root, its slashless alias.
func mountPatterns(prefix string) []string {
	alias := strings.TrimSuffix(prefix, "/")
	if alias == "" {
		return []string{prefix}
	}
	return []string{prefix, alias}
}

func requireAuth(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, routepath.LoginWithNext(r.URL.Path))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireCookieSameOrigin demands same-origin proof for writes that carry
// session or wizard state. Cookie-less writes, such as scripted calls to the
// refine endpoint, pass through.
func requireCookieSameOrigin(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	guard := httpx.SameOriginWrites(policy)
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		guarded := guard(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasStateCookie(r) {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasStateCookie(r *http.Request) bool {
	if _, ok := sessioncookie.Read(r); ok {
		return true
	}
	_, ok := sessioncookie.ReadWizard(r)
	return ok
}
