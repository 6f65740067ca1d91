package staffauth

import (
	"strings"
	"testing"
)

func TestBuilderRequiresCoreDependencies(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	if _, err := New().WithConfig(validTestConfig()).WithDirectory(newMockDirectory()).Build(); err == nil {
		t.Fatal("expected build failure without redis")
	}
	if _, err := New().WithConfig(validTestConfig()).WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected build failure without a directory")
	}
}

func TestBuilderValidatesConfig(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	cfg := validTestConfig()
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret

	_, err := New().WithConfig(cfg).WithRedis(rdb).WithDirectory(newMockDirectory()).Build()
	if err == nil || !strings.Contains(err.Error(), "secrets must differ") {
		t.Fatalf("expected secret separation error, got %v", err)
	}
}

func TestBuilderBuildsOnce(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	b := New().WithConfig(validTestConfig()).WithRedis(rdb).WithDirectory(newMockDirectory())

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if engine.Revocations() == nil {
		t.Fatal("expected a revocation list on the built engine")
	}

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}
