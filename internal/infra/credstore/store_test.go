package credstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldos/fieldos-client-go/internal/config"
	"github.com/fieldos/fieldos-client-go/internal/infra/credstore"

	"go.uber.org/zap"
)

func durableCfg(dir string) *config.Config {
	return &config.Config{PersistMode: config.PersistDurable, StateDir: dir}
}

func sessionCfg(dir string) *config.Config {
	return &config.Config{PersistMode: config.PersistSession, StateDir: dir}
}

func TestStore_SetCredentialsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := credstore.New(durableCfg(dir), zap.NewNop())

	s.SetCredentials("tok-1", []byte(`{"id":1}`))

	token, ok := s.Token()
	if !ok || token != "tok-1" {
		t.Fatalf("expected token tok-1, got %q (ok=%v)", token, ok)
	}
	user, ok := s.User()
	if !ok || string(user) != `{"id":1}` {
		t.Fatalf("expected stored user, got %q (ok=%v)", user, ok)
	}
}

func TestStore_DurableSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	s1 := credstore.New(durableCfg(dir), zap.NewNop())
	s1.SetCredentials("tok-2", []byte(`{"id":2}`))

	// A fresh store over the same state dir simulates a process restart.
	s2 := credstore.New(durableCfg(dir), zap.NewNop())
	token, ok := s2.Token()
	if !ok || token != "tok-2" {
		t.Fatalf("expected persisted token after restart, got %q (ok=%v)", token, ok)
	}
}

func TestStore_SessionModeDoesNotPersist(t *testing.T) {
	dir := t.TempDir()

	s1 := credstore.New(sessionCfg(dir), zap.NewNop())
	s1.SetCredentials("tok-3", []byte(`{"id":3}`))

	s2 := credstore.New(sessionCfg(dir), zap.NewNop())
	if _, ok := s2.Token(); ok {
		t.Fatal("session-tier credential must not survive a restart")
	}
}

func TestStore_ClearAllWipesBothTiers(t *testing.T) {
	dir := t.TempDir()

	// Credential written while running in durable mode...
	durable := credstore.New(durableCfg(dir), zap.NewNop())
	durable.SetCredentials("tok-4", []byte(`{"id":4}`))

	// ...must not resurrect after a logout issued under session mode.
	sess := credstore.New(sessionCfg(dir), zap.NewNop())
	sess.SetCredentials("tok-5", []byte(`{"id":5}`))
	sess.ClearAll()

	if _, ok := sess.Token(); ok {
		t.Fatal("active tier still holds a token after ClearAll")
	}
	reopened := credstore.New(durableCfg(dir), zap.NewNop())
	if _, ok := reopened.Token(); ok {
		t.Fatal("durable tier still holds a token after ClearAll under session mode")
	}
}

func TestStore_ClearAllIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := credstore.New(durableCfg(dir), zap.NewNop())

	s.ClearAll()
	s.ClearAll()

	if _, ok := s.Token(); ok {
		t.Fatal("expected empty store")
	}
}

func TestStore_CorruptFileIgnored(t *testing.T) {
	dir := t.TempDir()
	s := credstore.New(durableCfg(dir), zap.NewNop())
	s.SetCredentials("tok-6", []byte(`{"id":6}`))

	if err := os.WriteFile(filepath.Join(dir, "credentials.enc"), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	s2 := credstore.New(durableCfg(dir), zap.NewNop())
	if _, ok := s2.Token(); ok {
		t.Fatal("corrupt credential file must read as absent")
	}
}
