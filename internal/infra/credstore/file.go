package credstore

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	credFileName = "credentials.enc"
	keyFileName  = "credentials.key"
)

// fileTier persists the credential record under the state dir, sealed with
// nacl/secretbox. The sealing key is generated locally on first use and
// never leaves the machine. I/O failures degrade to "no credential": the
// session treats an unreadable record the same as an absent one.
type fileTier struct {
	dir    string
	logger *zap.Logger
}

func newFileTier(dir string, logger *zap.Logger) *fileTier {
	return &fileTier{dir: dir, logger: logger}
}

func (t *fileTier) name() string { return "file" }

func (t *fileTier) credPath() string { return filepath.Join(t.dir, credFileName) }
func (t *fileTier) keyPath() string  { return filepath.Join(t.dir, keyFileName) }

func (t *fileTier) load() (map[string][]byte, bool) {
	sealed, err := os.ReadFile(t.credPath())
	if err != nil {
		return nil, false
	}
	if len(sealed) < 24+secretbox.Overhead {
		t.logger.Warn("credential file truncated, ignoring")
		return nil, false
	}

	key, err := t.readKey()
	if err != nil {
		t.logger.Warn("credential key unreadable, ignoring stored credentials", zap.Error(err))
		return nil, false
	}

	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	plain, ok := secretbox.Open(nil, sealed[24:], &nonce, key)
	if !ok {
		t.logger.Warn("credential file failed to decrypt, ignoring")
		return nil, false
	}

	var m map[string][]byte
	if err := json.Unmarshal(plain, &m); err != nil {
		t.logger.Warn("credential file corrupt, ignoring", zap.Error(err))
		return nil, false
	}
	return m, true
}

func (t *fileTier) store(m map[string][]byte) {
	if err := os.MkdirAll(t.dir, 0o700); err != nil {
		t.logger.Error("credential dir create failed", zap.Error(err))
		return
	}

	key, err := t.ensureKey()
	if err != nil {
		t.logger.Error("credential key unavailable, not persisting", zap.Error(err))
		return
	}

	plain, err := json.Marshal(m)
	if err != nil {
		t.logger.Error("credential encode failed", zap.Error(err))
		return
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		t.logger.Error("nonce generation failed", zap.Error(err))
		return
	}

	sealed := secretbox.Seal(nonce[:], plain, &nonce, key)
	if err := os.WriteFile(t.credPath(), sealed, 0o600); err != nil {
		t.logger.Error("credential write failed", zap.Error(err))
	}
}

func (t *fileTier) wipe() {
	if err := os.Remove(t.credPath()); err != nil && !os.IsNotExist(err) {
		t.logger.Warn("credential file remove failed", zap.Error(err))
	}
}

func (t *fileTier) readKey() (*[32]byte, error) {
	raw, err := os.ReadFile(t.keyPath())
	if err != nil {
		return nil, err
	}
	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}

func (t *fileTier) ensureKey() (*[32]byte, error) {
	if key, err := t.readKey(); err == nil {
		return key, nil
	}

	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, err
	}
	if err := os.WriteFile(t.keyPath(), key[:], 0o600); err != nil {
		return nil, err
	}
	return &key, nil
}
