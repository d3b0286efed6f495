package crypto

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"passkeeper/internal/common"
)

func TestLoadOrCreateKey_CreateAndReuse(t *testing.T) {
	base := t.TempDir()
	// создаст новый ключ
	k1, err := LoadOrCreateKey(base, "john@example.com")
	if err != nil {
		t.Fatalf("LoadOrCreateKey create: %v", err)
	}
	if len(k1) != 32 {
		t.Fatalf("key len want 32, got %d", len(k1))
	}
	// повторное получение - тот же ключ
	k2, err := LoadOrCreateKey(base, "john@example.com")
	if err != nil {
		t.Fatalf("LoadOrCreateKey reuse: %v", err)
	}
	if string(k1) != string(k2) {
		t.Fatalf("expected same key contents on reuse")
	}
	fi, err := os.Stat(filepath.Join(base, "john@example.com", "key.bin"))
	if err != nil {
		t.Fatalf("key file: %v", err)
	}
	if fi.Mode().Perm()&0o077 != 0 {
		t.Fatalf("key file readable by others: %v", fi.Mode().Perm())
	}
}

func TestLoadOrCreateKey_Errors(t *testing.T) {
	base := t.TempDir()
	if _, err := LoadOrCreateKey(base, ""); err == nil {
		t.Fatalf("empty email must fail")
	}
	if _, err := LoadOrCreateKey("", "a@b.c"); err == nil {
		t.Fatalf("empty base must fail")
	}
	// подменим файл ключа на неправильной длины
	p, err := keyFilePath(base, "bad@example.com")
	if err != nil {
		t.Fatalf("keyFilePath: %v", err)
	}
	if err := os.WriteFile(p, []byte("short"), 0o600); err != nil {
		t.Fatalf("write bad key: %v", err)
	}
	if _, err := LoadOrCreateKey(base, "bad@example.com"); err == nil {
		t.Fatalf("invalid key length should error")
	}
}

func TestUserDir_SanitizesEmail(t *testing.T) {
	base := t.TempDir()
	dir, err := UserDir(base, "../../etc/passwd")
	if err != nil {
		t.Fatalf("UserDir: %v", err)
	}
	if filepath.Dir(dir) != base {
		t.Fatalf("user dir escaped base: %s", dir)
	}
	if _, err := UserDir(base, ".."); err == nil {
		t.Fatalf("'..' must be rejected")
	}
}

func TestVaultFor_PerUserKeys(t *testing.T) {
	base := t.TempDir()
	alice, err := VaultFor(base, "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	blob, err := alice.Encrypt("hello")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	plain, err := alice.Decrypt(blob)
	if err != nil || plain != "hello" {
		t.Fatalf("round-trip failed: %q %v", plain, err)
	}

	// чужой ключ
	bob, _ := VaultFor(base, "bob@example.com")
	if _, err := bob.Decrypt(blob); !errors.Is(err, common.ErrDecryptionFailed) {
		t.Fatalf("decrypt with wrong key should fail, got %v", err)
	}
}
