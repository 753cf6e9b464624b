package integrity

import (
	"errors"
	"testing"
)

func TestNewKeyringValidation(t *testing.T) {
	if _, err := NewKeyring(nil, "v1"); err == nil {
		t.Fatal("expected error for missing keys")
	}
	if _, err := NewKeyring(map[string][]byte{"v1": []byte("secret")}, ""); err == nil {
		t.Fatal("expected error for missing active key id")
	}
	if _, err := NewKeyring(map[string][]byte{"v1": []byte("secret")}, "v2"); err == nil {
		t.Fatal("expected error for unknown active key id")
	}
}

func TestKeyringSignAndVerify(t *testing.T) {
	ring, err := NewKeyring(map[string][]byte{"v1": []byte("secret")}, "v1")
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}

	sig, keyID, err := ring.Sign("main", "checksum")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if keyID != "v1" {
		t.Fatalf("expected key id v1, got %s", keyID)
	}
	if err := ring.Verify("main", "checksum", sig, keyID); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestKeyringSignaturesAreSlotScoped(t *testing.T) {
	ring, err := NewKeyring(map[string][]byte{"v1": []byte("secret")}, "v1")
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}
	a, _, _ := ring.Sign("slot-a", "checksum")
	b, _, _ := ring.Sign("slot-b", "checksum")
	if a == b {
		t.Fatal("expected different slots to sign differently")
	}
	if err := ring.Verify("slot-b", "checksum", a, "v1"); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("cross-slot verify error = %v, want %v", err, ErrSignatureMismatch)
	}
}

func TestKeyringVerifyFailures(t *testing.T) {
	ring, err := NewKeyring(map[string][]byte{"v1": []byte("secret")}, "v1")
	if err != nil {
		t.Fatalf("new keyring: %v", err)
	}
	sig, _, err := ring.Sign("main", "checksum")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if err := ring.Verify("main", "checksum", sig, ""); err == nil {
		t.Fatal("expected error for missing key id")
	}
	if err := ring.Verify("main", "checksum", sig, "unknown"); err == nil {
		t.Fatal("expected error for unknown key id")
	}
	if err := ring.Verify("main", "checksum", "bad", "v1"); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature mismatch, got %v", err)
	}
	if err := ring.Verify("", "checksum", sig, "v1"); err == nil {
		t.Fatal("expected error for missing slot id")
	}
}

func TestKeyringRotationVerifiesOldKeys(t *testing.T) {
	old, err := NewKeyring(map[string][]byte{"v1": []byte("one")}, "v1")
	if err != nil {
		t.Fatal(err)
	}
	sig, keyID, err := old.Sign("main", "checksum")
	if err != nil {
		t.Fatal(err)
	}
	rotated, err := NewKeyring(map[string][]byte{"v1": []byte("one"), "v2": []byte("two")}, "v2")
	if err != nil {
		t.Fatal(err)
	}
	if err := rotated.Verify("main", "checksum", sig, keyID); err != nil {
		t.Fatalf("verify with rotated keyring: %v", err)
	}
}

func TestNilKeyring(t *testing.T) {
	var ring *Keyring
	if ring.ActiveKeyID() != "" {
		t.Fatal("expected empty active key id for nil keyring")
	}
	if _, _, err := ring.Sign("main", "hash"); err == nil {
		t.Fatal("expected error for nil keyring")
	}
	if err := ring.Verify("main", "hash", "sig", "v1"); err == nil {
		t.Fatal("expected error for nil keyring")
	}
}
