package integrity

import (
	"crypto/hkdf"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/cookieclicker/internal/platform/errors"
)

// ErrSignatureMismatch indicates a checksum whose signature does not verify.
var ErrSignatureMismatch = apperrors.New(apperrors.CodeSaveSignatureMismatch, "save signature mismatch")

// Keyring stores root HMAC keys and the active key id.
type Keyring struct {
	keys        map[string][]byte
	activeKeyID string
}

// NewKeyring constructs a keyring for HMAC signing and verification.
func NewKeyring(keys map[string][]byte, activeKeyID string) (*Keyring, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("hmac keys are required")
	}
	activeKeyID = strings.TrimSpace(activeKeyID)
	if activeKeyID == "" {
		return nil, fmt.Errorf("active hmac key id is required")
	}
	if _, ok := keys[activeKeyID]; !ok {
		return nil, fmt.Errorf("active hmac key id is not configured")
	}
	cloned := make(map[string][]byte, len(keys))
	for id, key := range keys {
		cloned[id] = append([]byte(nil), key...)
	}
	return &Keyring{keys: cloned, activeKeyID: activeKeyID}, nil
}

// ActiveKeyID returns the configured signing key id.
func (k *Keyring) ActiveKeyID() string {
	if k == nil {
		return ""
	}
	return k.activeKeyID
}

// Sign signs a slot checksum with the active key and returns the signature
// and key id.
func (k *Keyring) Sign(slotID, checksum string) (string, string, error) {
	if k == nil {
		return "", "", fmt.Errorf("hmac keyring is not configured")
	}
	key, err := slotKey(k.keys[k.activeKeyID], slotID)
	if err != nil {
		return "", "", err
	}
	return hmacSHA256Hex(key, checksum), k.activeKeyID, nil
}

// Verify checks a slot checksum signature made with keyID.
func (k *Keyring) Verify(slotID, checksum, signature, keyID string) error {
	if k == nil {
		return fmt.Errorf("hmac keyring is not configured")
	}
	keyID = strings.TrimSpace(keyID)
	if keyID == "" {
		return fmt.Errorf("signature key id is required")
	}
	rootKey, ok := k.keys[keyID]
	if !ok {
		return fmt.Errorf("signature key id %q is unknown", keyID)
	}
	key, err := slotKey(rootKey, slotID)
	if err != nil {
		return err
	}
	expected := hmacSHA256Hex(key, checksum)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch.Detail(map[string]string{"Slot": slotID})
	}
	return nil
}

func slotKey(rootKey []byte, slotID string) ([]byte, error) {
	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return nil, fmt.Errorf("slot id is required")
	}
	key, err := hkdf.Key(sha256.New, rootKey, nil, "slot:"+slotID, 32)
	if err != nil {
		return nil, fmt.Errorf("derive slot key: %w", err)
	}
	return key, nil
}

func hmacSHA256Hex(key []byte, value string) string {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
