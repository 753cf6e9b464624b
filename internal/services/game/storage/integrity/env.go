package integrity

import (
	"fmt"
	"strings"

	"github.com/louisbranch/cookieclicker/internal/platform/config"
)

const defaultKeyID = "v1"

// Env holds the save signing configuration.
type Env struct {
	// Keys is a comma-separated list of id=secret pairs.
	Keys  string `env:"COOKIECLICKER_SAVE_HMAC_KEYS"`
	Key   string `env:"COOKIECLICKER_SAVE_HMAC_KEY"`
	KeyID string `env:"COOKIECLICKER_SAVE_HMAC_KEY_ID" envDefault:"v1"`
}

// KeyringFromEnv loads the keyring from the environment. It returns nil and
// no error when no key is configured, which leaves saves unsigned.
func KeyringFromEnv() (*Keyring, error) {
	var cfg Env
	if err := config.ParseEnv(&cfg); err != nil {
		return nil, err
	}
	return cfg.Keyring()
}

// Keyring builds the keyring cfg describes, or nil when it names no key.
func (cfg Env) Keyring() (*Keyring, error) {
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" {
		keyID = defaultKeyID
	}

	keySpec := strings.TrimSpace(cfg.Keys)
	if keySpec == "" {
		raw := strings.TrimSpace(cfg.Key)
		if raw == "" {
			return nil, nil
		}
		return NewKeyring(map[string][]byte{keyID: []byte(raw)}, keyID)
	}

	keys := make(map[string][]byte)
	for _, entry := range strings.Split(keySpec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, value, ok := strings.Cut(entry, "=")
		id, value = strings.TrimSpace(id), strings.TrimSpace(value)
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid COOKIECLICKER_SAVE_HMAC_KEYS entry %q", entry)
		}
		keys[id] = []byte(value)
	}
	return NewKeyring(keys, keyID)
}
