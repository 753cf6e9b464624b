// Package hmackey generates save signing keys in the environment format the
// clicker command reads.
package hmackey

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/cookieclicker/internal/services/game/storage/integrity"
)

// Config holds configuration for save key generation.
type Config struct {
	Bytes int
	KeyID string
	// Rotate lists existing id=secret pairs to keep verifying old saves.
	Rotate string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: 32, KeyID: "v1"}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes")
	fs.StringVar(&cfg.KeyID, "key-id", cfg.KeyID, "id of the new signing key")
	fs.StringVar(&cfg.Rotate, "rotate", "", "existing id=secret pairs to keep for verification")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the key and writes the environment lines to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes <= 0 {
		return errors.New("bytes must be greater than zero")
	}
	if out == nil {
		return errors.New("output is required")
	}
	keyID := strings.TrimSpace(cfg.KeyID)
	if keyID == "" || strings.ContainsAny(keyID, "=,") {
		return fmt.Errorf("invalid key id %q", cfg.KeyID)
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	secret := hex.EncodeToString(buf)

	env := integrity.Env{Key: secret, KeyID: keyID}
	if rotate := strings.TrimSpace(cfg.Rotate); rotate != "" {
		env = integrity.Env{Keys: rotate + "," + keyID + "=" + secret, KeyID: keyID}
	}
	// Catches malformed rotation lists before they reach a deployment.
	if _, err := env.Keyring(); err != nil {
		return err
	}

	if env.Keys != "" {
		_, err := fmt.Fprintf(out, "COOKIECLICKER_SAVE_HMAC_KEYS=%s\nCOOKIECLICKER_SAVE_HMAC_KEY_ID=%s\n", env.Keys, keyID)
		return err
	}
	_, err := fmt.Fprintf(out, "COOKIECLICKER_SAVE_HMAC_KEY=%s\nCOOKIECLICKER_SAVE_HMAC_KEY_ID=%s\n", secret, keyID)
	return err
}
