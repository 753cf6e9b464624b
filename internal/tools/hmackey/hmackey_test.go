package hmackey

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("hmackey", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Bytes != 32 || cfg.KeyID != "v1" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigOverride(t *testing.T) {
	fs := flag.NewFlagSet("hmackey", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-bytes", "16", "-key-id", "v2"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Bytes != 16 || cfg.KeyID != "v2" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestRunRejectsInvalidBytes(t *testing.T) {
	if err := Run(Config{Bytes: 0, KeyID: "v1"}, &bytes.Buffer{}, bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error for non-positive bytes")
	}
}

func TestRunRejectsInvalidKeyID(t *testing.T) {
	for _, id := range []string{"", " ", "a=b", "a,b"} {
		if err := Run(Config{Bytes: 4, KeyID: id}, &bytes.Buffer{}, bytes.NewReader([]byte{1, 2, 3, 4})); err == nil {
			t.Fatalf("expected error for key id %q", id)
		}
	}
}

func TestRunWritesHex(t *testing.T) {
	buf := &bytes.Buffer{}
	reader := bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	if err := Run(Config{Bytes: 4, KeyID: "v1"}, buf, reader); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "COOKIECLICKER_SAVE_HMAC_KEY=01020304\nCOOKIECLICKER_SAVE_HMAC_KEY_ID=v1\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunRotationKeepsOldKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	reader := bytes.NewReader([]byte{0xaa, 0xbb})
	if err := Run(Config{Bytes: 2, KeyID: "v2", Rotate: "v1=old"}, buf, reader); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "COOKIECLICKER_SAVE_HMAC_KEYS=v1=old,v2=aabb\nCOOKIECLICKER_SAVE_HMAC_KEY_ID=v2\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunRejectsMalformedRotation(t *testing.T) {
	if err := Run(Config{Bytes: 2, KeyID: "v2", Rotate: "nope"}, &bytes.Buffer{}, bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("expected malformed rotation to fail")
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{Bytes: 4, KeyID: "v1"}, nil, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}

func TestRunDefaultReader(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{Bytes: 4, KeyID: "v1"}, buf, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	line, _, _ := strings.Cut(buf.String(), "\n")
	const prefix = "COOKIECLICKER_SAVE_HMAC_KEY="
	if !strings.HasPrefix(line, prefix) {
		t.Fatalf("expected env prefix, got %q", line)
	}
	if len(strings.TrimPrefix(line, prefix)) != 8 {
		t.Fatalf("expected 8 hex chars, got %q", line)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, fmt.Errorf("read error") }

func TestRunReaderError(t *testing.T) {
	if err := Run(Config{Bytes: 4, KeyID: "v1"}, &bytes.Buffer{}, errReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}
}

func TestParseConfigBadArgs(t *testing.T) {
	fs := flag.NewFlagSet("hmackey", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-invalid"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
