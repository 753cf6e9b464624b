// Package integrity signs save slot checksums so tampered records are
// rejected on load.
//
// Each slot derives its own HMAC key from a root key and the slot id, and a
// keyring may hold several root keys so old saves verify after rotation.
package integrity
