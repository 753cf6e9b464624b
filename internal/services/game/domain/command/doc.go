// Package command defines the player command envelope and its registry.
//
// Commands are the serialized form of the game state mutators. A registry
// validates and canonicalizes a command's payload, then applies it to a state,
// so every caller (the session service, scenario scripts, the CLI) shares one
// decoding path and one set of argument checks.
package command
