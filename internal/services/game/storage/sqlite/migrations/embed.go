package migrations

import "embed"

// SlotsFS holds the save slot schema history.
//
//go:embed slots/*.sql
var SlotsFS embed.FS
