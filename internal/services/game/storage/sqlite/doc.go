// Package sqlite implements the save slot store on SQLite.
//
// Records are stored as canonical JSON next to a few denormalized columns
// (ticks, bank, cookies baked) so slot listings can be filtered without
// decoding every record. The checksum is recomputed on every write and
// verified on every read.
package sqlite
