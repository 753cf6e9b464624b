// Package clicker implements the immutable cookie clicker game state.
//
// Every mutator returns a new State and leaves its receiver untouched. Derived
// production (per-building rates and the click yield) is recomputed whenever a
// state is built, so it can never disagree with the owned buildings, upgrades
// and active buffs.
//
// Production is evaluated in two phases. Building effects are folded first and
// the resulting rates committed. Click effects run second and may read those
// rates through the effect.Production view.
//
// Warp integrates income over a tick interval in steps that end at buff
// expiry boundaries, accruing each step at the rates in force when it began.
package clicker
