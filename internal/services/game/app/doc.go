// Package app runs play sessions for save slots.
//
// A Service keeps the current state of every open slot behind a mutex,
// applies player commands through the command registry, converts elapsed
// wall-clock time into ticks on request, and writes each new state back to
// the save store.
package app
