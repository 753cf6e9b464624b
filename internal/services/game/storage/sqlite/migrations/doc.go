// Package migrations embeds the SQL migration scripts for the save slot store.
package migrations
