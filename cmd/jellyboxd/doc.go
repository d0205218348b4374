// Package main hosts the jellyboxd CLI.
//
// The root command performs the full sync: export the Jellyfin watch history
// to the interchange CSV, then drive the Letterboxd import with it. The
// export and import subcommands run one half each so an operator can retry
// the import without re-querying Jellyfin. Configuration comes from flags
// layered over an optional TOML file.
package main
