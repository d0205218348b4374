// Package interchange reads and writes the CSV file handed from the Jellyfin
// export to the Letterboxd importer.
//
// The format is fixed: a Title,Year,WatchedDate header followed by one row per
// canonical record, RFC 4180 quoting, LF line endings. Field bytes are written
// unchanged, including carriage returns inside titles. Letterboxd's importer
// maps these column names automatically. IO goes through an afero.Fs so
// callers and tests can swap the filesystem.
package interchange
