// Package history turns a Jellyfin user's watch history into the canonical,
// import-ready record list.
//
// The Collector resolves the username, fetches the played inventory, and
// reduces it so each (title, year) pair appears once. Episodes collapse onto
// their series name, and the first item in server order decides the watched
// date. Items that break the watched-filter contract (no last-played date, an
// episode without a series name) abort the export instead of producing a bad row.
package history
