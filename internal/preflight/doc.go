// Package preflight provides readiness checks for the services, paths, and
// programs a sync depends on.
//
// The CLI "jellyboxd check" command runs RunAll and renders the results so an
// operator can fix credentials or a missing browser before starting a sync
// that would otherwise fail halfway through the Letterboxd import.
package preflight
