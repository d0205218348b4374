// Package letterboxd drives Letterboxd's CSV import through a real browser.
//
// Letterboxd has no import API, so the importer walks its web UI as a linear
// state machine: unauthenticated, authenticated, file selected, mapping
// confirmed, import triggered, completed. Each transition is a fixed list of
// browser steps built by Plan; every bounded wait carries a policy. A hard
// wait (login, mapping) ends the run on timeout. An advisory wait (upload
// button, import summary) logs a warning and falls back. Nothing is retried,
// and the browser is released on every exit path.
//
// The Browser and Launcher interfaces keep the state machine independent of
// chromedp; see the chromebrowser subpackage for the real implementation.
package letterboxd
