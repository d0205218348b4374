// Package jellyfin is the read-only client for the source media server.
//
// It lists server users, resolves a username to its internal identifier, and
// fetches the played Movie and Episode inventory for that user, authenticating
// every request with the X-Emby-Token header. Any non-2xx response surfaces as
// a StatusError tagged services.ErrTransport; nothing here retries.
package jellyfin
