// Package qbittorrent is a minimal client for the qBittorrent WebUI API,
// covering exactly what the hook needs: the cookie-based login handshake
// with its anti-forgery token, the three-step apply sequence (setLocation,
// setCategory, setAutoManagement), and the version probe used by preflight.
//
// The client holds the session cookie jar and hands callers an explicit
// Session so authenticated calls are visible in signatures. Requests share
// one configured timeout and are never retried; callers decide what a
// failure means.
package qbittorrent
