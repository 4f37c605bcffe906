// Package config loads, normalizes, and validates qbsort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// QBT_USERNAME and QBT_PASSWORD. The Config type centralizes every knob the
// hook and CLI need: the library directory layout, the ordered classification
// rules, the qBittorrent category labels, and the WebUI endpoint.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
