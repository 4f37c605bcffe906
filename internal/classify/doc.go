// Package classify sorts finished torrents into tv, movie, or other based on
// configured name patterns.
//
// Rules compile once into a RuleSet that preserves the configured evaluation
// order with the tv list strictly ahead of the movie list, so a name carrying
// both an episode marker and a year still lands in tv. Matching is
// case-insensitive via Unicode case folding of the torrent name; the patterns
// themselves are applied exactly as configured. Classification is pure: the
// same name always yields the same Match, and only the name is consulted.
package classify
