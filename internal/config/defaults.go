package config

const (
	defaultMoviesDir      = "movies"
	defaultTVDir          = "tv"
	defaultOtherDir       = "other"
	defaultLogDir         = "~/.local/share/qbsort/logs"
	defaultTVLabel        = "TV"
	defaultMovieLabel     = "Movies"
	defaultOtherLabel     = "Other"
	defaultHost           = "127.0.0.1"
	defaultPort           = 8080
	defaultRequestTimeout = 10
	defaultJournalKeep    = 1000
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default classification rules. The tv list is evaluated before the movie
// list, so season/episode markers win over year or source tokens that appear
// in the same name. Patterns match against the case-folded torrent name.
func defaultTVRules() []string {
	return []string{
		`s\d{1,2}e\d{1,3}`,
		`\b\d{1,2}x\d{2,3}\b`,
		`season[. _-]?\d{1,2}`,
	}
}

func defaultMovieRules() []string {
	return []string{
		`\b(19|20)\d{2}\b`,
		`\b(2160p|1080p|720p)\b`,
		`\b(bluray|bdrip|brrip|dvdrip|webrip|web-dl)\b`,
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MoviesDir: defaultMoviesDir,
			TVDir:     defaultTVDir,
			OtherDir:  defaultOtherDir,
			LogDir:    defaultLogDir,
		},
		Rules: Rules{
			TV:    defaultTVRules(),
			Movie: defaultMovieRules(),
		},
		Categories: Categories{
			TV:    defaultTVLabel,
			Movie: defaultMovieLabel,
			Other: defaultOtherLabel,
		},
		QBittorrent: QBittorrent{
			Host:           defaultHost,
			Port:           defaultPort,
			RequestTimeout: defaultRequestTimeout,
		},
		Journal: Journal{
			Enabled: true,
			Keep:    defaultJournalKeep,
		},
		Notifications: Notifications{
			RequestTimeout: defaultRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
