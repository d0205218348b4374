package config

// DefaultCSVPath is where the interchange file goes when no path is given.
const DefaultCSVPath = "/tmp/letterboxd_import.csv"

const (
	defaultJellyfinRequestTimeout  = 30
	defaultLetterboxdBaseURL       = "https://letterboxd.com"
	defaultNavigationTimeout       = 60
	defaultLoginTimeout            = 60
	defaultUploadAffordanceTimeout = 10
	defaultMappingTimeout          = 60
	defaultCompletionTimeout       = 60
	defaultLogFormat               = "auto"
	defaultLogLevel                = "info"
	defaultLogFileMaxSizeMB        = 10
	defaultLogFileMaxBackups       = 3
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CSVPath: DefaultCSVPath,
		},
		Jellyfin: Jellyfin{
			RequestTimeout: defaultJellyfinRequestTimeout,
		},
		Letterboxd: Letterboxd{
			BaseURL: defaultLetterboxdBaseURL,
			Timeouts: Timeouts{
				Navigation:       defaultNavigationTimeout,
				Login:            defaultLoginTimeout,
				UploadAffordance: defaultUploadAffordanceTimeout,
				Mapping:          defaultMappingTimeout,
				Completion:       defaultCompletionTimeout,
			},
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogFileMaxSizeMB,
			MaxBackups: defaultLogFileMaxBackups,
		},
	}
}
