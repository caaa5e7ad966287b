package config

const (
	defaultDataDir              = "~/.local/share/comicsdb"
	defaultLogDir               = "~/.local/share/comicsdb/logs"
	defaultDatabaseFile         = "catalog.db"
	defaultMarvelBaseURL        = "https://gateway.marvel.com/v1/public"
	defaultMarvelTimeoutSeconds = 15
	defaultMarvelPageSize       = 100
	defaultMarvelMaxRetries     = 4
	defaultNarrowThreshold      = 15
	defaultCoverMonthsAhead     = 2
	defaultEditorCreditCreator  = "c-b-cebulski"
	defaultEditorCreditRole     = "editor in chief"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			DatabaseFile: defaultDatabaseFile,
		},
		Marvel: Marvel{
			BaseURL:        defaultMarvelBaseURL,
			TimeoutSeconds: defaultMarvelTimeoutSeconds,
			PageSize:       defaultMarvelPageSize,
			MaxRetries:     defaultMarvelMaxRetries,
		},
		Import: Import{
			NarrowThreshold:     defaultNarrowThreshold,
			CoverMonthsAhead:    defaultCoverMonthsAhead,
			EditorCreditCreator: defaultEditorCreditCreator,
			EditorCreditRole:    defaultEditorCreditRole,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
