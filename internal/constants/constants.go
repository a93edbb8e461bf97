package constants

const (
	AppName            = "thoughts"
	Version            = "v0.1.0"
	DefaultConfigPath  = "~/.config/thoughts/thoughts.db"
	DefaultKeyringUser = "database-connection"

	// ThoughtsKey is the single storage slot holding the serialized list.
	ThoughtsKey = "thoughts"
	// NextKeyKey holds the monotonic key counter.
	NextKeyKey = "thoughts.nextKey"

	// StoreVersion is the version written into JSON store files
	StoreVersion = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "thoughts-"

	// UI text
	Title       = "My Thoughts App"
	Placeholder = "Write your thought and press enter"
	FooterFmt   = "Your data is saved in %s. Restart to check :)"

	// MillisPerMinute is used by the "min ago" display
	MillisPerMinute = 60 * 1000

	// Environment variables
	EnvConfig       = "THOUGHTS_CONFIG"
	EnvDebug        = "THOUGHTS_DEBUG"
	EnvKeyPolicy    = "THOUGHTS_KEY_POLICY"
	EnvDBConnection = "THOUGHTS_DB_CONNECTION"
)
