package config

const (
	// DefaultPort is the HTTP port used when PORT is not set
	DefaultPort = 3000

	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultImportFile is the JSON document read by import-json when -file is not given
	DefaultImportFile = "books.json"

	// DefaultAPIURL is where the books command expects the server
	DefaultAPIURL = "http://localhost:3000"
)
