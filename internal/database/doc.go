// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup for sqlite/postgres/mysql, migrations
//	└── books/           # Book CRUD and search
//
// # Usage
//
//	db, err := database.NewDatabase(cfg.Database)
//	repo := books.NewRepository(db.DB)
//	book, err := repo.Get(123)
//
// The Database value is created once at startup and handed to every consumer
// explicitly. Tests open their own SQLite file per test case.
package database
