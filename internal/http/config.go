package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Books  BookStore
	Health HealthChecker

	// Optional; their routes are not registered when nil.
	Imports   ImportQueue
	Reports   ImportReports // listed by GET /api/imports
	Snapshots Snapshotter

	AllowedOrigins []string
	CSRFSecret     []byte // empty disables CSRF protection
	SecureCookies  bool
	ReadOnly       bool

	Version string
}
