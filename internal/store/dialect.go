package store

// Dialect abstracts the SQL syntax differences between SQLite and
// PostgreSQL so the map archive can run on either.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// position (1-indexed). SQLite: "?", PostgreSQL: "$1", "$2", ...
	Placeholder(position int) string

	// SupportsLastInsertID reports whether the driver supports
	// LastInsertId(). PostgreSQL uses a RETURNING clause instead.
	SupportsLastInsertID() bool

	// ReturningClause returns the RETURNING clause appended to INSERT
	// statements on dialects without LastInsertId() support.
	ReturningClause(column string) string

	// InitStatements returns statements run once after connecting,
	// before migrations.
	InitStatements() []string
}

// DialectType identifies the database dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect creates a Dialect for the given type, defaulting to SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
