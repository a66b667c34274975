package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File system errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBBeginTxError
	DBCommitTxError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaSequenceError

	// Facility configuration errors
	FacilityConfigReadError
	FacilityConfigParseError
	FacilityProfileNotFoundError

	// Import errors
	ImportManifestOpenError
	ImportManifestReadError
	ImportRunRegistrationError
	ImportRunKeyConflictError
	ImportSampleInsertError
	ImportCommitError

	// Query errors
	QueryRunNotFoundError
	QueryRunsError
	QuerySamplesError

	// Lifecycle errors
	DeleteRunNotFoundError
	DeleteRunError
)
