package errors

// Server error numbers (errorNum) returned in the error envelope.
const (
	ErrInternal         = 4
	ErrIllegalNumber    = 8
	ErrForbidden        = 11
	ErrBadParameter     = 400
	ErrHTTPUnauthorized = 401
	ErrHTTPForbidden    = 403
	ErrHTTPNotFound     = 404
	ErrMethodNotAllowed = 405
	ErrCorruptedJSON    = 600
)

// Storage and document errors.
const (
	ErrConflict                 = 1200
	ErrDocumentNotFound         = 1202
	ErrCollectionNotFound       = 1203
	ErrCollectionParameterMiss  = 1204
	ErrDocumentHandleBad        = 1205
	ErrDuplicateName            = 1207
	ErrIllegalName              = 1208
	ErrUniqueConstraintViolated = 1210
	ErrDocumentTypeInvalid      = 1227
	ErrDatabaseNotFound         = 1228
	ErrDatabaseNameInvalid      = 1229
	ErrDocumentKeyBad           = 1221
	ErrDocumentKeyUnexpected    = 1222
	ErrDocumentKeyMissing       = 1226
)

// Query, cursor and transaction errors.
const (
	ErrQueryKilled         = 1500
	ErrQueryParse          = 1501
	ErrQueryEmpty          = 1502
	ErrQueryBindMissing    = 1551
	ErrCursorNotFound      = 1600
	ErrCursorBusy          = 1601
	ErrTransactionInternal = 1650
	ErrTransactionNotFound = 1655
	ErrTransactionAborted  = 1656
)

// Graph errors.
const (
	ErrGraphInvalidGraph          = 1901
	ErrGraphCouldNotCreateGraph   = 1902
	ErrGraphInvalidVertex         = 1903
	ErrGraphInvalidEdge           = 1906
	ErrGraphEdgeColDoesNotExist   = 1921
	ErrGraphNotFound              = 1924
	ErrGraphDuplicate             = 1925
	ErrGraphVertexColDoesNotExist = 1926
	ErrGraphWrongCollectionType   = 1927
	ErrGraphNotInOrphanCollection = 1928
	ErrGraphCollectionUsedInEdge  = 1929
	ErrGraphEdgeColNotUsed        = 1930
)
