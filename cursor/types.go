package cursor

import (
	"time"

	"github.com/kbukum/arangodb/apiclient"
)

// CreateBody is the request body of Create.
type CreateBody struct {
	Query     string
	BindVars  map[string]any
	Count     bool
	BatchSize int `json:",omitempty"`
	// TTL is how long an idle cursor survives on the server.
	TTL         time.Duration `json:"-"`
	Cache       *bool
	MemoryLimit *int64
	Options     *Options
}

// Options are the extra query options of a cursor.
type Options struct {
	FullCount         *bool
	MaxPlans          *int
	MaxWarningCount   *int
	FailOnWarning     *bool
	Stream            *bool
	Profile           *bool
	SatelliteSyncWait *float64
	MaxRuntime        *float64
	Optimizer         *Optimizer
}

// Optimizer selects optimizer rules.
type Optimizer struct {
	Rules []string
}

// wireBody is CreateBody with TTL in seconds.
type wireBody struct {
	CreateBody
	TTL *float64 `json:"ttl"`
}

// Response is one batch of a cursor.
type Response[T any] struct {
	apiclient.ResponseBase
	// ID is empty when the whole result fit in the first batch.
	ID      string `json:"id"`
	Result  []T    `json:"result"`
	HasMore bool   `json:"hasMore"`
	Count   *int64 `json:"count"`
	Cached  bool   `json:"cached"`
	Extra   *Extra `json:"extra"`
}

// Extra carries query statistics and warnings.
type Extra struct {
	Stats    Stats     `json:"stats"`
	Warnings []Warning `json:"warnings"`
}

// Stats are execution statistics of a query.
type Stats struct {
	WritesExecuted  int64   `json:"writesExecuted"`
	WritesIgnored   int64   `json:"writesIgnored"`
	ScannedFull     int64   `json:"scannedFull"`
	ScannedIndex    int64   `json:"scannedIndex"`
	Filtered        int64   `json:"filtered"`
	FullCount       *int64  `json:"fullCount"`
	ExecutionTime   float64 `json:"executionTime"`
	PeakMemoryUsage int64   `json:"peakMemoryUsage"`
}

// Warning is a non-fatal query diagnostic.
type Warning struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
