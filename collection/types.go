package collection

import (
	"github.com/kbukum/arangodb/apiclient"
)

// Type is the kind of documents a collection stores.
type Type int

// Collection types.
const (
	TypeDocument Type = 2
	TypeEdge     Type = 3
)

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeDocument:
		return "document"
	case TypeEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// KeyOptions control key generation.
type KeyOptions struct {
	Type          string
	AllowUserKeys *bool
	Increment     *int
	Offset        *int
	LastValue     *int64
}

// CreateBody is the request body of Create.
type CreateBody struct {
	Name              string
	Type              Type
	WaitForSync       *bool
	IsSystem          *bool
	KeyOptions        *KeyOptions
	NumberOfShards    *int
	ShardKeys         []string
	ReplicationFactor any
	WriteConcern      *int
	Schema            map[string]any
}

// CreateQuery are the query options of Create.
type CreateQuery struct {
	WaitForSyncReplication   *bool `query:"waitForSyncReplication"`
	EnforceReplicationFactor *bool `query:"enforceReplicationFactor"`
}

// ListQuery are the query options of List.
type ListQuery struct {
	ExcludeSystem bool `query:"excludeSystem,omitempty"`
}

// DeleteQuery are the query options of Delete.
type DeleteQuery struct {
	// IsSystem must be set to drop a system collection.
	IsSystem bool `query:"isSystem,omitempty"`
}

// Info describes a collection.
type Info struct {
	apiclient.ResponseBase
	ID               string `json:"id" validate:"required"`
	Name             string `json:"name" validate:"required"`
	GloballyUniqueID string `json:"globallyUniqueId"`
	Type             Type   `json:"type"`
	Status           int    `json:"status"`
	StatusString     string `json:"statusString"`
	IsSystem         bool   `json:"isSystem"`
	WaitForSync      bool   `json:"waitForSync"`
	JournalSize      int64  `json:"journalSize"`
	DoCompact        bool   `json:"doCompact"`
	IndexBuckets     int    `json:"indexBuckets"`
	IsVolatile       bool   `json:"isVolatile"`
	KeyOptions       *KeyOptions
}

// Summary is one element of List.
type Summary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	GloballyUniqueID string `json:"globallyUniqueId"`
	Type             Type   `json:"type"`
	Status           int    `json:"status"`
	IsSystem         bool   `json:"isSystem"`
}

// ListResponse is the result of List.
type ListResponse struct {
	apiclient.ResponseBase
	Result []Summary `json:"result"`
}

// DeleteResponse is the result of Delete.
type DeleteResponse struct {
	apiclient.ResponseBase
	ID string `json:"id"`
}

// CountResponse is the result of Count.
type CountResponse struct {
	Info
	Count int64 `json:"count"`
}
