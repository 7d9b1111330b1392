package graph

import (
	"github.com/kbukum/arangodb/apiclient"
)

// Graph is a named graph definition as stored by the server.
type Graph struct {
	Key                 string `json:"_key" validate:"required"`
	ID                  string `json:"_id" validate:"required"`
	Rev                 string `json:"_rev"`
	Name                string
	EdgeDefinitions     []EdgeDefinition
	OrphanCollections   []string
	NumberOfShards      int
	ReplicationFactor   any
	WriteConcern        int
	IsSmart             bool
	IsDisjoint          bool
	IsSatellite         bool
	SmartGraphAttribute string
}

// EdgeDefinition relates an edge collection to its vertex collections.
type EdgeDefinition struct {
	Collection string
	From       []string
	To         []string
}

// CreateOptions are the cluster options of a new graph.
type CreateOptions struct {
	NumberOfShards      *int
	ReplicationFactor   any
	WriteConcern        *int
	SmartGraphAttribute *string
	Satellites          []string
}

// CreateBody is the request body of Create.
type CreateBody struct {
	Name              string
	EdgeDefinitions   []EdgeDefinition
	OrphanCollections []string
	IsSmart           *bool
	IsDisjoint        *bool
	Options           *CreateOptions
}

// CreateQuery are the query options of Create.
type CreateQuery struct {
	WaitForSync *bool `query:"waitForSync"`
}

// DeleteQuery are the query options of Delete.
type DeleteQuery struct {
	// DropCollections also drops collections not used by other graphs.
	DropCollections *bool `query:"dropCollections"`
}

// WriteQuery are the query options of vertex and edge writes.
type WriteQuery struct {
	WaitForSync *bool `query:"waitForSync"`
	ReturnNew   bool  `query:"returnNew,omitempty"`
}

// GraphResponse wraps a single graph.
type GraphResponse struct {
	apiclient.ResponseBase
	Graph Graph `json:"graph"`
}

// ListResponse wraps every graph of the database.
type ListResponse struct {
	apiclient.ResponseBase
	Graphs []Graph `json:"graphs"`
}

// DeleteResponse is the result of Delete.
type DeleteResponse struct {
	apiclient.ResponseBase
	Removed bool `json:"removed"`
}

// CollectionsResponse lists collection names of a graph.
type CollectionsResponse struct {
	apiclient.ResponseBase
	Collections []string `json:"collections"`
}

// Handle identifies a vertex or edge written through a graph.
type Handle struct {
	ID     string `json:"_id" validate:"required"`
	Key    string `json:"_key" validate:"required"`
	Rev    string `json:"_rev"`
	From   string `json:"_from,omitempty"`
	To     string `json:"_to,omitempty"`
	OldRev string `json:"_oldRev,omitempty"`
}

// EdgeResponse is the result of CreateEdge.
type EdgeResponse[T any] struct {
	apiclient.ResponseBase
	Edge Handle `json:"edge"`
	// New is set when WriteQuery.ReturnNew was requested.
	New *T `json:"new,omitempty"`
}

// VertexResponse is the result of CreateVertex.
type VertexResponse[T any] struct {
	apiclient.ResponseBase
	Vertex Handle `json:"vertex"`
	New    *T     `json:"new,omitempty"`
}
