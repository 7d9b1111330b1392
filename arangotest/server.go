package arangotest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const systemDatabase = "_system"

// Request is a request received by the Server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Server is a fake ArangoDB server backed by httptest.
type Server struct {
	mu        sync.Mutex
	engine    *gin.Engine
	ts        *httptest.Server
	dbs       map[string]*database
	seq       int
	requests  []Request
	user      string
	password  string
	batchSize int
}

// Option configures a Server.
type Option func(*Server)

// WithDatabases creates databases in addition to _system.
func WithDatabases(names ...string) Option {
	return func(s *Server) {
		for _, name := range names {
			s.dbs[name] = s.newDatabase(name)
		}
	}
}

// WithBasicAuth rejects requests without these credentials.
func WithBasicAuth(user, password string) Option {
	return func(s *Server) {
		s.user, s.password = user, password
	}
}

// WithBatchSize sets the default cursor batch size.
func WithBatchSize(n int) Option {
	return func(s *Server) { s.batchSize = n }
}

// New starts a Server that is closed when t finishes.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{dbs: map[string]*database{}, batchSize: 1000}
	s.dbs[systemDatabase] = s.newDatabase(systemDatabase)
	for _, opt := range opts {
		opt(s)
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.record, s.requestID, s.authenticate, s.serialize)
	s.routes(s.engine.Group("/_db/:db", s.resolveDatabase))
	s.routes(s.engine.Group("", s.resolveDatabase))

	s.ts = httptest.NewServer(s.engine)
	t.Cleanup(s.ts.Close)
	return s
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	return s.ts.URL
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Document returns a stored document, if present.
func (s *Server) Document(db, collection, key string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dbs[db]
	if !ok {
		return nil, false
	}
	coll, ok := d.collections[collection]
	if !ok {
		return nil, false
	}
	doc, ok := coll.docs[key]
	return clone(doc), ok
}

func (s *Server) routes(g *gin.RouterGroup) {
	api := g.Group("/_api")
	api.GET("/version", s.version)

	api.POST("/database", s.createDatabase)
	api.GET("/database", s.listDatabases)
	api.GET("/database/user", s.listDatabases)
	api.GET("/database/current", s.currentDatabase)
	api.DELETE("/database/:name", s.dropDatabase)

	api.POST("/collection", s.createCollection)
	api.GET("/collection", s.listCollections)
	api.GET("/collection/:name", s.getCollection)
	api.DELETE("/collection/:name", s.dropCollection)
	api.PUT("/collection/:name/truncate", s.truncateCollection)
	api.GET("/collection/:name/count", s.countCollection)

	api.POST("/document/:collection", s.createDocuments)
	api.PUT("/document/:collection", s.replaceDocuments)
	api.PATCH("/document/:collection", s.updateDocuments)
	api.DELETE("/document/:collection", s.deleteDocuments)
	api.GET("/document/:collection/:key", s.getDocument)
	api.PUT("/document/:collection/:key", s.replaceDocument)
	api.PATCH("/document/:collection/:key", s.updateDocument)
	api.DELETE("/document/:collection/:key", s.deleteDocument)

	api.POST("/gharial", s.createGraph)
	api.GET("/gharial", s.listGraphs)
	api.GET("/gharial/:graph", s.getGraph)
	api.DELETE("/gharial/:graph", s.dropGraph)
	api.GET("/gharial/:graph/vertex", s.vertexCollections)
	api.POST("/gharial/:graph/vertex", s.addVertexCollection)
	api.POST("/gharial/:graph/vertex/:collection", s.createVertex)
	api.GET("/gharial/:graph/edge", s.edgeCollections)
	api.POST("/gharial/:graph/edge", s.addEdgeDefinition)
	api.POST("/gharial/:graph/edge/:collection", s.createEdge)

	api.POST("/cursor", s.createCursor)
	api.POST("/cursor/:id", s.nextCursor)
	api.PUT("/cursor/:id", s.nextCursor)
	api.DELETE("/cursor/:id", s.deleteCursor)

	api.POST("/transaction/begin", s.beginTransaction)
	api.GET("/transaction/:id", s.transactionStatus)
	api.PUT("/transaction/:id", s.commitTransaction)
	api.DELETE("/transaction/:id", s.abortTransaction)
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-Id", id)
	c.Next()
}

func (s *Server) authenticate(c *gin.Context) {
	if s.user == "" {
		c.Next()
		return
	}
	user, password, ok := c.Request.BasicAuth()
	if !ok || user != s.user || password != s.password {
		fail(c, http.StatusUnauthorized, errForbidden)
		c.Abort()
		return
	}
	c.Next()
}

// serialize runs one handler at a time against the shared state.
func (s *Server) serialize(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Next()
}

func (s *Server) resolveDatabase(c *gin.Context) {
	name := c.Param("db")
	if name == "" {
		name = systemDatabase
	}
	d, ok := s.dbs[name]
	if !ok {
		fail(c, http.StatusNotFound, errDatabaseNotFound)
		c.Abort()
		return
	}
	if id := c.GetHeader("x-arango-trx-id"); id != "" {
		if status, ok := d.transactions[id]; !ok || status != "running" {
			fail(c, http.StatusNotFound, errTransactionNotFound)
			c.Abort()
			return
		}
	}
	c.Set("db", d)
	c.Next()
}

func currentDB(c *gin.Context) *database {
	return c.MustGet("db").(*database)
}

func (s *Server) nextID() string {
	s.seq++
	return strconv.Itoa(s.seq)
}

func newRev() string {
	return uuid.NewString()[:13]
}

func (s *Server) version(c *gin.Context) {
	body := gin.H{"server": "arango", "version": "3.12.0", "license": "community"}
	if c.Query("details") == "true" {
		body["details"] = gin.H{"mode": "server", "role": "SINGLE"}
	}
	c.JSON(http.StatusOK, body)
}

// Server error numbers used by the fake.
const (
	errForbidden           = 11
	errCorruptedJSON       = 600
	errConflict            = 1200
	errDocumentNotFound    = 1202
	errCollectionNotFound  = 1203
	errDuplicateName       = 1207
	errUniqueConstraint    = 1210
	errDocumentKeyBad      = 1221
	errDocumentTypeInvalid = 1227
	errDatabaseNotFound    = 1228
	errQueryParse          = 1501
	errCursorNotFound      = 1600
	errTransactionNotFound = 1655
	errGraphNotFound       = 1924
	errGraphDuplicate      = 1925
)

var messages = map[int]string{
	errForbidden:           "not authorized to execute this request",
	errCorruptedJSON:       "invalid JSON in request body",
	errConflict:            "conflict, _rev values do not match",
	errDocumentNotFound:    "document not found",
	errCollectionNotFound:  "collection or view not found",
	errDuplicateName:       "duplicate name",
	errUniqueConstraint:    "unique constraint violated",
	errDocumentKeyBad:      "illegal document key",
	errDocumentTypeInvalid: "invalid document type",
	errDatabaseNotFound:    "database not found",
	errQueryParse:          "syntax error, unexpected query",
	errCursorNotFound:      "cursor not found",
	errTransactionNotFound: "transaction not found",
	errGraphNotFound:       "graph not found",
	errGraphDuplicate:      "graph already exists",
}

func envelope(status, num int) gin.H {
	return gin.H{"error": true, "code": status, "errorNum": num, "errorMessage": messages[num]}
}

func fail(c *gin.Context, status, num int) {
	c.JSON(status, envelope(status, num))
}

func failf(c *gin.Context, status, num int, format string, args ...any) {
	body := envelope(status, num)
	body["errorMessage"] = fmt.Sprintf(format, args...)
	c.JSON(status, body)
}

func clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
