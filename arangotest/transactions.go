package arangotest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) beginTransaction(c *gin.Context) {
	var body struct {
		Collections struct {
			Read      []string `json:"read"`
			Write     []string `json:"write"`
			Exclusive []string `json:"exclusive"`
		} `json:"collections"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	d := currentDB(c)
	for _, group := range [][]string{body.Collections.Read, body.Collections.Write, body.Collections.Exclusive} {
		for _, name := range group {
			if _, ok := d.collections[name]; !ok {
				failf(c, http.StatusNotFound, errCollectionNotFound, "collection or view not found: %s", name)
				return
			}
		}
	}
	id := s.nextID()
	d.transactions[id] = "running"
	c.JSON(http.StatusCreated, gin.H{"error": false, "code": http.StatusCreated, "result": gin.H{"id": id, "status": "running"}})
}

func (s *Server) transactionStatus(c *gin.Context) { s.transition(c, "") }

func (s *Server) commitTransaction(c *gin.Context) { s.transition(c, "committed") }

func (s *Server) abortTransaction(c *gin.Context) { s.transition(c, "aborted") }

// transition moves a running transaction to next, or reports it when next
// is empty.
func (s *Server) transition(c *gin.Context, next string) {
	d := currentDB(c)
	id := c.Param("id")
	status, ok := d.transactions[id]
	if !ok {
		fail(c, http.StatusNotFound, errTransactionNotFound)
		return
	}
	if next != "" {
		if status != "running" && status != next {
			failf(c, http.StatusConflict, errTransactionNotFound, "transaction is already %s", status)
			return
		}
		d.transactions[id] = next
		status = next
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "result": gin.H{"id": id, "status": status}})
}
