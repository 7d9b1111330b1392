package arangotest

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

var forInReturn = regexp.MustCompile(`^\s*(?i:FOR)\s+(\w+)\s+(?i:IN)\s+(\w+)\s+(?i:RETURN)\s+(\w+)\s*$`)

type createCursorBody struct {
	Query     string `json:"query"`
	Count     bool   `json:"count"`
	BatchSize int    `json:"batchSize"`
}

func (s *Server) createCursor(c *gin.Context) {
	var body createCursorBody
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	m := forInReturn.FindStringSubmatch(body.Query)
	if m == nil || m[1] != m[3] {
		failf(c, http.StatusBadRequest, errQueryParse, "unsupported query: %s", body.Query)
		return
	}
	coll, ok := s.lookup(c, m[2])
	if !ok {
		return
	}

	batch := body.BatchSize
	if batch <= 0 {
		batch = s.batchSize
	}
	result := coll.sortedDocs()
	res := gin.H{"error": false, "code": http.StatusCreated, "cached": false}
	if body.Count {
		res["count"] = len(result)
	}
	if len(result) > batch {
		id := s.nextID()
		d := currentDB(c)
		d.cursors[id] = result[batch:]
		d.batchSizes[id] = batch
		res["id"] = id
		result = result[:batch]
	}
	res["result"] = result
	res["hasMore"] = res["id"] != nil
	res["extra"] = gin.H{"stats": gin.H{"scannedFull": len(coll.docs)}, "warnings": []any{}}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) nextCursor(c *gin.Context) {
	d := currentDB(c)
	id := c.Param("id")
	rest, ok := d.cursors[id]
	if !ok {
		fail(c, http.StatusNotFound, errCursorNotFound)
		return
	}
	batch := d.batchSizes[id]
	if batch <= 0 || batch > len(rest) {
		batch = len(rest)
	}
	result, rest := rest[:batch], rest[batch:]
	hasMore := len(rest) > 0
	if hasMore {
		d.cursors[id] = rest
	} else {
		delete(d.cursors, id)
		delete(d.batchSizes, id)
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "id": id, "result": result, "hasMore": hasMore})
}

func (s *Server) deleteCursor(c *gin.Context) {
	d := currentDB(c)
	id := c.Param("id")
	if _, ok := d.cursors[id]; !ok {
		fail(c, http.StatusNotFound, errCursorNotFound)
		return
	}
	delete(d.cursors, id)
	delete(d.batchSizes, id)
	c.JSON(http.StatusAccepted, gin.H{"error": false, "code": http.StatusAccepted, "id": id})
}
