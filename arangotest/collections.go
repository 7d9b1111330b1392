package arangotest

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type createCollectionBody struct {
	Name string `json:"name"`
	Type int    `json:"type"`
}

func (s *Server) createCollection(c *gin.Context) {
	var body createCollectionBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	d := currentDB(c)
	if _, exists := d.collections[body.Name]; exists {
		fail(c, http.StatusConflict, errDuplicateName)
		return
	}
	typ := body.Type
	if typ != typeEdge {
		typ = typeDocument
	}
	c.JSON(http.StatusOK, s.newCollection(d, body.Name, typ).info())
}

func (s *Server) listCollections(c *gin.Context) {
	d := currentDB(c)
	names := make([]string, 0, len(d.collections))
	for name := range d.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	excludeSystem := c.Query("excludeSystem") == "true"
	result := make([]any, 0, len(names))
	for _, name := range names {
		coll := d.collections[name]
		if excludeSystem && coll.isSystem {
			continue
		}
		result = append(result, gin.H{
			"id":               coll.id,
			"name":             coll.name,
			"globallyUniqueId": "h" + coll.id,
			"type":             coll.typ,
			"status":           3,
			"isSystem":         coll.isSystem,
		})
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "result": result})
}

func (s *Server) getCollection(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, coll.info())
}

func (s *Server) dropCollection(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	if coll.isSystem && c.Query("isSystem") != "true" {
		fail(c, http.StatusForbidden, errForbidden)
		return
	}
	delete(currentDB(c).collections, coll.name)
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "id": coll.id})
}

func (s *Server) truncateCollection(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	coll.docs = map[string]map[string]any{}
	c.JSON(http.StatusOK, coll.info())
}

func (s *Server) countCollection(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("name"))
	if !ok {
		return
	}
	info := coll.info()
	info["count"] = len(coll.docs)
	c.JSON(http.StatusOK, info)
}
