package arangotest

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

func (s *Server) createDatabase(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	if _, exists := s.dbs[body.Name]; exists {
		fail(c, http.StatusConflict, errDuplicateName)
		return
	}
	s.dbs[body.Name] = s.newDatabase(body.Name)
	c.JSON(http.StatusCreated, gin.H{"error": false, "code": http.StatusCreated, "result": true})
}

func (s *Server) listDatabases(c *gin.Context) {
	names := make([]string, 0, len(s.dbs))
	for name := range s.dbs {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "result": names})
}

func (s *Server) currentDatabase(c *gin.Context) {
	d := currentDB(c)
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "result": gin.H{
		"id":       d.id,
		"name":     d.name,
		"path":     "/databases/" + d.id,
		"isSystem": d.name == systemDatabase,
	}})
}

func (s *Server) dropDatabase(c *gin.Context) {
	if currentDB(c).name != systemDatabase {
		fail(c, http.StatusForbidden, errForbidden)
		return
	}
	name := c.Param("name")
	if name == systemDatabase {
		fail(c, http.StatusForbidden, errForbidden)
		return
	}
	if _, ok := s.dbs[name]; !ok {
		fail(c, http.StatusNotFound, errDatabaseNotFound)
		return
	}
	delete(s.dbs, name)
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "result": true})
}
