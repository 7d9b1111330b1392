package arangotest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) lookup(c *gin.Context, name string) (*collection, bool) {
	coll, ok := currentDB(c).collections[name]
	if !ok {
		failf(c, http.StatusNotFound, errCollectionNotFound, "collection or view not found: %s", name)
		return nil, false
	}
	return coll, true
}

func bindBody(c *gin.Context) (any, bool) {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return nil, false
	}
	return body, true
}

func statusFor(num int) int {
	switch num {
	case errDocumentNotFound, errCollectionNotFound, errDatabaseNotFound,
		errCursorNotFound, errTransactionNotFound, errGraphNotFound:
		return http.StatusNotFound
	case errConflict:
		return http.StatusPreconditionFailed
	case errDuplicateName, errUniqueConstraint, errGraphDuplicate:
		return http.StatusConflict
	case errForbidden:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func itemError(num int) gin.H {
	return gin.H{"error": true, "errorNum": num, "errorMessage": messages[num]}
}

func writeResult(c *gin.Context, stored, old map[string]any) gin.H {
	res := gin.H{"_id": stored["_id"], "_key": stored["_key"], "_rev": stored["_rev"]}
	if old != nil {
		res["_oldRev"] = old["_rev"]
	}
	if c.Query("returnNew") == "true" {
		res["new"] = stored
	}
	if c.Query("returnOld") == "true" && old != nil {
		res["old"] = old
	}
	return res
}

// respond writes body, or an empty value of the same shape when the client
// asked for a silent write.
func respond(c *gin.Context, status int, body any) {
	if c.Query("silent") == "true" {
		if _, ok := body.([]any); ok {
			c.JSON(status, []any{})
			return
		}
		c.JSON(status, gin.H{})
		return
	}
	c.JSON(status, body)
}

func (s *Server) createDocuments(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	body, ok := bindBody(c)
	if !ok {
		return
	}
	overwrite := c.Query("overwriteMode")
	if overwrite == "" && c.Query("overwrite") == "true" {
		overwrite = "replace"
	}

	switch v := body.(type) {
	case map[string]any:
		stored, old, num := coll.insert(v, overwrite)
		if num != 0 {
			fail(c, statusFor(num), num)
			return
		}
		respond(c, http.StatusAccepted, writeResult(c, stored, old))
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			doc, ok := item.(map[string]any)
			if !ok {
				items[i] = itemError(errDocumentTypeInvalid)
				continue
			}
			stored, old, num := coll.insert(doc, overwrite)
			if num != 0 {
				items[i] = itemError(num)
				continue
			}
			items[i] = writeResult(c, stored, old)
		}
		respond(c, http.StatusAccepted, items)
	default:
		fail(c, http.StatusBadRequest, errDocumentTypeInvalid)
	}
}

func (s *Server) getDocument(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	doc, ok := coll.docs[c.Param("key")]
	if !ok {
		fail(c, http.StatusNotFound, errDocumentNotFound)
		return
	}
	if rev := c.GetHeader("If-None-Match"); rev != "" && rev == doc["_rev"] {
		c.Status(http.StatusNotModified)
		return
	}
	if rev := c.GetHeader("If-Match"); rev != "" && rev != doc["_rev"] {
		fail(c, http.StatusPreconditionFailed, errConflict)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (c *collection) modify(key string, doc map[string]any, patch, keepNull bool, ifMatch string) (stored, old map[string]any, errNum int) {
	existing, ok := c.docs[key]
	if !ok {
		return nil, nil, errDocumentNotFound
	}
	if ifMatch != "" && existing["_rev"] != ifMatch {
		return nil, nil, errConflict
	}
	next := clone(doc)
	if patch {
		next = merge(existing, doc, keepNull)
	}
	return c.write(key, next), clone(existing), 0
}

func (s *Server) replaceDocument(c *gin.Context) { s.modifyDocument(c, false) }

func (s *Server) updateDocument(c *gin.Context) { s.modifyDocument(c, true) }

func (s *Server) modifyDocument(c *gin.Context, patch bool) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	body, ok := bindBody(c)
	if !ok {
		return
	}
	doc, ok := body.(map[string]any)
	if !ok {
		fail(c, http.StatusBadRequest, errDocumentTypeInvalid)
		return
	}
	stored, old, num := coll.modify(c.Param("key"), doc, patch, c.Query("keepNull") != "false", c.GetHeader("If-Match"))
	if num != 0 {
		fail(c, statusFor(num), num)
		return
	}
	respond(c, http.StatusAccepted, writeResult(c, stored, old))
}

func (s *Server) replaceDocuments(c *gin.Context) { s.modifyDocuments(c, false) }

func (s *Server) updateDocuments(c *gin.Context) { s.modifyDocuments(c, true) }

func (s *Server) modifyDocuments(c *gin.Context, patch bool) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	body, ok := bindBody(c)
	if !ok {
		return
	}
	list, ok := body.([]any)
	if !ok {
		fail(c, http.StatusBadRequest, errDocumentTypeInvalid)
		return
	}
	keepNull := c.Query("keepNull") != "false"
	items := make([]any, len(list))
	for i, item := range list {
		doc, ok := item.(map[string]any)
		if !ok {
			items[i] = itemError(errDocumentTypeInvalid)
			continue
		}
		key, _ := doc["_key"].(string)
		if key == "" {
			items[i] = itemError(errDocumentKeyBad)
			continue
		}
		stored, old, num := coll.modify(key, doc, patch, keepNull, "")
		if num != 0 {
			items[i] = itemError(num)
			continue
		}
		items[i] = writeResult(c, stored, old)
	}
	respond(c, http.StatusAccepted, items)
}

func (c *collection) remove(key, ifMatch string) (map[string]any, int) {
	existing, ok := c.docs[key]
	if !ok {
		return nil, errDocumentNotFound
	}
	if ifMatch != "" && existing["_rev"] != ifMatch {
		return nil, errConflict
	}
	delete(c.docs, key)
	return existing, 0
}

func deleteResult(c *gin.Context, old map[string]any) gin.H {
	res := gin.H{"_id": old["_id"], "_key": old["_key"], "_rev": old["_rev"]}
	if c.Query("returnOld") == "true" {
		res["old"] = old
	}
	return res
}

func (s *Server) deleteDocument(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	old, num := coll.remove(c.Param("key"), c.GetHeader("If-Match"))
	if num != 0 {
		fail(c, statusFor(num), num)
		return
	}
	respond(c, http.StatusAccepted, deleteResult(c, old))
}

func (s *Server) deleteDocuments(c *gin.Context) {
	coll, ok := s.lookup(c, c.Param("collection"))
	if !ok {
		return
	}
	body, ok := bindBody(c)
	if !ok {
		return
	}
	list, ok := body.([]any)
	if !ok {
		fail(c, http.StatusBadRequest, errDocumentTypeInvalid)
		return
	}
	items := make([]any, len(list))
	for i, item := range list {
		key := selectorKey(item)
		if key == "" {
			items[i] = itemError(errDocumentKeyBad)
			continue
		}
		old, num := coll.remove(key, "")
		if num != 0 {
			items[i] = itemError(num)
			continue
		}
		items[i] = deleteResult(c, old)
	}
	respond(c, http.StatusAccepted, items)
}

// selectorKey extracts the key from a key, an id or an object with _key.
func selectorKey(v any) string {
	switch s := v.(type) {
	case string:
		if _, key, ok := strings.Cut(s, "/"); ok {
			return key
		}
		return s
	case map[string]any:
		key, _ := s["_key"].(string)
		return key
	}
	return ""
}
