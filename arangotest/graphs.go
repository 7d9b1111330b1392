package arangotest

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

type edgeDefinition struct {
	Collection string   `json:"collection"`
	From       []string `json:"from"`
	To         []string `json:"to"`
}

type createGraphBody struct {
	Name              string           `json:"name"`
	EdgeDefinitions   []edgeDefinition `json:"edgeDefinitions"`
	OrphanCollections []string         `json:"orphanCollections"`
	IsSmart           bool             `json:"isSmart"`
}

func (s *Server) ensureCollection(d *database, name string, typ int) {
	if _, ok := d.collections[name]; !ok {
		s.newCollection(d, name, typ)
	}
}

func (s *Server) createGraph(c *gin.Context) {
	var body createGraphBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	d := currentDB(c)
	if _, exists := d.graphs[body.Name]; exists {
		fail(c, http.StatusConflict, errGraphDuplicate)
		return
	}
	defs := make([]any, 0, len(body.EdgeDefinitions))
	for _, def := range body.EdgeDefinitions {
		s.ensureCollection(d, def.Collection, typeEdge)
		for _, v := range append(append([]string{}, def.From...), def.To...) {
			s.ensureCollection(d, v, typeDocument)
		}
		defs = append(defs, edgeDefinitionJSON(def))
	}
	orphans := make([]any, 0, len(body.OrphanCollections))
	for _, name := range body.OrphanCollections {
		s.ensureCollection(d, name, typeDocument)
		orphans = append(orphans, name)
	}

	g := map[string]any{
		"_key":              body.Name,
		"_id":               "_graphs/" + body.Name,
		"_rev":              newRev(),
		"name":              body.Name,
		"edgeDefinitions":   defs,
		"orphanCollections": orphans,
		"numberOfShards":    1,
		"replicationFactor": 1,
		"isSmart":           body.IsSmart,
	}
	d.graphs[body.Name] = g
	c.JSON(http.StatusAccepted, gin.H{"error": false, "code": http.StatusAccepted, "graph": g})
}

func edgeDefinitionJSON(def edgeDefinition) map[string]any {
	from, to := def.From, def.To
	if from == nil {
		from = []string{}
	}
	if to == nil {
		to = []string{}
	}
	return map[string]any{"collection": def.Collection, "from": from, "to": to}
}

func (s *Server) listGraphs(c *gin.Context) {
	d := currentDB(c)
	names := make([]string, 0, len(d.graphs))
	for name := range d.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	graphs := make([]any, len(names))
	for i, name := range names {
		graphs[i] = d.graphs[name]
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "graphs": graphs})
}

func (s *Server) lookupGraph(c *gin.Context) (map[string]any, bool) {
	g, ok := currentDB(c).graphs[c.Param("graph")]
	if !ok {
		failf(c, http.StatusNotFound, errGraphNotFound, "graph '%s' not found", c.Param("graph"))
		return nil, false
	}
	return g, true
}

func (s *Server) getGraph(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "graph": g})
}

func (s *Server) dropGraph(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	d := currentDB(c)
	delete(d.graphs, c.Param("graph"))
	if c.Query("dropCollections") == "true" {
		for _, name := range graphCollections(g, true, true) {
			delete(d.collections, name)
		}
	}
	c.JSON(http.StatusAccepted, gin.H{"error": false, "code": http.StatusAccepted, "removed": true})
}

// graphCollections lists the vertex and/or edge collections of g.
func graphCollections(g map[string]any, vertices, edges bool) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, raw := range g["edgeDefinitions"].([]any) {
		def := raw.(map[string]any)
		if edges {
			add(def["collection"].(string))
		}
		if vertices {
			for _, v := range def["from"].([]string) {
				add(v)
			}
			for _, v := range def["to"].([]string) {
				add(v)
			}
		}
	}
	if vertices {
		for _, v := range g["orphanCollections"].([]any) {
			add(v.(string))
		}
	}
	sort.Strings(out)
	return out
}

func (s *Server) vertexCollections(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "collections": graphCollections(g, true, false)})
}

func (s *Server) edgeCollections(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": false, "code": http.StatusOK, "collections": graphCollections(g, false, true)})
}

func (s *Server) addVertexCollection(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	var body struct {
		Collection string `json:"collection"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Collection == "" {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	s.ensureCollection(currentDB(c), body.Collection, typeDocument)
	g["orphanCollections"] = append(g["orphanCollections"].([]any), body.Collection)
	g["_rev"] = newRev()
	c.JSON(http.StatusAccepted, gin.H{"error": false, "code": http.StatusAccepted, "graph": g})
}

func (s *Server) addEdgeDefinition(c *gin.Context) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	var def edgeDefinition
	if err := c.ShouldBindJSON(&def); err != nil || def.Collection == "" {
		fail(c, http.StatusBadRequest, errCorruptedJSON)
		return
	}
	d := currentDB(c)
	s.ensureCollection(d, def.Collection, typeEdge)
	for _, v := range append(append([]string{}, def.From...), def.To...) {
		s.ensureCollection(d, v, typeDocument)
	}
	g["edgeDefinitions"] = append(g["edgeDefinitions"].([]any), edgeDefinitionJSON(def))
	g["_rev"] = newRev()
	c.JSON(http.StatusAccepted, gin.H{"error": false, "code": http.StatusAccepted, "graph": g})
}

func (s *Server) createVertex(c *gin.Context) { s.createGraphDocument(c, "vertex", false) }

func (s *Server) createEdge(c *gin.Context) { s.createGraphDocument(c, "edge", true) }

func (s *Server) createGraphDocument(c *gin.Context, field string, edge bool) {
	g, ok := s.lookupGraph(c)
	if !ok {
		return
	}
	name := c.Param("collection")
	member := false
	for _, coll := range graphCollections(g, !edge, edge) {
		if coll == name {
			member = true
		}
	}
	if !member {
		failf(c, http.StatusNotFound, errCollectionNotFound, "collection '%s' is not part of graph", name)
		return
	}
	coll, ok := s.lookup(c, name)
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
	stored, _, num := coll.insert(doc, "")
	if num != 0 {
		fail(c, statusFor(num), num)
		return
	}
	res := gin.H{"error": false, "code": http.StatusAccepted, field: gin.H{
		"_id": stored["_id"], "_key": stored["_key"], "_rev": stored["_rev"],
	}}
	if c.Query("returnNew") == "true" {
		res["new"] = stored
	}
	c.JSON(http.StatusAccepted, res)
}
