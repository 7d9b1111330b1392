package arangotest

import (
	"regexp"
	"sort"
	"strconv"
)

type database struct {
	id           string
	name         string
	collections  map[string]*collection
	graphs       map[string]map[string]any
	cursors      map[string][]any
	batchSizes   map[string]int
	transactions map[string]string
}

func (s *Server) newDatabase(name string) *database {
	return &database{
		id:           s.nextID(),
		name:         name,
		collections:  map[string]*collection{},
		graphs:       map[string]map[string]any{},
		cursors:      map[string][]any{},
		batchSizes:   map[string]int{},
		transactions: map[string]string{},
	}
}

const (
	typeDocument = 2
	typeEdge     = 3
)

type collection struct {
	id       string
	name     string
	typ      int
	isSystem bool
	docs     map[string]map[string]any
	keySeq   int
}

func (s *Server) newCollection(d *database, name string, typ int) *collection {
	c := &collection{
		id:       s.nextID(),
		name:     name,
		typ:      typ,
		isSystem: len(name) > 0 && name[0] == '_',
		docs:     map[string]map[string]any{},
	}
	d.collections[name] = c
	return c
}

func (c *collection) info() map[string]any {
	return map[string]any{
		"error":            false,
		"code":             200,
		"id":               c.id,
		"name":             c.name,
		"globallyUniqueId": "h" + c.id,
		"type":             c.typ,
		"status":           3,
		"statusString":     "loaded",
		"isSystem":         c.isSystem,
		"waitForSync":      false,
		"keyOptions":       map[string]any{"type": "traditional", "allowUserKeys": true, "lastValue": c.keySeq},
	}
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_\-:.@()+,=;$!*'%]{1,254}$`)

// insert stores doc and returns the stored copy. overwrite selects the
// behaviour for an existing key: "", "conflict", "replace", "update" or
// "ignore".
func (c *collection) insert(doc map[string]any, overwrite string) (stored, old map[string]any, errNum int) {
	doc = clone(doc)
	key, _ := doc["_key"].(string)
	if key == "" {
		c.keySeq++
		key = strconv.Itoa(c.keySeq)
	} else if !keyPattern.MatchString(key) {
		return nil, nil, errDocumentKeyBad
	}
	if c.typ == typeEdge {
		if _, ok := doc["_from"].(string); !ok {
			return nil, nil, errDocumentTypeInvalid
		}
		if _, ok := doc["_to"].(string); !ok {
			return nil, nil, errDocumentTypeInvalid
		}
	}

	if existing, ok := c.docs[key]; ok {
		switch overwrite {
		case "replace":
			return c.write(key, doc), existing, 0
		case "update":
			return c.write(key, merge(existing, doc, true)), existing, 0
		case "ignore":
			return clone(existing), nil, 0
		default:
			return nil, nil, errUniqueConstraint
		}
	}
	return c.write(key, doc), nil, 0
}

func (c *collection) write(key string, doc map[string]any) map[string]any {
	doc["_key"] = key
	doc["_id"] = c.name + "/" + key
	doc["_rev"] = newRev()
	c.docs[key] = doc
	return clone(doc)
}

func merge(base, patch map[string]any, keepNull bool) map[string]any {
	out := clone(base)
	for k, v := range patch {
		if k == "_key" || k == "_id" || k == "_rev" {
			continue
		}
		if v == nil && !keepNull {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// sortedDocs returns the documents of c ordered by key.
func (c *collection) sortedDocs() []any {
	keys := make([]string, 0, len(c.docs))
	for k := range c.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = clone(c.docs[k])
	}
	return out
}
