package mxml

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"
)

type xmlProperty struct {
	Name     string        `xml:"name,attr"`
	Value    string        `xml:"value,attr"`
	ID       string        `xml:"_id,attr"`
	Children []xmlProperty `xml:"Property"`
}

type xmlDocument struct {
	Properties []xmlProperty `xml:"Property"`
}

func buildNode(p xmlProperty) *Node {
	node := &Node{Name: p.Name, Value: p.Value, ID: p.ID}
	for _, child := range p.Children {
		node.Children = append(node.Children, buildNode(child))
	}
	return node
}

// Parse decodes a property document from raw bytes. The returned root is a
// synthetic node holding the document's top-level properties.
func Parse(data []byte) (*Node, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed property document: %w", err)
	}
	root := &Node{}
	for _, p := range doc.Properties {
		root.Children = append(root.Children, buildNode(p))
	}
	return root, nil
}

type cacheEntry struct {
	modTime time.Time
	root    *Node
}

// Cache is a per-run document cache keyed by path. A cached tree is reused
// only while the file's modification time is unchanged; a stale hit is
// re-parsed. Single-threaded use only.
type Cache struct {
	entries map[string]cacheEntry
}

// NewCache returns an empty document cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load parses the document at path, consulting the cache first.
func (c *Cache) Load(path string) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if entry, ok := c.entries[path]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.root, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.entries[path] = cacheEntry{modTime: info.ModTime(), root: root}
	return root, nil
}

// Clear drops every cached document. Callers invoke this after regenerating
// inputs (e.g. a localization rebuild) so later loads see fresh trees.
func (c *Cache) Clear() {
	c.entries = make(map[string]cacheEntry)
}
