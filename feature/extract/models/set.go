package models

// Catalog is one named output file's worth of items, in insertion order.
type Catalog struct {
	Name  string
	Items []Item
}

// Set holds every catalog of an extraction run in a fixed order. The order
// fixes both the output file sequence and which catalog wins a cross-file
// duplicate.
type Set struct {
	order    []string
	catalogs map[string]*Catalog
}

// NewSet creates an empty set with the given catalog order.
func NewSet(names ...string) *Set {
	s := &Set{catalogs: make(map[string]*Catalog, len(names))}
	for _, name := range names {
		s.order = append(s.order, name)
		s.catalogs[name] = &Catalog{Name: name}
	}
	return s
}

// Names returns the catalog names in set order.
func (s *Set) Names() []string {
	return s.order
}

// Catalog returns the named catalog, creating and appending it when absent.
func (s *Set) Catalog(name string) *Catalog {
	c, ok := s.catalogs[name]
	if !ok {
		c = &Catalog{Name: name}
		s.order = append(s.order, name)
		s.catalogs[name] = c
	}
	return c
}

// Has reports whether the named catalog exists in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.catalogs[name]
	return ok
}

// Append adds items to the named catalog.
func (s *Set) Append(name string, items ...Item) {
	c := s.Catalog(name)
	c.Items = append(c.Items, items...)
}

// Total returns the item count across all catalogs.
func (s *Set) Total() int {
	n := 0
	for _, name := range s.order {
		n += len(s.catalogs[name].Items)
	}
	return n
}
