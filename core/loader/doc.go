// Package loader wires feature packages into the HTTP application through a
// small registration manager.
package loader
