// Package serve exposes the generated catalogs over HTTP for downstream
// consumers.
package serve
