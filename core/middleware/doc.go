// Package middleware groups the HTTP middlewares used by the catalog
// server: ray-id request correlation and API-key auth.
package middleware
