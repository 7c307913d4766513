// Package server holds configuration for the catalog HTTP server.
package server
