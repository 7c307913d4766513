// Package publish uploads a finished catalog directory to object storage.
package publish
