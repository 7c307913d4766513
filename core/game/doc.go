// Package game holds the extraction-domain configuration: table document
// locations, catalog output locations, and the platform/token rendering
// toggles that feed the localization resolver.
package game
