// Package config loads the application configuration from environment
// variables and an optional .env file.
//
// The root Config is composed of per-package partial configs; defaults come
// from 'default' struct tags and are bound recursively so every key is
// visible to viper's AutomaticEnv (GAME_OUTPUT_DIR, LOG_LEVEL, SERVER_PORT,
// and so on).
package config
