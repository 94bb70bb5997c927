// Package models lists the OpenAI models available to the configured API
// key, grouped by what the app uses them for.
package models
