// Package profile generates German word profiles with a forced function
// call to a text model (OpenAI or Gemini) and stores them as JSON files.
package profile
