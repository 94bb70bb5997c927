// Package processor runs the flashcard pipeline for single words, batch
// files and package exports. It generates the word profile, the optional
// image and audio, and replaces the note in Anki, printing progress as it
// goes.
package processor
