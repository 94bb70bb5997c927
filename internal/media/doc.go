// Package media names the generated audio and image files of a word and
// uploads them into the flashcard application's media library.
package media
