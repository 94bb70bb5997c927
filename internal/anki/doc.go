// Package anki talks to the Anki desktop app through the AnkiConnect
// add-on. It maintains the note type, replaces the note of a word and
// exports the files directory as an .apkg package.
package anki
