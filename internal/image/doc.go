// Package image generates flashcard illustrations with DALL-E and scales
// them to the card size.
package image
