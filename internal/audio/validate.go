package audio

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxInputLength is the longest input the speech endpoint accepts.
const MaxInputLength = 4096

// ValidateSpeechText checks that text is something worth speaking
func ValidateSpeechText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if utf8.RuneCountInString(text) > MaxInputLength {
		return fmt.Errorf("text exceeds %d characters", MaxInputLength)
	}

	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}
	return fmt.Errorf("text must contain letters")
}
