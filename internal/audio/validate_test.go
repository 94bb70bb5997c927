package audio

import (
	"strings"
	"testing"
)

func TestValidateSpeechText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid German word",
			text:    "Haus",
			wantErr: false,
		},
		{
			name:    "valid German sentence",
			text:    "Die Straße ist sehr schön.",
			wantErr: false,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   \t\n",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "numbers only",
			text:    "12345",
			wantErr: true,
			errMsg:  "text must contain letters",
		},
		{
			name:    "too long",
			text:    strings.Repeat("a", MaxInputLength+1),
			wantErr: true,
			errMsg:  "text exceeds 4096 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpeechText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpeechText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateSpeechText() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
