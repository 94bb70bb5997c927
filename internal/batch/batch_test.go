package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "words only",
			fileContent: `Haus
gehen
schön`,
			want: []Entry{
				{Word: "Haus"},
				{Word: "gehen"},
				{Word: "schön"},
			},
		},
		{
			name: "mixed format",
			fileContent: `Haus | A1
gehen
Verantwortung|C1`,
			want: []Entry{
				{Word: "Haus", Level: "A1"},
				{Word: "gehen"},
				{Word: "Verantwortung", Level: "C1"},
			},
		},
		{
			name: "comments and blank lines",
			fileContent: `
# nouns
Haus

  # verbs
  gehen  
`,
			want: []Entry{
				{Word: "Haus"},
				{Word: "gehen"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "Haus\r\ngehen | B2\r\nTisch",
			want: []Entry{
				{Word: "Haus"},
				{Word: "gehen", Level: "B2"},
				{Word: "Tisch"},
			},
		},
		{
			name:        "multi word entry",
			fileContent: "sich freuen | B1",
			want:        []Entry{{Word: "sich freuen", Level: "B1"}},
		},
		{
			name:        "level without word",
			fileContent: "Haus\n| A1",
			wantErr:     true,
		},
		{
			name:        "empty level",
			fileContent: "Haus |",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "words.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadFile_FileNotFound(t *testing.T) {
	_, err := ReadFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestParse_ReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("Haus\n# comment\n | B1\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Parse() error = %v, want error on line 3", err)
	}
}
