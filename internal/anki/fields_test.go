package anki

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

func hausProfile() *profile.WordProfile {
	return &profile.WordProfile{
		GermanWord:     "Haus",
		Translation:    "house",
		Classification: profile.Noun,
		Grammar:        &profile.NounInfo{Article: "das", PluralForm: "die Häuser"},
		Examples: []profile.Example{
			{German: "Das Haus ist groß.", Translation: "The house is big."},
		},
	}
}

func TestBuildFields_Noun(t *testing.T) {
	fields := BuildFields(hausProfile(), media.Files{
		AudioWord:     "Haus_word.mp3",
		AudioExamples: []string{"Haus_example_1.mp3"},
		Image:         "Haus_image.jpg",
	})

	assert.Len(t, fields, len(FieldNames))
	assert.Equal(t, "Haus", fields["Wort_DE"])
	assert.Equal(t, "(n)", fields["Wortarten"])
	assert.Equal(t, "house", fields["Wort_SL"])
	assert.Equal(t, "das", fields["Artikel"])
	assert.Equal(t, "die Häuser", fields["Plural"])
	assert.Empty(t, fields["Praesens"])
	assert.Equal(t, "Das Haus ist groß.", fields["Satz1_DE"])
	assert.Equal(t, "The house is big.", fields["Satz1_SL"])
	assert.Equal(t, "[sound:Haus_word.mp3]", fields["Audio_Wort"])
	assert.Equal(t, "[sound:Haus_example_1.mp3]", fields["Audio_S1"])
	assert.Equal(t, `<img src="Haus_image.jpg">`, fields["Picture"])

	for _, name := range []string{"Satz2_DE", "Satz2_SL", "Satz3_DE", "Satz3_SL", "Audio_S2", "Audio_S3"} {
		assert.Empty(t, fields[name], name)
	}
}

func TestBuildFields_Verb(t *testing.T) {
	p := &profile.WordProfile{
		GermanWord:     "gehen",
		Classification: profile.Verb,
		Grammar: &profile.VerbInfo{
			Infinitive: "gehen",
			Present:    []string{"ich gehe", "du gehst"},
			Past:       []string{"ich ging"},
			Perfect:    []string{"ich bin gegangen", "du bist gegangen"},
		},
	}

	fields := BuildFields(p, media.Files{})
	assert.Equal(t, "ich gehe, du gehst", fields["Praesens"])
	assert.Equal(t, "ich ging", fields["Praeteritum"])
	assert.Equal(t, "ich bin gegangen, du bist gegangen", fields["Perfekt"])
	assert.Empty(t, fields["Artikel"])
	assert.Empty(t, fields["Plural"])
}

func TestBuildFields_MissingData(t *testing.T) {
	tests := []struct {
		name string
		p    *profile.WordProfile
	}{
		{"noun without noun info", &profile.WordProfile{GermanWord: "Haus", Classification: profile.Noun}},
		{"verb without verb info", &profile.WordProfile{GermanWord: "gehen", Classification: profile.Verb}},
		{"adjective", &profile.WordProfile{GermanWord: "schön", Classification: "(adj)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := BuildFields(tt.p, media.Files{})

			assert.Len(t, fields, len(FieldNames))
			for _, name := range FieldNames {
				if name == FieldWord || name == FieldClass {
					continue
				}
				assert.Empty(t, fields[name], name)
			}
		})
	}
}

func TestBuildFields_PartialMedia(t *testing.T) {
	p := hausProfile()
	p.Examples = append(p.Examples, profile.Example{German: "Wir bauen ein Haus."})

	fields := BuildFields(p, media.Files{AudioExamples: []string{"", "Haus_example_2.mp3"}})
	assert.Empty(t, fields["Audio_Wort"])
	assert.Empty(t, fields["Audio_S1"])
	assert.Equal(t, "[sound:Haus_example_2.mp3]", fields["Audio_S2"])
	assert.Empty(t, fields["Picture"])
}

func TestFieldNames(t *testing.T) {
	assert.Equal(t, []string{
		"Wort_DE", "Wortarten", "Wort_SL", "Artikel", "Plural", "Praesens", "Praeteritum",
		"Perfekt", "Satz1_DE", "Satz1_SL", "Satz2_DE", "Satz2_SL", "Satz3_DE", "Satz3_SL",
		"Audio_Wort", "Audio_S1", "Audio_S2", "Audio_S3", "Picture",
	}, FieldNames)
}
