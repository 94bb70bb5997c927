package anki

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// BuildFields maps a profile and its uploaded media onto the note type.
// Every field in FieldNames is present; missing data is "".
func BuildFields(p *profile.WordProfile, files media.Files) map[string]string {
	fields := make(map[string]string, len(FieldNames))
	for _, name := range FieldNames {
		fields[name] = ""
	}

	fields[FieldWord] = p.GermanWord
	fields[FieldClass] = string(p.Classification)
	fields[FieldTranslation] = p.Translation

	switch p.Classification.Kind() {
	case profile.KindNoun:
		if n := p.Noun(); n != nil {
			fields[FieldArticle] = n.Article
			fields[FieldPlural] = n.PluralForm
		}
	case profile.KindVerb:
		if v := p.Verb(); v != nil {
			fields[FieldPresent] = strings.Join(v.Present, ", ")
			fields[FieldPast] = strings.Join(v.Past, ", ")
			fields[FieldPerfect] = strings.Join(v.Perfect, ", ")
		}
	case profile.KindOther:
	}

	for i := 1; i <= profile.MaxExamples; i++ {
		german, translation, audio := exampleFields(i)
		if i <= len(p.Examples) {
			fields[german] = p.Examples[i-1].German
			fields[translation] = p.Examples[i-1].Translation
		}
		if i <= len(files.AudioExamples) {
			fields[audio] = soundTag(files.AudioExamples[i-1])
		}
	}

	fields[FieldAudioWord] = soundTag(files.AudioWord)
	fields[FieldPicture] = imageTag(files.Image)
	return fields
}

func soundTag(file string) string {
	if file == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", file)
}

func imageTag(file string) string {
	if file == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, file)
}
