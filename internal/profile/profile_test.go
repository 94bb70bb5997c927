package profile

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/wortkarte/internal/testutil"
)

func hausProfile() *WordProfile {
	return &WordProfile{
		GermanWord:     "Haus",
		Translation:    "house",
		Classification: Noun,
		Grammar:        &NounInfo{Article: "das", PluralForm: "die Häuser"},
		Examples: []Example{
			{German: "Das Haus ist groß.", Translation: "The house is big."},
		},
	}
}

func gehenProfile() *WordProfile {
	return &WordProfile{
		GermanWord:     "gehen",
		Translation:    "to go",
		Classification: Verb,
		Grammar: &VerbInfo{
			Infinitive: "gehen",
			Present:    []string{"ich gehe", "du gehst"},
			Past:       []string{"ich ging", "du gingst"},
			Perfect:    []string{"ich bin gegangen"},
		},
		Examples: []Example{
			{German: "Ich gehe nach Hause.", Translation: "I am going home."},
			{German: "Wir gingen spazieren.", Translation: "We went for a walk."},
			{German: "Sie ist gegangen.", Translation: "She has gone."},
		},
	}
}

func TestClassificationKind(t *testing.T) {
	tests := []struct {
		in   Classification
		want Kind
	}{
		{"(n)", KindNoun},
		{" (n) ", KindNoun},
		{"(v)", KindVerb},
		{"(adj)", KindOther},
		{"", KindOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Kind(), "classification %q", tt.in)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	for _, p := range []*WordProfile{hausProfile(), gehenProfile(), {
		GermanWord:     "schnell",
		Translation:    "fast",
		Classification: "(adj)",
		Examples:       []Example{{German: "Er läuft schnell.", Translation: "He runs fast."}},
	}} {
		t.Run(p.GermanWord, func(t *testing.T) {
			data, err := Encode(p)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}
}

func TestEncode_Format(t *testing.T) {
	p := hausProfile()
	p.Examples[0].German = `Das "Haus" <groß> & schön.`

	data, err := Encode(p)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "\n    \"german_word\": \"Haus\"")
	assert.Contains(t, out, "die Häuser")
	assert.Contains(t, out, "<groß> & schön")
	assert.NotContains(t, out, `"verb"`)
}

func TestDecode_IgnoresOtherGrammarBlock(t *testing.T) {
	p, err := Decode([]byte(testutil.HausProfileJSON))
	require.NoError(t, err)

	require.NotNil(t, p.Noun())
	assert.Equal(t, "das", p.Noun().Article)
	assert.Equal(t, "die Häuser", p.Noun().PluralForm)
	assert.Nil(t, p.Verb())
}

func TestDecode_NounWithoutNounInfo(t *testing.T) {
	p, err := Decode([]byte(`{"german_word":"Tisch","source_language_translation":"table","classification":"(n)","examples":[]}`))
	require.NoError(t, err)

	assert.Nil(t, p.Grammar)
	assert.Nil(t, p.Noun())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		target  error
	}{
		{"not json", `{"german_word":`, nil},
		{"empty word", `{"german_word":"  ","classification":"(n)","examples":[]}`, ErrEmptyWord},
		{"too many examples", `{"german_word":"Haus","classification":"(n)","examples":[{},{},{},{}]}`, ErrTooManyExamples},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			require.Error(t, err)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.payload, de.Payload)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestValidate_GrammarMismatch(t *testing.T) {
	p := hausProfile()
	p.Classification = Verb

	assert.ErrorIs(t, p.Validate(), ErrGrammarMismatch)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(dir, hausProfile())
	require.NoError(t, err)
	assert.Equal(t, Path(dir, "Haus"), path)
	assert.True(t, strings.HasSuffix(path, "Haus_profile.json"))

	loaded, err := Load(dir, "Haus")
	require.NoError(t, err)
	assert.Equal(t, hausProfile(), loaded)

	// Regeneration overwrites the file.
	updated := hausProfile()
	updated.Translation = "building"
	_, err = Save(dir, updated)
	require.NoError(t, err)

	loaded, err = Load(dir, "Haus")
	require.NoError(t, err)
	assert.Equal(t, "building", loaded.Translation)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []*WordProfile{hausProfile(), gehenProfile()} {
		_, err := Save(dir, p)
		require.NoError(t, err)
	}
	testutil.CreateTestFile(t, dir+"/Haus_word.mp3", []byte("mp3"))

	profiles, err := LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "gehen", profiles[0].GermanWord)
	assert.Equal(t, "Haus", profiles[1].GermanWord)
}

func TestLoadSchema(t *testing.T) {
	schema, err := LoadSchema("")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(schema, &parsed))
	assert.Equal(t, "object", parsed["type"])

	path := t.TempDir() + "/schema.json"
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"object","properties":{}}`), 0o644))
	custom, err := LoadSchema(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"object","properties":{}}`, string(custom))

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	_, err = LoadSchema(path)
	assert.Error(t, err)
}
