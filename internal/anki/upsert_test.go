package anki

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/testutil"
)

func newTestDeck(t *testing.T, fake *testutil.FakeAnki, dir string, log *zap.Logger) *Deck {
	t.Helper()
	cfg := testConfig(fake.URL)
	client := NewClient(cfg, nil, log)
	return NewDeck(client, media.NewStore(dir, client, log), cfg, log)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		deck, word, want string
	}{
		{"German Vocabulary", "Haus", `"deck:German Vocabulary" "Wort_DE:Haus"`},
		{"A*B", `sag "ja"`, `"deck:A\*B" "Wort_DE:sag \"ja\""`},
		{"d", `a_b\c`, `"deck:d" "Wort_DE:a\_b\\c"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Query(tt.deck, tt.word))
	}
}

func TestEnsureModel(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	deck := newTestDeck(t, fake, t.TempDir(), zap.NewNop())

	require.NoError(t, deck.EnsureModel(context.Background()))
	assert.True(t, fake.HasModel("Wortkarte"))

	// The second call hits "already exists".
	require.NoError(t, deck.EnsureModel(context.Background()))
	assert.Equal(t, 2, fake.CallCount("createModel"))
}

func TestEnsureModel_OtherError(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.SetFail("createModel", "invalid card template")
	deck := newTestDeck(t, fake, t.TempDir(), zap.NewNop())

	err := deck.EnsureModel(context.Background())
	require.Error(t, err)
	assert.False(t, IsModelExists(err))
}

func TestUpsert_TwiceLeavesOneNote(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	dir := t.TempDir()
	testutil.CreateMediaFiles(t, dir, "Haus", 1)
	deck := newTestDeck(t, fake, dir, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, deck.EnsureModel(ctx))
	require.NoError(t, deck.Upsert(ctx, hausProfile()))
	require.NoError(t, deck.Upsert(ctx, hausProfile()))

	notes := fake.NotesFor("German Vocabulary", "Haus")
	require.Len(t, notes, 1)

	n := notes[0]
	assert.Equal(t, "Wortkarte", n.Model)
	assert.Equal(t, []string{"german-learning", "auto-added"}, n.Tags)
	assert.Len(t, n.Fields, len(FieldNames))
	assert.Equal(t, "das", n.Fields["Artikel"])
	assert.Equal(t, "die Häuser", n.Fields["Plural"])
	assert.Equal(t, "[sound:Haus_word.mp3]", n.Fields["Audio_Wort"])
	assert.Equal(t, "[sound:Haus_example_1.mp3]", n.Fields["Audio_S1"])
	assert.Equal(t, `<img src="Haus_image.jpg">`, n.Fields["Picture"])
	assert.Empty(t, n.Fields["Satz2_DE"])

	_, ok := fake.Media("Haus_image.jpg")
	assert.True(t, ok)
	assert.Equal(t, 1, fake.CallCount("deleteNotes"))
}

func TestUpsert_MissingImage(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.AddModel("Wortkarte")
	deck := newTestDeck(t, fake, t.TempDir(), zap.NewNop())

	require.NoError(t, deck.Upsert(context.Background(), hausProfile()))

	notes := fake.NotesFor("German Vocabulary", "Haus")
	require.Len(t, notes, 1)
	assert.Empty(t, notes[0].Fields["Picture"])
	assert.Empty(t, notes[0].Fields["Audio_Wort"])
	assert.Equal(t, 0, fake.CallCount("storeMediaFile"))
}

func TestUpsert_DeleteFailureIsLogged(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.AddModel("Wortkarte")
	fake.AddNote(testutil.FakeNote{Deck: "Other Deck", Fields: map[string]string{"Wort_DE": "Haus"}})
	fake.AddNote(testutil.FakeNote{Deck: "German Vocabulary", Fields: map[string]string{"Wort_DE": "Haus"}})
	fake.SetFail("deleteNotes", "note is locked")

	core, logs := observer.New(zapcore.InfoLevel)
	deck := newTestDeck(t, fake, t.TempDir(), zap.New(core))

	// The stale note survives, so Anki rejects the new one as a duplicate.
	err := deck.Upsert(context.Background(), hausProfile())
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("Failed to delete note").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to add note").Len())
	assert.Len(t, fake.NotesFor("Other Deck", "Haus"), 1)
}

func TestUpsert_FindFailureProceeds(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	fake.AddModel("Wortkarte")
	fake.SetFail("findNotes", "collection is not available")

	core, logs := observer.New(zapcore.InfoLevel)
	deck := newTestDeck(t, fake, t.TempDir(), zap.New(core))

	require.NoError(t, deck.Upsert(context.Background(), hausProfile()))
	assert.Equal(t, 1, logs.FilterMessage("Failed to find existing notes").Len())
	assert.Len(t, fake.NotesFor("German Vocabulary", "Haus"), 1)
}

func TestUpsert_AddNoteFails(t *testing.T) {
	fake := testutil.NewFakeAnki(t)
	deck := newTestDeck(t, fake, t.TempDir(), zap.NewNop())

	// No note type yet.
	err := deck.Upsert(context.Background(), hausProfile())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "addNote", apiErr.Action)
	assert.Equal(t, 1, fake.CallCount("addNote"))
}
