package anki

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/profile"
)

var queryEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `*`, `\*`, `_`, `\_`)

// Query is the search matching notes in deck whose Wort_DE equals word.
func Query(deck, word string) string {
	return fmt.Sprintf(`"deck:%s" "%s:%s"`, queryEscaper.Replace(deck), FieldWord, queryEscaper.Replace(word))
}

type note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
}

// FindExisting returns the ids of the notes for word in the deck.
func (d *Deck) FindExisting(ctx context.Context, word string) ([]int64, error) {
	var ids []int64
	if err := d.client.Invoke(ctx, "findNotes", map[string]string{"query": Query(d.cfg.DeckName, word)}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Upsert replaces the notes for p with a single new note. Failures to find
// or delete old notes are logged and the new note is added anyway, so a
// duplicate can remain. Only a failed addNote is returned.
func (d *Deck) Upsert(ctx context.Context, p *profile.WordProfile) error {
	log := d.log.With(zap.String("word", p.GermanWord), zap.String("deck", d.cfg.DeckName))

	ids, err := d.FindExisting(ctx, p.GermanWord)
	if err != nil {
		log.Error("Failed to find existing notes", zap.Error(err))
		ids = nil
	}

	for _, id := range ids {
		if err := d.client.Invoke(ctx, "deleteNotes", map[string][]int64{"notes": {id}}, nil); err != nil {
			log.Error("Failed to delete note", zap.Int64("note_id", id), zap.Error(err))
			continue
		}
		log.Info("Deleted existing note", zap.Int64("note_id", id))
	}

	files := d.media.Collect(ctx, p)

	params := map[string]note{"note": {
		DeckName:  d.cfg.DeckName,
		ModelName: d.cfg.ModelName,
		Fields:    BuildFields(p, files),
		Tags:      d.tags(),
	}}

	var id int64
	if err := d.client.Invoke(ctx, "addNote", params, &id); err != nil {
		log.Error("Failed to add note", zap.Error(err))
		return fmt.Errorf("failed to add note for %q: %w", p.GermanWord, err)
	}

	log.Info("Note added", zap.Int64("note_id", id))
	return nil
}

func (d *Deck) tags() []string {
	if d.cfg.Tags == nil {
		return []string{}
	}
	return d.cfg.Tags
}
