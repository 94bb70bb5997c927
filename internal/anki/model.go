package anki

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/media"
)

// Note type field names, in the order Anki shows them.
const (
	FieldWord        = "Wort_DE"
	FieldClass       = "Wortarten"
	FieldTranslation = "Wort_SL"
	FieldArticle     = "Artikel"
	FieldPlural      = "Plural"
	FieldPresent     = "Praesens"
	FieldPast        = "Praeteritum"
	FieldPerfect     = "Perfekt"
	FieldAudioWord   = "Audio_Wort"
	FieldPicture     = "Picture"
)

// FieldNames lists all fields of the note type in order.
var FieldNames = []string{
	FieldWord, FieldClass, FieldTranslation,
	FieldArticle, FieldPlural,
	FieldPresent, FieldPast, FieldPerfect,
	"Satz1_DE", "Satz1_SL", "Satz2_DE", "Satz2_SL", "Satz3_DE", "Satz3_SL",
	FieldAudioWord, "Audio_S1", "Audio_S2", "Audio_S3",
	FieldPicture,
}

func exampleFields(i int) (german, translation, audio string) {
	return fmt.Sprintf("Satz%d_DE", i), fmt.Sprintf("Satz%d_SL", i), fmt.Sprintf("Audio_S%d", i)
}

type cardTemplate struct {
	Name  string `json:"Name"`
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

type createModelParams struct {
	ModelName     string         `json:"modelName"`
	InOrderFields []string       `json:"inOrderFields"`
	CSS           string         `json:"css"`
	CardTemplates []cardTemplate `json:"cardTemplates"`
}

// Deck manages the notes of one deck and note type.
type Deck struct {
	client Invoker
	media  *media.Store
	cfg    config.AnkiConfig
	log    *zap.Logger
}

// NewDeck creates a Deck that uploads media from store before adding notes.
func NewDeck(client Invoker, store *media.Store, cfg config.AnkiConfig, log *zap.Logger) *Deck {
	return &Deck{client: client, media: store, cfg: cfg, log: log}
}

// EnsureModel creates the note type. A note type that already exists is
// not an error.
func (d *Deck) EnsureModel(ctx context.Context) error {
	params := createModelParams{
		ModelName:     d.cfg.ModelName,
		InOrderFields: FieldNames,
		CSS:           d.cfg.CSS,
		CardTemplates: []cardTemplate{{
			Name:  d.cfg.CardName,
			Front: d.cfg.FrontTemplate,
			Back:  d.cfg.BackTemplate,
		}},
	}

	err := d.client.Invoke(ctx, "createModel", params, nil)
	switch {
	case err == nil:
		d.log.Info("Note type created", zap.String("model", d.cfg.ModelName))
		return nil
	case IsModelExists(err):
		d.log.Debug("Note type already exists", zap.String("model", d.cfg.ModelName))
		return nil
	default:
		return fmt.Errorf("failed to create note type %q: %w", d.cfg.ModelName, err)
	}
}
