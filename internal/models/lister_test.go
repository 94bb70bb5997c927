package models

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/testutil"
)

func TestList_NoAPIKey(t *testing.T) {
	_, err := NewLister(config.OpenAIConfig{}).List(context.Background())
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestList(t *testing.T) {
	fake := testutil.NewFakeOpenAI(t)

	catalog, err := NewLister(config.OpenAIConfig{APIKey: "sk-test", BaseURL: fake.BaseURL}).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if want := []string{"gpt-4o", "gpt-4o-mini"}; !reflect.DeepEqual(catalog.Chat, want) {
		t.Errorf("Chat = %v, want %v", catalog.Chat, want)
	}
	if want := []string{"dall-e-2", "dall-e-3"}; !reflect.DeepEqual(catalog.Image, want) {
		t.Errorf("Image = %v, want %v", catalog.Image, want)
	}
	if want := []string{"tts-1", "tts-1-hd"}; !reflect.DeepEqual(catalog.TTS, want) {
		t.Errorf("TTS = %v, want %v", catalog.TTS, want)
	}
	if catalog.Other != 1 {
		t.Errorf("Other = %d, want 1", catalog.Other)
	}
}

func TestCatalogPrint(t *testing.T) {
	var buf bytes.Buffer
	(&Catalog{Chat: []string{"gpt-4o-mini"}}).Print(&buf)

	out := buf.String()
	for _, want := range []string{"Available OpenAI Models:", "  gpt-4o-mini", "none found"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "other models") {
		t.Errorf("unexpected other models line in %q", out)
	}
}
