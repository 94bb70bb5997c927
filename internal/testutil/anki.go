package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
)

// FakeNote is a note stored by FakeAnki.
type FakeNote struct {
	Deck   string
	Model  string
	Fields map[string]string
	Tags   []string
}

// FakeAnki is an in-memory AnkiConnect server. It rejects duplicate notes
// in a deck the way Anki does.
type FakeAnki struct {
	*httptest.Server

	mu     sync.Mutex
	models map[string]bool
	notes  map[int64]FakeNote
	media  map[string][]byte
	nextID int64

	fail  map[string]string
	calls []string
}

var findQuery = regexp.MustCompile(`^"deck:((?:[^"\\]|\\.)*)" "Wort_DE:((?:[^"\\]|\\.)*)"$`)

// NewFakeAnki starts a FakeAnki that is closed with the test.
func NewFakeAnki(t *testing.T) *FakeAnki {
	t.Helper()

	f := &FakeAnki{
		models: make(map[string]bool),
		notes:  make(map[int64]FakeNote),
		media:  make(map[string][]byte),
		nextID: 1000,
		fail:   make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

type ankiRequest struct {
	Action  string          `json:"action"`
	Version int             `json:"version"`
	Params  json.RawMessage `json:"params"`
}

func (f *FakeAnki) handle(w http.ResponseWriter, r *http.Request) {
	var req ankiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req.Action)

	if req.Version != 6 {
		writeAnki(w, nil, "unsupported version")
		return
	}
	if msg, ok := f.fail[req.Action]; ok {
		writeAnki(w, nil, msg)
		return
	}

	result, errMsg := f.dispatch(req)
	writeAnki(w, result, errMsg)
}

func (f *FakeAnki) dispatch(req ankiRequest) (any, string) {
	switch req.Action {
	case "version":
		return 6, ""

	case "createModel":
		var p struct {
			ModelName     string   `json:"modelName"`
			InOrderFields []string `json:"inOrderFields"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, err.Error()
		}
		if f.models[p.ModelName] {
			return nil, "Model name already exists"
		}
		f.models[p.ModelName] = true
		return map[string]any{"name": p.ModelName, "flds": p.InOrderFields}, ""

	case "storeMediaFile":
		var p struct {
			Filename string `json:"filename"`
			Data     string `json:"data"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, err.Error()
		}
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, err.Error()
		}
		f.media[p.Filename] = data
		return p.Filename, ""

	case "findNotes":
		var p struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, err.Error()
		}
		m := findQuery.FindStringSubmatch(p.Query)
		if m == nil {
			return nil, "unsupported query: " + p.Query
		}
		deck, word := unescapeQuery(m[1]), unescapeQuery(m[2])
		ids := []int64{}
		for id, n := range f.notes {
			if n.Deck == deck && n.Fields["Wort_DE"] == word {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return ids, ""

	case "deleteNotes":
		var p struct {
			Notes []int64 `json:"notes"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, err.Error()
		}
		for _, id := range p.Notes {
			delete(f.notes, id)
		}
		return nil, ""

	case "addNote":
		var p struct {
			Note struct {
				DeckName  string            `json:"deckName"`
				ModelName string            `json:"modelName"`
				Fields    map[string]string `json:"fields"`
				Tags      []string          `json:"tags"`
			} `json:"note"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return nil, err.Error()
		}
		if !f.models[p.Note.ModelName] {
			return nil, "model was not found: " + p.Note.ModelName
		}
		for _, n := range f.notes {
			if n.Deck == p.Note.DeckName && n.Fields["Wort_DE"] == p.Note.Fields["Wort_DE"] {
				return nil, "cannot create note because it is a duplicate"
			}
		}
		f.nextID++
		f.notes[f.nextID] = FakeNote{
			Deck:   p.Note.DeckName,
			Model:  p.Note.ModelName,
			Fields: p.Note.Fields,
			Tags:   p.Note.Tags,
		}
		return f.nextID, ""
	}

	return nil, fmt.Sprintf("unsupported action: %s", req.Action)
}

func writeAnki(w http.ResponseWriter, result any, errMsg string) {
	resp := map[string]any{"result": result, "error": nil}
	if errMsg != "" {
		resp["error"] = errMsg
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func unescapeQuery(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// AddModel registers a note type as if it had been created earlier.
func (f *FakeAnki) AddModel(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.models[name] = true
}

// AddNote stores a note directly and returns its id.
func (f *FakeAnki) AddNote(n FakeNote) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.notes[f.nextID] = n
	return f.nextID
}

// NotesFor returns the notes in deck whose Wort_DE equals word.
func (f *FakeAnki) NotesFor(deck, word string) []FakeNote {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []int64
	for id, n := range f.notes {
		if n.Deck == deck && n.Fields["Wort_DE"] == word {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	notes := make([]FakeNote, 0, len(ids))
	for _, id := range ids {
		notes = append(notes, f.notes[id])
	}
	return notes
}

// Media returns the stored media file and whether it exists.
func (f *FakeAnki) Media(name string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.media[name]
	return data, ok
}

// HasModel reports whether the note type exists.
func (f *FakeAnki) HasModel(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.models[name]
}

// CallCount returns how often action was requested.
func (f *FakeAnki) CallCount(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == action {
			n++
		}
	}
	return n
}

// SetFail makes action report msg; an empty msg clears the failure.
func (f *FakeAnki) SetFail(action, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg == "" {
		delete(f.fail, action)
		return
	}
	f.fail[action] = msg
}
