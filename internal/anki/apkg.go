package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"codeberg.org/snonux/wortkarte/internal/config"
	"codeberg.org/snonux/wortkarte/internal/media"
	"codeberg.org/snonux/wortkarte/internal/profile"
)

// ErrNothingToExport is returned when the files directory holds no profiles.
var ErrNothingToExport = errors.New("no word profiles to export")

// Exporter packages the profiles and media of a files directory into an
// Anki package (.apkg) using the same note type as the live upsert.
type Exporter struct {
	cfg config.AnkiConfig
	dir string
	log *zap.Logger
}

func NewExporter(cfg config.AnkiConfig, filesDir string, log *zap.Logger) *Exporter {
	return &Exporter{cfg: cfg, dir: filesDir, log: log}
}

// Export writes every profile in the files directory to outputPath and
// returns the number of notes written. Nothing is generated; media that is
// not on disk leaves its field empty.
func (e *Exporter) Export(outputPath string) (int, error) {
	profiles, err := profile.LoadAll(e.dir)
	if err != nil {
		return 0, err
	}
	if len(profiles) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNothingToExport, e.dir)
	}

	pkg := newPackage(e.cfg, e.dir)
	for _, p := range profiles {
		pkg.add(p, e.localFiles(p))
	}

	if err := pkg.write(outputPath); err != nil {
		return 0, err
	}

	e.log.Info("Anki package written",
		zap.String("path", outputPath),
		zap.Int("notes", len(pkg.notes)),
		zap.Int("media", len(pkg.media)))
	return len(pkg.notes), nil
}

// localFiles names the media of p that exists in the files directory.
func (e *Exporter) localFiles(p *profile.WordProfile) media.Files {
	present := func(suffix string) string {
		if _, err := os.Stat(media.FilePath(e.dir, p.GermanWord, suffix)); err != nil {
			return ""
		}
		return media.FileName(p.GermanWord, suffix)
	}

	files := media.Files{
		AudioWord:     present(media.WordAudioSuffix),
		AudioExamples: make([]string, len(p.Examples)),
		Image:         present(media.ImageSuffix),
	}
	for i := range p.Examples {
		files.AudioExamples[i] = present(media.ExampleAudioSuffix(i + 1))
	}
	return files
}

type packageNote struct {
	word   string
	fields map[string]string
}

// ankiPackage collects notes and media for one .apkg file.
type ankiPackage struct {
	cfg     config.AnkiConfig
	dir     string
	deckID  int64
	modelID int64
	notes   []packageNote
	media   map[string]int // media filename to its number inside the zip
}

func newPackage(cfg config.AnkiConfig, dir string) *ankiPackage {
	// Anki ids are millisecond timestamps.
	now := time.Now().UnixMilli()
	return &ankiPackage{
		cfg:     cfg,
		dir:     dir,
		deckID:  now,
		modelID: now + 1,
		media:   make(map[string]int),
	}
}

func (a *ankiPackage) add(p *profile.WordProfile, files media.Files) {
	a.notes = append(a.notes, packageNote{word: p.GermanWord, fields: BuildFields(p, files)})

	for _, name := range append([]string{files.AudioWord, files.Image}, files.AudioExamples...) {
		if name == "" {
			continue
		}
		if _, ok := a.media[name]; !ok {
			a.media[name] = len(a.media)
		}
	}
}

// write builds collection.anki2, the numbered media files and the media
// mapping in a temp directory and zips them to outputPath.
func (a *ankiPackage) write(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "wortkarte_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := a.copyMedia(tempDir); err != nil {
		return fmt.Errorf("failed to copy media files: %w", err)
	}
	if err := a.writeMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}
	if err := a.createDatabase(filepath.Join(tempDir, "collection.anki2")); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if err := zipDir(tempDir, outputPath); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to create zip package: %w", err)
	}
	return nil
}

func (a *ankiPackage) copyMedia(tempDir string) error {
	for name, num := range a.media {
		if err := copyFile(filepath.Join(a.dir, name), filepath.Join(tempDir, strconv.Itoa(num))); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (a *ankiPackage) writeMediaMapping(tempDir string) error {
	mapping := make(map[string]string, len(a.media))
	for name, num := range a.media {
		mapping[strconv.Itoa(num)] = name
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (a *ankiPackage) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, query := range schemaQueries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	if err := a.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := a.insertNotes(db); err != nil {
		return fmt.Errorf("failed to insert notes: %w", err)
	}
	return nil
}

var schemaQueries = []string{
	`CREATE TABLE col (
		id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
		scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
		usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
		models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
		tags text NOT NULL
	)`,
	`CREATE TABLE notes (
		id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
		mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
		flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
		flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE cards (
		id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
		ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
		type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
		ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
		lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
		odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
	)`,
	`CREATE TABLE revlog (
		id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
		ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
		factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
	)`,
	`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
	`CREATE INDEX ix_notes_csum ON notes (csum)`,
	`CREATE INDEX ix_notes_usn ON notes (usn)`,
	`CREATE INDEX ix_cards_usn ON cards (usn)`,
	`CREATE INDEX ix_cards_nid ON cards (nid)`,
	`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
	`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
	`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
}

func deckConfig(id int64, name, desc string, mod int64) map[string]any {
	return map[string]any{
		"id":               id,
		"name":             name,
		"mod":              mod,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

func (a *ankiPackage) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	decks := map[string]any{"1": deckConfig(1, "Default", "", now)}
	decks[strconv.FormatInt(a.deckID, 10)] = deckConfig(a.deckID, a.cfg.DeckName,
		"German vocabulary cards created by wortkarte", now)

	models := map[string]any{
		strconv.FormatInt(a.modelID, 10): a.noteType(now),
	}
	conf := map[string]any{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      strconv.FormatInt(a.modelID, 10),
		"dayLearnFirst": false,
	}
	dconf := map[string]any{
		"1": map[string]any{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]any{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]any{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]any{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	}

	var encoded [4][]byte
	for i, v := range []any{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded[i] = data
	}

	_, err := db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver
		0,        // dty
		0,        // usn
		0,        // ls
		string(encoded[0]),
		string(encoded[1]),
		string(encoded[2]),
		string(encoded[3]),
		"{}",
	)
	return err
}

func (a *ankiPackage) noteType(mod int64) map[string]any {
	flds := make([]map[string]any, len(FieldNames))
	for i, name := range FieldNames {
		flds[i] = map[string]any{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	return map[string]any{
		"id":    a.modelID,
		"name":  a.cfg.ModelName,
		"type":  0,
		"mod":   mod,
		"usn":   -1,
		"sortf": 0,
		"did":   a.deckID,
		"req":   [][]any{{0, "any", []int{0}}},
		"vers":  []int{},
		"tags":  []string{},
		"latexPre": `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]any{{
			"name":  a.cfg.CardName,
			"ord":   0,
			"qfmt":  a.cfg.FrontTemplate,
			"afmt":  a.cfg.BackTemplate,
			"did":   nil,
			"bqfmt": "",
			"bafmt": "",
		}},
		"css": a.cfg.CSS,
	}
}

func (a *ankiPackage) insertNotes(db *sql.DB) error {
	now := time.Now()
	tags := ""
	if len(a.cfg.Tags) > 0 {
		tags = " " + strings.Join(a.cfg.Tags, " ") + " "
	}

	for i, n := range a.notes {
		// Two ids per note: the note and its single card.
		noteID := now.UnixMilli() + int64(i*2)
		cardID := noteID + 1

		values := make([]string, len(FieldNames))
		for j, name := range FieldNames {
			values[j] = n.fields[name]
		}

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,
			uuid.NewString(),
			a.modelID,
			now.Unix(),
			-1,
			tags,
			strings.Join(values, "\x1f"),
			n.word,
			fieldChecksum(n.word),
			0,
			"",
		)
		if err != nil {
			return fmt.Errorf("note %q: %w", n.word, err)
		}

		_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			cardID,
			noteID,
			a.deckID,
			0,          // ord
			now.Unix(), // mod
			-1,         // usn
			0,          // type new
			0,          // queue new
			i+1,        // due is the position of a new card
			0, 0, 0, 0, 0, 0, 0, 0,
			"",
		)
		if err != nil {
			return fmt.Errorf("card %q: %w", n.word, err)
		}
	}
	return nil
}

// fieldChecksum is Anki's duplicate check value: the first 8 hex digits of
// the SHA-1 of the sort field.
func fieldChecksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return v
}

func zipDir(dir, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	archive := zip.NewWriter(out)

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := archive.Create(rel)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
