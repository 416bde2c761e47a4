// Package fixtures seeds the glossary with reference terms at startup.
// Fixture documents are embedded JSON files listing records plus the fields
// that make a record unique; loading is idempotent because records whose
// unique fields already exist are skipped.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/ghuser/glossary/pkg/logger"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
)

//go:embed *.json
var fixtureFS embed.FS

// document is the on-disk shape of a fixture file.
type document struct {
	Model        string   `json:"model"`
	UniqueFields []string `json:"unique_fields"`
	Data         []record `json:"data"`
}

type record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Result aggregates the outcome of one load run.
type Result struct {
	Created int
	Skipped int
	Failed  int
}

// Loader seeds glossary terms through the regular create path so fixture
// rows get the same validation and events as user-created ones.
type Loader struct {
	svc *appsvcs.TermService
	log logger.Logger
}

func NewLoader(svc *appsvcs.TermService, log logger.Logger) *Loader {
	return &Loader{svc: svc, log: log}
}

// Load walks all embedded fixture files in name order and creates every
// record that does not already exist. A record whose name is taken counts as
// skipped, not failed. Returns an error only when a record fails for a
// reason other than duplication.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	var res Result

	files, err := fs.Glob(fixtureFS, "*.json")
	if err != nil {
		return res, fmt.Errorf("glob fixtures: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		doc, err := l.read(name)
		if err != nil {
			return res, err
		}
		l.log.Info("loading fixture", "file", name, "model", doc.Model, "records", len(doc.Data))

		for _, rec := range doc.Data {
			_, err := l.svc.Create(ctx, rec.Name, rec.Description)
			switch {
			case err == nil:
				res.Created++
			case errors.Is(err, glossarydomain.ErrTermAlreadyExists):
				res.Skipped++
			default:
				res.Failed++
				return res, fmt.Errorf("fixture %s: create %q: %w", name, rec.Name, err)
			}
		}
	}

	l.log.Info("fixtures loaded", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

func (l *Loader) read(name string) (*document, error) {
	raw, err := fixtureFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", name, err)
	}
	if doc.Model == "" || len(doc.Data) == 0 {
		return nil, fmt.Errorf("fixture %s: missing model or data", name)
	}
	return &doc, nil
}
