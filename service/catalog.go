package service

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AnTengye/saasledger/data"
	"github.com/AnTengye/saasledger/model"
)

var ErrUnknownApp = errors.New("unknown application")

// Catalog is the read-only list of applications a company can select from.
type Catalog struct {
	apps []model.App
	byID map[string]int
}

type catalogFile struct {
	Apps []model.App `yaml:"apps"`
}

// LoadCatalog reads the catalog at path, or the embedded one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	raw := data.AppsYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw = b
	}
	return ParseCatalog(raw)
}

// ParseCatalog builds a catalog from YAML. Duplicate ids keep the first entry.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(f.Apps))}
	for _, app := range f.Apps {
		if app.ID == "" || app.Name == "" {
			return nil, fmt.Errorf("parse catalog: entry %+v needs id and name", app)
		}
		if _, dup := c.byID[app.ID]; dup {
			continue
		}
		c.byID[app.ID] = len(c.apps)
		c.apps = append(c.apps, app)
	}
	return c, nil
}

// All returns every catalog application in file order.
func (c *Catalog) All() []model.App {
	return append([]model.App(nil), c.apps...)
}

// Lookup finds an application by id.
func (c *Catalog) Lookup(id string) (model.App, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.App{}, fmt.Errorf("lookup %q: %w", id, ErrUnknownApp)
	}
	return c.apps[i], nil
}

// Search matches the query case-insensitively against name and category.
// A blank query returns the whole catalog.
func (c *Catalog) Search(query string) []model.App {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	matches := make([]model.App, 0)
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), q) || strings.Contains(strings.ToLower(string(app.Category)), q) {
			matches = append(matches, app)
		}
	}
	return matches
}

var listSeparator = regexp.MustCompile(`[,\n]`)

// ParseAppList resolves a comma or newline separated list of names. Each name
// becomes an exact (case-insensitive) catalog match, else the first partial
// match, else a custom application in the CSV Uploads category.
func (c *Catalog) ParseAppList(text string) []model.App {
	apps := make([]model.App, 0)
	for _, part := range listSeparator.Split(text, -1) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		apps = append(apps, c.resolve(name))
	}
	return apps
}

func (c *Catalog) resolve(name string) model.App {
	lower := strings.ToLower(name)
	for _, app := range c.apps {
		if strings.ToLower(app.Name) == lower {
			return app
		}
	}
	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), lower) {
			return app
		}
	}
	return model.App{
		ID:       CustomAppID(name),
		Name:     name,
		Category: model.CategoryCSV,
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Kebab lowercases text and joins its alphanumeric runs with '-'.
func Kebab(text string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(text), "-"), "-")
}

// CustomAppID derives the id of an application that is not in the catalog.
func CustomAppID(name string) string {
	return "custom-" + Kebab(name)
}
