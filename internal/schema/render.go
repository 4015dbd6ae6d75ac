package schema

import (
	"fmt"
	"io"
	"sort"

	"ormseed/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

type planView struct {
	Database    string           `yaml:"database"`
	Mode        string           `yaml:"mode"`
	Accounts    []model.Account  `yaml:"accounts"`
	Collections []string         `yaml:"collections"`
	Indexes     []indexView      `yaml:"indexes"`
	Seeds       []*model.Product `yaml:"seeds"`
}

type indexView struct {
	Collection string `yaml:"collection"`
	Name       string `yaml:"name"`
	Field      string `yaml:"field"`
	Order      int    `yaml:"order"`
	Unique     bool   `yaml:"unique"`
}

// Render writes the plan as YAML. Passwords are never written.
func (p *Plan) Render(w io.Writer, idempotent bool) error {
	mode := "strict"
	if idempotent {
		mode = "idempotent"
	}

	view := planView{
		Database:    p.Database,
		Mode:        mode,
		Accounts:    p.Accounts,
		Collections: p.Collections,
		Seeds:       p.Seeds,
	}

	colls := make([]string, 0, len(p.Indexes))
	for c := range p.Indexes {
		colls = append(colls, c)
	}
	sort.Strings(colls)
	for _, c := range colls {
		for _, m := range p.Indexes[c] {
			keys, ok := m.Keys.(bson.D)
			if !ok {
				return fmt.Errorf("index on %s: unsupported key type %T", c, m.Keys)
			}
			for _, k := range keys {
				order, _ := k.Value.(int)
				view.Indexes = append(view.Indexes, indexView{
					Collection: c,
					Name:       IndexName(m),
					Field:      k.Key,
					Order:      order,
					Unique:     IsUnique(m),
				})
			}
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return enc.Close()
}
