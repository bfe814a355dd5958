package catalog

import (
	"sort"
	"strconv"
	"strings"

	"snapflow/internal/services"
)

// Position identifies which side of an article a photo shows. The codes are
// part of the filename and IPTC contract and must not change.
type Position string

const (
	PositionFront Position = "v"
	PositionBack  Position = "h"
)

// Label returns the operator-facing name of the position.
func (p Position) Label() string {
	if p == PositionBack {
		return "back"
	}
	return "front"
}

// Article is one catalog record. Articles are immutable once loaded.
type Article struct {
	ArticleNo   string
	Description string
	Collection  string
	Color       string
	ColorName   string
	Category    string
}

// Variation is an Article paired with the side to be photographed. One
// article row expands to one or two Variations.
type Variation struct {
	Article
	Position Position
}

// Stats summarizes a built catalog.
type Stats struct {
	Articles   int
	Variations int
}

// Catalog is a read-only lookup table from article key to its Variation
// sequence. Build it once at startup via Load; it never mutates afterwards.
type Catalog struct {
	entries map[string][]Variation
	stats   Stats
}

// Lookup returns the Variation sequence for key, trimming surrounding
// whitespace first. A miss is an ordinary (nil, false) return, never an
// error; the session re-prompts on it.
func (c *Catalog) Lookup(key string) ([]Variation, bool) {
	vars, ok := c.entries[strings.TrimSpace(key)]
	return vars, ok
}

// Stats returns article and variation counts.
func (c *Catalog) Stats() Stats {
	return c.stats
}

// Variations returns every variation in deterministic order: article number,
// category, description, collection, then numeric color code. Repeated runs
// over the same catalog always present the same sequence.
func (c *Catalog) Variations() []Variation {
	all := make([]Variation, 0, c.stats.Variations)
	for _, vars := range c.entries {
		all = append(all, vars...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.ArticleNo != b.ArticleNo {
			return a.ArticleNo < b.ArticleNo
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		if a.Collection != b.Collection {
			return a.Collection < b.Collection
		}
		return colorLess(a.Color, b.Color)
	})
	return all
}

func colorLess(a, b string) bool {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Header sentinels that mark the first data row. Everything above them is
// skipped, not errored.
const (
	sentinelArticle  = "ArtikelNr"
	sentinelIdentity = "IdentNr"
)

// build assembles a Catalog from raw rows. The schema is chosen by whichever
// sentinel appears first in the second column: ArtikelNr selects the
// article-keyed schema (rows sharing a key accumulate), IdentNr selects the
// identity-keyed schema (duplicate keys are a hard error). No sentinel at all
// yields an empty catalog.
func build(rows [][]string) (*Catalog, error) {
	c := &Catalog{entries: make(map[string][]Variation)}

	schema := schemaNone
	for _, row := range rows {
		keyCell := cell(row, 1)
		if schema == schemaNone {
			switch keyCell {
			case sentinelArticle:
				schema = schemaArticle
			case sentinelIdentity:
				schema = schemaIdentity
			}
			continue
		}
		if keyCell == "" {
			continue
		}

		switch schema {
		case schemaArticle:
			article := Article{
				Collection:  cell(row, 0),
				ArticleNo:   keyCell,
				Description: cell(row, 2),
				Color:       cell(row, 3),
				ColorName:   cell(row, 4),
				Category:    cell(row, 5),
			}
			positions := []Position{PositionFront}
			if strings.EqualFold(cell(row, 7), "x") {
				positions = append(positions, PositionBack)
			}
			if _, known := c.entries[keyCell]; !known {
				c.stats.Articles++
			}
			for _, pos := range positions {
				c.entries[keyCell] = append(c.entries[keyCell], Variation{Article: article, Position: pos})
				c.stats.Variations++
			}
		case schemaIdentity:
			if _, dup := c.entries[keyCell]; dup {
				return nil, services.Wrap(services.ErrDuplicateKey, "catalog", "build", sentinelIdentity+" "+keyCell, nil)
			}
			article := Article{
				ArticleNo:   cell(row, 2),
				Color:       cell(row, 3),
				Description: cell(row, 4),
			}
			c.entries[keyCell] = []Variation{{Article: article, Position: PositionFront}}
			c.stats.Articles++
			c.stats.Variations++
		}
	}

	return c, nil
}

type schemaKind int

const (
	schemaNone schemaKind = iota
	schemaArticle
	schemaIdentity
)

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
