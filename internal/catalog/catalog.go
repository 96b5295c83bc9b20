package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// Header names of the teams CSV. They are fixed by the data contract.
const (
	ColumnCountry = "Country"
	ColumnLeague  = "League"
	ColumnTeam    = "team"
)

// New builds a catalog from entries. Entries with an empty field are skipped
// and repeated triples collapse into one.
func New(entries []TeamEntry) *Catalog {
	index := make(map[string]map[string][]string)
	for _, e := range entries {
		e = e.normalized()
		if !e.valid() {
			continue
		}
		leagues, ok := index[e.Country]
		if !ok {
			leagues = make(map[string][]string)
			index[e.Country] = leagues
		}
		leagues[e.League] = append(leagues[e.League], e.Team)
	}

	size := 0
	for _, leagues := range index {
		for league, teams := range leagues {
			slices.Sort(teams)
			teams = slices.Compact(teams)
			leagues[league] = teams
			size += len(teams)
		}
	}
	return &Catalog{index: index, size: size}
}

// Load reads a teams CSV file. A missing or unreadable file is a
// DataLoadError; an empty file yields an empty catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer f.Close()

	c, err := load(f, path)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded team catalog", "path", path, "countries", len(c.index), "teams", c.size)
	return c, nil
}

// LoadReader reads a teams CSV from r. Rows missing a required column are
// skipped.
func LoadReader(r io.Reader) (*Catalog, error) {
	return load(r, "reader")
}

func load(r io.Reader, source string) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// Bare quotes inside unquoted fields are part of the name.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		log.Warn("Team catalog source is empty", "source", source)
		return New(nil), nil
	}
	if err != nil {
		return nil, &DataLoadError{Source: source, Err: fmt.Errorf("read header: %w", err)}
	}

	cols, ok := columnIndex(header)
	if !ok {
		log.Warn("Team catalog header is missing required columns", "source", source, "header", header)
	}

	var entries []TeamEntry
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				log.Debug("Skipping malformed catalog row", "source", source, "line", parseErr.Line, "error", err)
				skipped++
				continue
			}
			return nil, &DataLoadError{Source: source, Err: err}
		}
		if !ok {
			skipped++
			continue
		}

		entry, valid := cols.entry(record)
		if !valid {
			line, _ := reader.FieldPos(0)
			log.Debug("Skipping incomplete catalog row", "source", source, "line", line)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		log.Warn("Skipped malformed catalog rows", "source", source, "count", skipped)
	}
	return New(entries), nil
}

// columns holds the position of each required column in a CSV record.
type columns struct {
	country, league, team int
}

func columnIndex(header []string) (columns, bool) {
	cols := columns{country: -1, league: -1, team: -1}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch name {
		case ColumnCountry:
			cols.country = i
		case ColumnLeague:
			cols.league = i
		case ColumnTeam:
			cols.team = i
		}
	}
	return cols, cols.country >= 0 && cols.league >= 0 && cols.team >= 0
}

func (c columns) entry(record []string) (TeamEntry, bool) {
	field := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return record[i]
	}
	e := TeamEntry{
		Country: field(c.country),
		League:  field(c.league),
		Team:    field(c.team),
	}.normalized()
	return e, e.valid()
}

func (e TeamEntry) normalized() TeamEntry {
	return TeamEntry{
		Country: strings.TrimSpace(e.Country),
		League:  strings.TrimSpace(e.League),
		Team:    strings.TrimSpace(e.Team),
	}
}

func (e TeamEntry) valid() bool {
	return e.Country != "" && e.League != "" && e.Team != ""
}

// Countries returns all country names in ascending order.
func (c *Catalog) Countries() []string {
	if c == nil {
		return []string{}
	}
	return sortedKeys(c.index)
}

// Leagues returns the leagues of country in ascending order, or an empty
// slice when the country is unknown.
func (c *Catalog) Leagues(country string) []string {
	if c == nil {
		return []string{}
	}
	leagues, ok := c.index[country]
	if !ok {
		return []string{}
	}
	return sortedKeys(leagues)
}

// Teams returns the teams of a league in ascending order, or an empty slice
// when the pair is unknown.
func (c *Catalog) Teams(country, league string) []string {
	if c == nil {
		return []string{}
	}
	teams := c.index[country][league]
	return append(make([]string, 0, len(teams)), teams...)
}

// Contains reports whether team plays in the given league.
func (c *Catalog) Contains(country, league, team string) bool {
	if c == nil {
		return false
	}
	_, found := slices.BinarySearch(c.index[country][league], team)
	return found
}

// Entries flattens the catalog back into sorted entries.
func (c *Catalog) Entries() []TeamEntry {
	entries := make([]TeamEntry, 0, c.Len())
	for _, country := range c.Countries() {
		for _, league := range c.Leagues(country) {
			for _, team := range c.index[country][league] {
				entries = append(entries, TeamEntry{Country: country, League: league, Team: team})
			}
		}
	}
	return entries
}

// Len returns the number of teams in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return c.size
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
