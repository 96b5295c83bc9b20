package history

import (
	"database/sql"
	"sync"
	"time"
)

// Record is one prediction as it was shown to the user.
type Record struct {
	ID        string             `json:"id" msgpack:"id"`
	Home      string             `json:"home_team" msgpack:"home_team"`
	Away      string             `json:"away_team" msgpack:"away_team"`
	Country   string             `json:"country,omitempty" msgpack:"country"`
	League    string             `json:"league,omitempty" msgpack:"league"`
	Schema    string             `json:"schema" msgpack:"schema"`
	Numbers   map[string]float64 `json:"numbers" msgpack:"numbers"`
	Texts     map[string]string  `json:"texts,omitempty" msgpack:"texts"`
	HomeShare int                `json:"home_share" msgpack:"home_share"`
	AwayShare int                `json:"away_share" msgpack:"away_share"`
	CreatedAt time.Time          `json:"created_at" msgpack:"created_at"`
}

// store persists records in the predictions table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
