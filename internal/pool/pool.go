// internal/pool/pool.go
// Package pool maintains pool.json, the set of fake chatters FauxChat picks
// message senders from.
package pool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/natefinch/atomic"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultFileName is the pool file randomised when no path is given
const DefaultFileName = "pool.json"

// Role probabilities applied by Randomise
const (
	ModChance = 0.03
	VIPChance = 0.06
	SubChance = 0.2
)

// ErrMissingUsers indicates the pool has no "users" array
var ErrMissingUsers = errors.New(`pool has no "users" array`)

// User is a pooled chatter. Fields other than the role flags keep their
// position and their JSON text, so numbers round-trip exactly.
type User struct {
	fields *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewUser returns a user without fields
func NewUser() *User {
	return &User{fields: orderedmap.New[string, json.RawMessage]()}
}

// MarshalJSON writes the fields in order
func (u *User) MarshalJSON() ([]byte, error) {
	if u.fields == nil {
		return []byte("{}"), nil
	}
	return u.fields.MarshalJSON()
}

// UnmarshalJSON reads a JSON object, keeping key order
func (u *User) UnmarshalJSON(data []byte) error {
	u.fields = orderedmap.New[string, json.RawMessage]()
	return u.fields.UnmarshalJSON(data)
}

// Pool is the decoded pool.json
type Pool struct {
	Users []*User `json:"users"`
}

// Stats counts the users holding each role
type Stats struct {
	Users int
	Mods  int
	VIPs  int
	Subs  int
}

// Load reads a pool file
func Load(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pool: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse pool: %w", err)
	}
	if _, ok := raw["users"]; !ok {
		return nil, ErrMissingUsers
	}

	var p Pool
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pool: %w", err)
	}
	return &p, nil
}

// Save writes the pool indented with two spaces, replacing path atomically
func (p *Pool) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode pool: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write pool: %w", err)
	}
	return nil
}

// Randomise gives every user fresh is_mod, is_vip and is_sub flags
func (p *Pool) Randomise(r *rand.Rand) Stats {
	stats := Stats{Users: len(p.Users)}
	for i, user := range p.Users {
		if user == nil {
			user = NewUser()
			p.Users[i] = user
		}
		isMod := r.Float64() < ModChance
		isVIP := r.Float64() < VIPChance
		isSub := r.Float64() < SubChance

		user.setFlag("is_mod", isMod)
		user.setFlag("is_vip", isVIP)
		user.setFlag("is_sub", isSub)

		if isMod {
			stats.Mods++
		}
		if isVIP {
			stats.VIPs++
		}
		if isSub {
			stats.Subs++
		}
	}
	return stats
}

// setFlag stores a boolean, appending key when it is new
func (u *User) setFlag(key string, v bool) {
	raw := json.RawMessage("false")
	if v {
		raw = json.RawMessage("true")
	}
	if u.fields == nil {
		u.fields = orderedmap.New[string, json.RawMessage]()
	}
	u.fields.Set(key, raw)
}
