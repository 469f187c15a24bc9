// Package catalog holds the read-only table of lender profiles used by bank
// schedules. A Catalog is built once at startup and never mutated.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/loans"
)

var (
	ErrEmptyID     = errors.New("bank profile has an empty id")
	ErrDuplicateID = errors.New("duplicate bank profile id")
)

// Catalog maps bank ids to their profiles.
type Catalog struct {
	profiles map[string]loans.BankProfile
	ids      []string
}

// Builtin returns the lender profiles shipped with the simulator.
func Builtin() []loans.BankProfile {
	return []loans.BankProfile{
		{ID: "austro", Name: "Banco del Austro", AnnualRatePct: 16.77},
		{ID: "jep", Name: "Cooperativa JEP", AnnualRatePct: 15.60, DesgravamenRatePct: 0.84},
	}
}

// Default builds a catalog from the built-in profiles.
func Default() *Catalog {
	c, err := New(Builtin())
	if err != nil {
		panic(err)
	}
	return c
}

// New builds a catalog. Ids are trimmed and lower-cased; empty or repeated
// ids are rejected.
func New(profiles []loans.BankProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make(map[string]loans.BankProfile, len(profiles)),
		ids:      make([]string, 0, len(profiles)),
	}
	for _, p := range profiles {
		id := normalizeID(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%w (name %q)", ErrEmptyID, p.Name)
		}
		if _, exists := c.profiles[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		p.ID = id
		if p.Name == "" {
			p.Name = id
		}
		c.profiles[id] = p
		c.ids = append(c.ids, id)
	}
	sort.Strings(c.ids)
	return c, nil
}

// Merge returns a new catalog holding the base profiles overridden and
// extended by the given ones.
func Merge(base []loans.BankProfile, overrides []loans.BankProfile) (*Catalog, error) {
	byID := make(map[string]int, len(base))
	merged := make([]loans.BankProfile, 0, len(base)+len(overrides))
	for _, p := range base {
		byID[normalizeID(p.ID)] = len(merged)
		merged = append(merged, p)
	}

	seen := make(map[string]bool, len(overrides))
	for _, p := range overrides {
		id := normalizeID(p.ID)
		if seen[id] && id != "" {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
		if i, ok := byID[id]; ok && id != "" {
			merged[i] = p
			continue
		}
		merged = append(merged, p)
	}
	return New(merged)
}

// Lookup returns the profile registered under id.
func (c *Catalog) Lookup(id string) (loans.BankProfile, bool) {
	p, ok := c.profiles[normalizeID(id)]
	return p, ok
}

// IDs lists the registered ids in ascending order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Profiles lists copies of the registered profiles ordered by id.
func (c *Catalog) Profiles() []loans.BankProfile {
	out := make([]loans.BankProfile, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.profiles[id])
	}
	return out
}

// Len reports the number of profiles.
func (c *Catalog) Len() int {
	return len(c.ids)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
