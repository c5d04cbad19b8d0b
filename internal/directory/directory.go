// Package directory derives the contact directory from case party lists.
package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmaia/casedesk/internal/model"
)

// Build merges the persisted contact directory with party names newly
// discovered in the case data. Matching is exact on name; new names get a
// synthetic ID and default classification. Persisted contacts are never
// removed, even when their name no longer appears in any case. Every
// contact's CaseCount is recomputed from the current case collection.
func Build(cases []model.Case, persisted []model.Contact, now time.Time) []model.Contact {
	contacts := make([]model.Contact, len(persisted))
	copy(contacts, persisted)

	index := make(map[string]int, len(contacts))
	for i, c := range contacts {
		index[c.Name] = i
	}

	for _, cs := range cases {
		for _, name := range cs.Parties {
			if _, ok := index[name]; ok {
				continue
			}
			index[name] = len(contacts)
			contacts = append(contacts, model.Contact{
				ID:        uuid.New().String(),
				Name:      name,
				Type:      model.ContactTypeParty,
				Status:    model.ContactStatusActive,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}

	// A contact counts once per case, even when the party list repeats
	// the name.
	for _, cs := range cases {
		seen := make(map[string]bool, len(cs.Parties))
		for _, name := range cs.Parties {
			if seen[name] {
				continue
			}
			seen[name] = true
			if i, ok := index[name]; ok {
				contacts[i].CaseCount++
			}
		}
	}

	return contacts
}
