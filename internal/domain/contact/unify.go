package contact

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type EntityType string

const (
	EntityOrganization EntityType = "organization"
	EntityContact      EntityType = "contact"
	EntityIndividual   EntityType = "individual"
)

type Source string

const (
	SourceOrganizations Source = "organizations"
	SourceContacts      Source = "contacts"
)

// Unified is the common list shape for organizations and contacts. Raw holds
// the source row for edit forms.
type Unified struct {
	Key                string     `json:"key"`
	ID                 int64      `json:"id"`
	EntityType         EntityType `json:"entity_type"`
	Source             Source     `json:"source"`
	Name               string     `json:"name"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	ContactsCount      *int       `json:"contacts_count,omitempty"`
	OrganizationsCount *int       `json:"organizations_count,omitempty"`
	Raw                any        `json:"raw"`
}

type RelationCounts struct {
	ByOrganization map[int64]int
	ByContact      map[int64]int
}

// CountRelations counts current relations per organization and per contact.
func CountRelations(relations []ContactOrganization) RelationCounts {
	rc := RelationCounts{
		ByOrganization: make(map[int64]int),
		ByContact:      make(map[int64]int),
	}
	for _, r := range relations {
		if !r.IsCurrent {
			continue
		}
		rc.ByOrganization[r.OrganizationID]++
		rc.ByContact[r.ContactID]++
	}
	return rc
}

// Unify merges organizations and contacts into one list sorted by name.
func Unify(orgs []Organization, contacts []Contact, relations []ContactOrganization) []Unified {
	counts := CountRelations(relations)
	out := make([]Unified, 0, len(orgs)+len(contacts))

	for _, o := range orgs {
		n := counts.ByOrganization[o.ID]
		out = append(out, Unified{
			Key:           fmt.Sprintf("organization:%d", o.ID),
			ID:            o.ID,
			EntityType:    EntityOrganization,
			Source:        SourceOrganizations,
			Name:          o.Name,
			Email:         o.Email,
			Phone:         o.Phone,
			ContactsCount: &n,
			Raw:           o,
		})
	}
	for _, c := range contacts {
		n := counts.ByContact[c.ID]
		entity := EntityContact
		if c.ContactType == TypeIndividual {
			entity = EntityIndividual
		}
		out = append(out, Unified{
			Key:                fmt.Sprintf("contact:%d", c.ID),
			ID:                 c.ID,
			EntityType:         entity,
			Source:             SourceContacts,
			Name:               c.FullName(),
			Email:              c.Email,
			Phone:              c.Phone,
			OrganizationsCount: &n,
			Raw:                c,
		})
	}

	col := collate.New(language.Polish, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := col.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Filter keeps records of entityType (all when empty or "all") whose name,
// email or phone contains search, ignoring case.
func Filter(list []Unified, entityType EntityType, search string) []Unified {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	out := make([]Unified, 0, len(list))
	for _, u := range list {
		if entityType != "" && entityType != "all" && u.EntityType != entityType {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(u.Name), needle) &&
			!strings.Contains(fold.String(u.Email), needle) &&
			!strings.Contains(u.Phone, needle) {
			continue
		}
		out = append(out, u)
	}
	return out
}
