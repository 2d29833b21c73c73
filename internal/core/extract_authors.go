package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/shared"
	"rocrate-convert/internal/types"
)

// AuthorExtractor walks dataset creator/author references and builds
// deduplicated author records. ARC-classified datasets (Investigation,
// Study, Assay) are scanned first; plain datasets only serve as a
// fallback when that pass finds nothing.
type AuthorExtractor struct {
	set    types.EntitySet
	refs   RefResolver
	lits   LiteralResolver
	policy policies.DedupPolicy
}

func NewAuthorExtractor(set types.EntitySet, refs RefResolver, lits LiteralResolver, policy policies.DedupPolicy) AuthorExtractor {
	return AuthorExtractor{set: set, refs: refs, lits: lits, policy: policy}
}

func (x AuthorExtractor) Extract(ctx context.Context) []types.AuthorRecord {
	var records []types.AuthorRecord
	seen := map[string]struct{}{}
	add := func(record types.AuthorRecord, ok bool) {
		if !ok {
			return
		}
		key := x.policy.AuthorKey(record)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		records = append(records, record)
	}

	classified := x.set.ByType("Dataset",
		string(types.ClassifierInvestigation),
		string(types.ClassifierStudy),
		string(types.ClassifierAssay),
	)
	for _, dataset := range classified {
		for _, prop := range []string{"creator", "author"} {
			for _, raw := range dataset.GetList(prop) {
				person, ok := x.refs.ResolveEntity(raw)
				if !ok {
					continue
				}
				add(x.personRecord(person))
			}
		}
	}

	if len(records) == 0 {
		for _, dataset := range x.set.ByType("Dataset") {
			for _, prop := range []string{"author", "creator"} {
				for _, raw := range dataset.GetList(prop) {
					person, ok := x.refs.ResolveEntity(raw)
					if !ok {
						continue
					}
					if person.HasType("Organization") && !IsEmptyValue(person.Get("contactPoint")) {
						if record, found := x.organizationContact(person); found {
							add(record, true)
							continue
						}
					}
					add(x.personRecord(person))
				}
			}
		}
	}

	log.Ctx(ctx).Debug().Int("authors", len(records)).Msg("author extraction complete")
	return records
}

// personRecord derives the display name by priority: explicit name,
// then "familyName, givenName", then the nested contactPoint name used
// when an Organization stands in for a person.
func (x AuthorExtractor) personRecord(person types.Entity) (types.AuthorRecord, bool) {
	name := x.lits.Literal(person.Get("name"))
	if name == "" {
		name = composeName(
			x.lits.Literal(person.Get("givenName")),
			x.lits.Literal(person.Get("familyName")),
		)
	}
	if name == "" {
		if contact, ok := x.refs.ResolveEntity(person.Get("contactPoint")); ok {
			name = x.lits.Literal(contact.Get("name"))
		}
	}
	name = shared.TrimName(name)
	if name == "" {
		return types.AuthorRecord{}, false
	}

	record := types.AuthorRecord{Name: name}
	if affiliation := ResolveSource(person, []string{"affiliation", "memberOf"}); !IsEmptyValue(affiliation) {
		record.Affiliation = shared.TrimName(x.lits.Literal(x.refs.Resolve(affiliation)))
	} else if person.HasType("Organization") {
		record.Affiliation = shared.TrimName(x.lits.Literal(person.Get("name")))
	}

	identifier := person.ID()
	if identifier != "" && (!strings.HasPrefix(identifier, "#") || strings.Contains(identifier, "orcid.org")) {
		record.Identifier = identifier
		record.Scheme = types.IdentifierSchemeOther
		if strings.Contains(identifier, "orcid.org") {
			record.Scheme = types.IdentifierSchemeORCID
		}
	}
	return record, true
}

// organizationContact handles the Organization-as-author pattern where
// the actual person hides in a nested contactPoint: the contact name
// becomes the author and the organization name the affiliation.
func (x AuthorExtractor) organizationContact(person types.Entity) (types.AuthorRecord, bool) {
	for _, raw := range person.GetList("contactPoint") {
		contact, ok := x.refs.ResolveEntity(raw)
		if !ok {
			continue
		}
		name := x.lits.Literal(contact.Get("name"))
		if name == "" {
			continue
		}
		return types.AuthorRecord{
			Name:        name,
			Affiliation: x.lits.Literal(person.Get("name")),
			Email:       x.lits.Literal(contact.Get("email")),
		}, true
	}
	return types.AuthorRecord{}, false
}

func composeName(given, family string) string {
	switch {
	case given != "" && family != "":
		return family + ", " + given
	case family != "":
		return family
	default:
		return given
	}
}
