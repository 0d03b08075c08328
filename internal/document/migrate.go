package document

import "github.com/google/uuid"

// Migrate brings a document written by an older version up to the current
// schema. Earlier versions persisted no generated ids, no user record and
// no approval metadata; those fields are filled in rather than assumed
// present. Safe to call on current documents, which pass through
// unchanged apart from any still-missing ids.
func Migrate(doc Document) Document {
	for ci := range doc {
		entry := &doc[ci]

		if entry.Client == nil && len(entry.Repositories) > 0 {
			first := entry.Repositories[0]
			entry.Client = &Client{
				Name:          first.ClientName,
				Address:       first.ClientAddress,
				ContactPerson: first.ClientContactPerson,
			}
		}
		if entry.Client != nil && entry.Client.ID == "" {
			entry.Client.ID = uuid.NewString()
		}

		if entry.User == nil && len(entry.Repositories) > 0 {
			first := entry.Repositories[0]
			entry.User = &User{
				ID:      uuid.NewString(),
				Name:    first.Name,
				Email:   first.Email,
				IsAlias: false,
			}
		}
		if entry.User != nil && entry.User.ID == "" {
			entry.User.ID = uuid.NewString()
		}

		for ri := range entry.Repositories {
			if entry.Repositories[ri].ID == "" {
				entry.Repositories[ri].ID = uuid.NewString()
			}
		}
	}
	return doc
}
