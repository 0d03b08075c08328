package document

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup key matches no client or
// repository in the document. The document is never modified on this path.
var ErrNotFound = errors.New("client or repository not found")

// LookupKind selects which identity a Lookup carries.
type LookupKind int

const (
	// ByPath matches a repository by its filesystem path.
	ByPath LookupKind = iota
	// ByNamespace matches a repository by namespace or alias.
	ByNamespace
	// ByClientName matches a client entry by name.
	ByClientName
)

// Lookup is the single sum-typed key used for every identity resolution
// against the document. Callers construct exactly one per operation.
type Lookup struct {
	Kind  LookupKind
	Value string
}

func LookupByPath(path string) Lookup       { return Lookup{Kind: ByPath, Value: path} }
func LookupByNamespace(ns string) Lookup    { return Lookup{Kind: ByNamespace, Value: ns} }
func LookupByClientName(name string) Lookup { return Lookup{Kind: ByClientName, Value: name} }

func matchesNamespace(r *Repository, ns string) bool {
	return strings.EqualFold(r.Namespace, ns) ||
		(r.NamespaceAlias != "" && strings.EqualFold(r.NamespaceAlias, ns))
}

func sameClient(a, b *Client) bool {
	if a == nil || b == nil {
		return false
	}
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return strings.EqualFold(a.Name, b.Name)
}

// Resolve finds the client entry, and where the key names a repository
// also the repository, matching the given lookup. The returned indexes
// point into the document; repoIdx is -1 for ByClientName lookups.
func (d Document) Resolve(key Lookup) (clientIdx, repoIdx int, err error) {
	switch key.Kind {
	case ByClientName:
		for ci := range d {
			if d[ci].Client != nil && strings.EqualFold(d[ci].Client.Name, key.Value) {
				return ci, -1, nil
			}
		}
	case ByNamespace:
		for ci := range d {
			for ri := range d[ci].Repositories {
				if matchesNamespace(&d[ci].Repositories[ri], key.Value) {
					return ci, ri, nil
				}
			}
		}
	case ByPath:
		for ci := range d {
			for ri := range d[ci].Repositories {
				r := &d[ci].Repositories[ri]
				if r.RepoPath == key.Value || r.GitPath == key.Value {
					return ci, ri, nil
				}
			}
		}
	}
	return -1, -1, ErrNotFound
}

// Upsert reconciles a freshly built record into the document.
//
// A record whose client matches an existing entry updates that entry in
// place: a single-repository record replaces only the matching repository,
// by ID first and namespace second (or appends it when both are new to
// the client), leaving
// siblings untouched; a full record replaces the whole entry. A record
// for an unknown client is appended. An empty document bootstraps to the
// record as its sole entry.
func Upsert(doc Document, record ClientRepositories) Document {
	for ci := range doc {
		if !sameClient(doc[ci].Client, record.Client) {
			continue
		}

		if len(record.Repositories) == 1 && len(doc[ci].Repositories) > 0 {
			repo := record.Repositories[0]
			// the ID survives a move, the namespace may not
			target := -1
			for ri := range doc[ci].Repositories {
				if repo.ID != "" && doc[ci].Repositories[ri].ID == repo.ID {
					target = ri
					break
				}
			}
			if target == -1 {
				for ri := range doc[ci].Repositories {
					if strings.EqualFold(doc[ci].Repositories[ri].Namespace, repo.Namespace) {
						target = ri
						break
					}
				}
			}
			if target >= 0 {
				doc[ci].Repositories[target] = repo
			} else {
				doc[ci].Repositories = append(doc[ci].Repositories, repo)
			}
			doc[ci].Client = record.Client
			doc[ci].User = record.User
			doc[ci].RequiresApproval = record.RequiresApproval
			doc[ci].Approver = record.Approver
		} else {
			doc[ci] = record
		}
		return doc
	}

	return append(doc, record)
}

// RemoveRepository deletes the repository with the given namespace. When
// clientName is non-empty the search is restricted to that client. The
// document is returned unchanged alongside ErrNotFound when nothing
// matches.
func RemoveRepository(doc Document, clientName, namespace string) (Document, error) {
	for ci := range doc {
		if clientName != "" {
			if doc[ci].Client == nil || !strings.EqualFold(doc[ci].Client.Name, clientName) {
				continue
			}
		}
		for ri := range doc[ci].Repositories {
			if matchesNamespace(&doc[ci].Repositories[ri], namespace) {
				doc[ci].Repositories = append(doc[ci].Repositories[:ri], doc[ci].Repositories[ri+1:]...)
				return doc, nil
			}
		}
	}
	return doc, ErrNotFound
}

// RemoveClient deletes the entire entry for the named client. The
// document is returned unchanged alongside ErrNotFound when no client
// matches. A document left empty signals to the caller that the backing
// store itself should be deleted.
func RemoveClient(doc Document, name string) (Document, error) {
	for ci := range doc {
		if doc[ci].Client != nil && strings.EqualFold(doc[ci].Client.Name, name) {
			return append(doc[:ci], doc[ci+1:]...), nil
		}
	}
	return doc, ErrNotFound
}
