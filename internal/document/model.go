// Package document defines the persisted configuration document — the
// list of clients, each with its repositories and derived timesheets —
// and the merge operations that keep it consistent.
package document

import "github.com/autolog-dev/autolog/internal/timesheet"

// Client identifies who the work is billed to. The generated ID is the
// primary identity; name matching (case-insensitive) is the fallback for
// documents written before IDs existed.
type Client struct {
	ID            string `json:"id"`
	Name          string `json:"client_name"`
	Address       string `json:"client_address"`
	ContactPerson string `json:"client_contact_person"`
}

// User is the identity whose commits are tracked. IsAlias distinguishes
// an explicitly-set shared identity from one derived from git config.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAlias bool   `json:"is_alias"`
}

// Approver signs off a timesheet when the client requires approval.
type Approver struct {
	Name  string `json:"approvers_name"`
	Email string `json:"approvers_email"`
}

// Repository is a single git repository tracked under a client. Client
// fields are carried on the repository as well so a rendered sheet is
// self-contained.
type Repository struct {
	ID             string `json:"id"`
	Namespace      string `json:"namespace"`
	NamespaceAlias string `json:"namespace_alias,omitempty"`
	RepoPath       string `json:"repo_path"`
	GitPath        string `json:"git_path"`
	Name           string `json:"name"`
	Email          string `json:"email"`

	ClientName          string `json:"client_name"`
	ClientAddress       string `json:"client_address"`
	ClientContactPerson string `json:"client_contact_person"`
	ProjectNumber       string `json:"project_number"`

	WorkedDays timesheet.WorkedDayIndex `json:"git_log_dates,omitempty"`
	Timesheet  timesheet.Sheet          `json:"timesheet,omitempty"`

	UserSignature     string `json:"user_signature,omitempty"`
	ApproverSignature string `json:"approver_signature,omitempty"`
}

// DisplayNamespace returns the alias when one was set, otherwise the
// namespace derived from the git path.
func (r *Repository) DisplayNamespace() string {
	if r.NamespaceAlias != "" {
		return r.NamespaceAlias
	}
	return r.Namespace
}

// ClientRepositories is the unit of merge: one client, the tracked user,
// and every repository grouped under that client.
type ClientRepositories struct {
	Client           *Client      `json:"client"`
	User             *User        `json:"user"`
	Repositories     []Repository `json:"repositories"`
	RequiresApproval bool         `json:"requires_approval"`
	Approver         *Approver    `json:"approver,omitempty"`
}

// Document is the full persisted state, one entry per known client.
// Client identities are unique within the list.
type Document []ClientRepositories
