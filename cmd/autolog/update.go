package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/git"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/spf13/cobra"
)

func runUpdate(cmd *cobra.Command, args []string) error {
	clientName, _ := cmd.Flags().GetString("client")
	namespace, _ := cmd.Flags().GetString("namespace")

	if clientName == "" && namespace == "" {
		return errors.New("pass --namespace to update a repository or --client to update a client")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	if namespace != "" {
		doc, err = updateRepository(doc, namespace)
	} else {
		doc, err = updateClient(doc, clientName)
	}
	if err != nil {
		if errors.Is(err, tui.ErrCanceled) {
			fmt.Println("Nothing updated.")
			return nil
		}
		return notFoundHint(err)
	}

	if err := st.Save(doc); err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render("autolog successfully updated \U0001F389"))
	return nil
}

func updateRepository(doc document.Document, namespace string) (document.Document, error) {
	ci, ri, err := doc.Resolve(document.LookupByNamespace(namespace))
	if err != nil {
		return doc, err
	}
	repo := doc[ci].Repositories[ri]

	options := []string{"Namespace", "Repository path"}
	choice, err := tui.Select(
		fmt.Sprintf("Updating project %q for client %q. What would you like to update?",
			repo.DisplayNamespace(), doc[ci].Client.Name),
		options)
	if err != nil {
		return doc, err
	}

	switch options[choice] {
	case "Namespace":
		alias, err := tui.Input("Namespace", repo.DisplayNamespace(), tui.NonEmpty)
		if err != nil {
			return doc, err
		}
		repo.NamespaceAlias = alias
	case "Repository path":
		path, err := tui.Input("Repository path", repo.RepoPath, tui.NonEmpty)
		if err != nil {
			return doc, err
		}
		// moving the repository re-derives its git identity
		ctx := context.Background()
		runner := git.NewRunner(newLogger())
		gitPath, err := runner.GitPath(ctx, path)
		if err != nil {
			return doc, err
		}
		derived, _, err := discoverRepository(ctx, runner, path, gitPath)
		if err != nil {
			return doc, err
		}
		repo.RepoPath = derived.RepoPath
		repo.GitPath = derived.GitPath
		repo.Namespace = derived.Namespace
		repo.Name = derived.Name
		repo.Email = derived.Email
	}

	record := document.ClientRepositories{
		Client:           doc[ci].Client,
		User:             doc[ci].User,
		Repositories:     []document.Repository{repo},
		RequiresApproval: doc[ci].RequiresApproval,
		Approver:         doc[ci].Approver,
	}
	return document.Upsert(doc, record), nil
}

func updateClient(doc document.Document, clientName string) (document.Document, error) {
	ci, _, err := doc.Resolve(document.LookupByClientName(clientName))
	if err != nil {
		return doc, err
	}
	entry := doc[ci]

	options := []string{
		"Approver name",
		"Approver email",
		"Client company name",
		"Client contact person",
		"Client address",
		"User name",
		"User email",
	}
	choice, err := tui.Select(
		fmt.Sprintf("Updating client %q. What would you like to update?", entry.Client.Name),
		options)
	if err != nil {
		return doc, err
	}

	ensureApprover := func() *document.Approver {
		if entry.Approver == nil {
			entry.Approver = &document.Approver{}
		}
		return entry.Approver
	}

	switch options[choice] {
	case "Approver name":
		name, err := tui.Input("Approver's name", approverName(entry.Approver), tui.NonEmpty)
		if err != nil {
			return doc, err
		}
		ensureApprover().Name = name
		entry.RequiresApproval = true
	case "Approver email":
		email, err := tui.Input("Approver's email", approverEmail(entry.Approver), tui.ValidEmail)
		if err != nil {
			return doc, err
		}
		ensureApprover().Email = email
		entry.RequiresApproval = true
	case "Client company name":
		name, err := tui.Input("Client's company name", entry.Client.Name, tui.NonEmpty)
		if err != nil {
			return doc, err
		}
		entry.Client.Name = name
		for i := range entry.Repositories {
			entry.Repositories[i].ClientName = name
		}
	case "Client contact person":
		contact, err := tui.Input("Client's contact person", entry.Client.ContactPerson, nil)
		if err != nil {
			return doc, err
		}
		entry.Client.ContactPerson = contact
		for i := range entry.Repositories {
			entry.Repositories[i].ClientContactPerson = contact
		}
	case "Client address":
		address, err := tui.Input("Client's address", entry.Client.Address, nil)
		if err != nil {
			return doc, err
		}
		entry.Client.Address = address
		for i := range entry.Repositories {
			entry.Repositories[i].ClientAddress = address
		}
	case "User name":
		name, err := tui.Input("User's name", entry.User.Name, tui.NonEmpty)
		if err != nil {
			return doc, err
		}
		entry.User.Name = name
		entry.User.IsAlias = true
	case "User email":
		email, err := tui.Input("User's email", entry.User.Email, tui.ValidEmail)
		if err != nil {
			return doc, err
		}
		entry.User.Email = email
		entry.User.IsAlias = true
	}

	return document.Upsert(doc, entry), nil
}

func approverName(a *document.Approver) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func approverEmail(a *document.Approver) string {
	if a == nil {
		return ""
	}
	return a.Email
}
