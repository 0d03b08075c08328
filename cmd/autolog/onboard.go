package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/autolog-dev/autolog/internal/config"
	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/git"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	repoPath := "."
	if len(args) == 1 {
		repoPath = args[0]
	}
	repoPath, err = absPath(repoPath)
	if err != nil {
		return err
	}

	if !git.IsRepository(repoPath) {
		return fmt.Errorf("%s is not a git repository", repoPath)
	}

	st, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	runner := git.NewRunner(newLogger())

	gitPath, err := runner.GitPath(ctx, repoPath)
	if err != nil {
		return err
	}

	if _, _, err := doc.Resolve(document.LookupByPath(gitPath)); err == nil {
		fmt.Println("autolog has already been initialised for this repository.")
		fmt.Println("Try 'autolog make' to create a timesheet or 'autolog help' for more options.")
		return nil
	}

	ok, err := confirm(cfg, fmt.Sprintf("Initialise autolog for the repository at %s?", repoPath))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing initialised.")
		return nil
	}

	repo, user, err := discoverRepository(ctx, runner, repoPath, gitPath)
	if err != nil {
		return err
	}

	record, err := buildRecord(cfg, doc, repo, user)
	if err != nil {
		if errors.Is(err, tui.ErrCanceled) {
			fmt.Println("Nothing initialised.")
			return nil
		}
		return err
	}

	doc = document.Upsert(doc, record)

	// allocation is fairness-split across the client's repositories, so
	// the whole client regenerates when one is added
	ci, _, err := doc.Resolve(document.LookupByNamespace(repo.Namespace))
	if err != nil {
		return err
	}
	if err := regenerateClient(ctx, runner, &doc[ci]); err != nil {
		return err
	}

	if err := st.Save(doc); err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render("autolog initialised \U0001F389"))
	fmt.Println("Try 'autolog make' to create your first timesheet")
	fmt.Println("or 'autolog help' for more options.")
	return nil
}

// discoverRepository reads the repository identity from git itself:
// author name and email from config, namespace from the top-level
// directory name.
func discoverRepository(ctx context.Context, runner *git.Runner, repoPath, gitPath string) (document.Repository, document.User, error) {
	namespace, err := git.NamespaceFromGitPath(gitPath)
	if err != nil {
		return document.Repository{}, document.User{}, err
	}

	name, err := runner.UserName(ctx, repoPath)
	if err != nil {
		return document.Repository{}, document.User{}, err
	}
	email, err := runner.UserEmail(ctx, repoPath)
	if err != nil {
		return document.Repository{}, document.User{}, err
	}

	repo := document.Repository{
		ID:        uuid.NewString(),
		Namespace: namespace,
		RepoPath:  repoPath,
		GitPath:   gitPath,
		Name:      name,
		Email:     email,
	}
	user := document.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
	}
	return repo, user, nil
}

// buildRecord attaches the repository to an existing client chosen by the
// user, or prompts for the details of a new one.
func buildRecord(cfg *config.Config, doc document.Document, repo document.Repository, user document.User) (document.ClientRepositories, error) {
	if len(doc) > 0 {
		options := make([]string, 0, len(doc)+1)
		for _, entry := range doc {
			options = append(options, entry.Client.Name)
		}
		options = append(options, "Create a new client")

		choice, err := tui.Select("Which client is this repository for?", options)
		if err != nil {
			return document.ClientRepositories{}, err
		}
		if choice < len(doc) {
			entry := doc[choice]
			repo.ClientName = entry.Client.Name
			repo.ClientAddress = entry.Client.Address
			repo.ClientContactPerson = entry.Client.ContactPerson
			return document.ClientRepositories{
				Client:           entry.Client,
				User:             entry.User,
				Repositories:     []document.Repository{repo},
				RequiresApproval: entry.RequiresApproval,
				Approver:         entry.Approver,
			}, nil
		}
	}

	clientName, err := tui.Input("What is the client's company name?", "", tui.NonEmpty)
	if err != nil {
		return document.ClientRepositories{}, err
	}
	address, err := tui.Input("What is the client's address?", "", nil)
	if err != nil {
		return document.ClientRepositories{}, err
	}
	contact, err := tui.Input("Who is the client's contact person?", "", nil)
	if err != nil {
		return document.ClientRepositories{}, err
	}
	projectNumber, err := tui.Input("Project or PO number (optional)?", "", nil)
	if err != nil {
		return document.ClientRepositories{}, err
	}

	record := document.ClientRepositories{
		Client: &document.Client{
			ID:            uuid.NewString(),
			Name:          clientName,
			Address:       address,
			ContactPerson: contact,
		},
		User: &user,
	}

	requiresApproval := false
	if !cfg.TestMode {
		requiresApproval, err = tui.Confirm("Do timesheets for this client require approval?")
		if err != nil {
			return document.ClientRepositories{}, err
		}
	}
	if requiresApproval {
		approverName, err := tui.Input("Approver's name?", "", tui.NonEmpty)
		if err != nil {
			return document.ClientRepositories{}, err
		}
		approverEmail, err := tui.Input("Approver's email?", "", tui.ValidEmail)
		if err != nil {
			return document.ClientRepositories{}, err
		}
		record.RequiresApproval = true
		record.Approver = &document.Approver{Name: approverName, Email: approverEmail}
	}

	repo.ClientName = record.Client.Name
	repo.ClientAddress = record.Client.Address
	repo.ClientContactPerson = record.Client.ContactPerson
	repo.ProjectNumber = projectNumber
	record.Repositories = []document.Repository{repo}

	return record, nil
}
