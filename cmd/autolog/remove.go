package main

import (
	"errors"
	"fmt"

	"github.com/autolog-dev/autolog/internal/document"
	"github.com/autolog-dev/autolog/internal/tui"
	"github.com/spf13/cobra"
)

func runRemove(cmd *cobra.Command, args []string) error {
	clientName, _ := cmd.Flags().GetString("client")
	namespace, _ := cmd.Flags().GetString("namespace")

	if clientName == "" && namespace == "" {
		return errors.New("pass --namespace to remove a repository or --client to remove a client")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	target := namespace
	if namespace == "" {
		target = fmt.Sprintf("client %q and all its repositories", clientName)
	}
	ok, err := confirm(cfg, fmt.Sprintf("Remove %s? This cannot be undone.", target))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Nothing removed.")
		return nil
	}

	if namespace != "" {
		doc, err = document.RemoveRepository(doc, clientName, namespace)
	} else {
		doc, err = document.RemoveClient(doc, clientName)
	}
	if err != nil {
		return notFoundHint(err)
	}

	if len(doc) == 0 {
		// last client gone; drop the document so the next init
		// re-bootstraps from scratch
		if err := st.Delete(); err != nil {
			return err
		}
		fmt.Println(tui.SuccessStyle.Render("Removed — no clients left, configuration deleted."))
		return nil
	}

	if err := st.Save(doc); err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render("Removed \U0001F389"))
	return nil
}
