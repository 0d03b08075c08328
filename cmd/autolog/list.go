package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	if len(doc) == 0 {
		fmt.Println("No clients found. Run 'autolog init' to onboard a repository.")
		return nil
	}

	fmt.Println(renderDocument(doc))
	return nil
}
