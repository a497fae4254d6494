package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subweave/internal/glossary"
)

func newGlossaryCommand(ctx *commandContext) *cobra.Command {
	glossaryCmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage the persistent translation glossary",
	}

	glossaryCmd.AddCommand(newGlossaryListCommand(ctx))
	glossaryCmd.AddCommand(newGlossarySetCommand(ctx))
	glossaryCmd.AddCommand(newGlossaryRemoveCommand(ctx))
	glossaryCmd.AddCommand(newGlossaryImportCommand(ctx))

	return glossaryCmd
}

func newGlossaryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List glossary terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.glossaryStore()
			if err != nil {
				return err
			}
			entries, err := store.Load()
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Glossary is empty.")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, term := range entries.Terms() {
				rows = append(rows, []string{term, entries[term]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"TERM", "TRANSLATION"}, rows, nil))
			return nil
		},
	}
}

func newGlossarySetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <term> <translation>",
		Short: "Add or update a glossary term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(args[0])
			translation := strings.TrimSpace(args[1])
			if term == "" || translation == "" {
				return fmt.Errorf("term and translation must be non-empty")
			}
			store, err := ctx.glossaryStore()
			if err != nil {
				return err
			}
			if err := store.Save(glossary.Glossary{term: translation}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q -> %q\n", term, translation)
			return nil
		},
	}
}

func newGlossaryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <term>...",
		Aliases: []string{"remove"},
		Short:   "Remove glossary terms",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.glossaryStore()
			if err != nil {
				return err
			}
			removed, err := store.Delete(args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d term(s)\n", removed)
			return nil
		},
	}
}

func newGlossaryImportCommand(ctx *commandContext) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import terms from a JSON or term=translation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := glossary.ParseFile(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("no glossary terms found in %s", args[0])
			}
			store, err := ctx.glossaryStore()
			if err != nil {
				return err
			}
			if replace {
				err = store.Replace(entries)
			} else {
				err = store.Save(entries)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d term(s) into %s\n", len(entries), store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the stored glossary instead of merging")
	return cmd
}
