// ABOUTME: Store command group for vector store management
// ABOUTME: Subcommands create, list, delete, ingest into, and search stores
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewStoreCmd creates the store command with its subcommands
func NewStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage vector stores",
		Long:  `Create, list, delete, and search the vector stores backing retrieval.`,
	}

	cmd.AddCommand(newStoreCreateCmd())
	cmd.AddCommand(newStoreListCmd())
	cmd.AddCommand(newStoreDeleteCmd())
	cmd.AddCommand(newStoreAddCmd())
	cmd.AddCommand(newStoreSearchCmd())
	return cmd
}

func newStoreCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new vector store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStack()
			if err != nil {
				return err
			}
			defer st.Close()

			info, err := st.stores.CreateStore(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created store %s (%s)\n", info.ID, info.Name)
			return nil
		},
	}
}

func newStoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vector stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStack()
			if err != nil {
				return err
			}
			defer st.Close()

			stores, err := st.stores.ListStores(context.Background())
			if err != nil {
				return err
			}
			if len(stores) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No vector stores yet")
				}
				return nil
			}
			for _, info := range stores {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					info.ID, info.CreatedAt.Format("2006-01-02"), info.Name)
			}
			return nil
		},
	}
}

func newStoreDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [store-id]",
		Short: "Delete a vector store and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStack()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.stores.DeleteStore(context.Background(), args[0]); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted store %s\n", args[0])
			}
			return nil
		},
	}
}

func newStoreAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add [store-id] [file]",
		Short: "Ingest a text file into a vector store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			if name == "" {
				name = args[1]
			}

			st, err := buildStack()
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := st.stores.AddDocument(context.Background(), args[0], name, string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d chunks) to %s\n", doc.ID, doc.Chunks, args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "document name (defaults to the file path)")
	return cmd
}

func newStoreSearchCmd() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "search [store-id] [query]",
		Short: "Similarity-search a vector store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := buildStack()
			if err != nil {
				return err
			}
			defer st.Close()

			results, err := st.stores.Search(context.Background(), []string{args[0]}, args[1], maxResults)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				}
				return nil
			}
			for i, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%.3f] %s: %s\n",
					i+1, r.Score, r.DocumentName, truncate(r.Text, 120))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxResults, "max-results", 5, "maximum number of results")
	return cmd
}
