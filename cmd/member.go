package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/members"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Manage the members listed by /api",
}

var memberAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add one or more members",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMembers(func(store *members.Store) error {
			for _, name := range args {
				m, err := store.Add(cmd.Context(), name)
				if err != nil {
					return fmt.Errorf("adding %q: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", m.Name, m.ID)
			}
			return nil
		})
	},
}

var memberListCmd = &cobra.Command{
	Use:   "list",
	Short: "List members in /api order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMembers(func(store *members.Store) error {
			list, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No members.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tNAME\tID\tADDED")
			for _, m := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.Position, m.Name, m.ID, m.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

var memberRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a member by name",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMembers(func(store *members.Store) error {
			name := strings.TrimSpace(args[0])
			if err := store.Remove(cmd.Context(), name); err != nil {
				if errors.Is(err, members.ErrNotFound) {
					return fmt.Errorf("no member named %q", name)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			return nil
		})
	},
}

// withMembers opens the configured database for the duration of fn.
func withMembers(fn func(store *members.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(members.NewStore(database))
}

func init() {
	memberCmd.AddCommand(memberAddCmd, memberListCmd, memberRemoveCmd)
	rootCmd.AddCommand(memberCmd)
}
