package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCmdPin creates the pin command for managing pinned repositories.
func NewCmdPin() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage pinned repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			pinned := s.Pinned()
			if len(pinned) == 0 {
				fmt.Println("No pinned repositories.")
				return nil
			}
			for _, p := range pinned {
				fmt.Println(p)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <owner/name>",
		Short: "Pin a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := splitRepoArg(args[0]); err != nil {
				return err
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Pin(args[0]); err != nil {
				return fmt.Errorf("failed to pin %s: %w", args[0], err)
			}
			fmt.Printf("Pinned %s.\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <owner/name>",
		Short: "Unpin a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Unpin(args[0]); err != nil {
				return fmt.Errorf("failed to unpin %s: %w", args[0], err)
			}
			fmt.Printf("Unpinned %s.\n", args[0])
			return nil
		},
	})

	return cmd
}

// NewCmdFav creates the fav command for managing favorite users.
func NewCmdFav() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "Manage favorite users",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			favorites := s.Favorites()
			if len(favorites) == 0 {
				fmt.Println("No favorite users.")
				return nil
			}
			for _, f := range favorites {
				fmt.Println(f)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <login>",
		Short: "Add a favorite user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Favorite(args[0]); err != nil {
				return fmt.Errorf("failed to favorite %s: %w", args[0], err)
			}
			fmt.Printf("Added %s to favorites.\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <login>",
		Short: "Remove a favorite user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Unfavorite(args[0]); err != nil {
				return fmt.Errorf("failed to unfavorite %s: %w", args[0], err)
			}
			fmt.Printf("Removed %s from favorites.\n", args[0])
			return nil
		},
	})

	return cmd
}

// NewCmdHistory creates the history command for the search history.
func NewCmdHistory() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			history := s.History()
			if len(history) == 0 {
				fmt.Println("No search history.")
				return nil
			}
			for _, e := range history {
				fmt.Printf("%s  %s\n", e.SearchedAt.Format("2006-01-02 15:04"), e.Query)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the search history",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.ClearHistory(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Println("Search history cleared.")
			return nil
		},
	})

	return cmd
}
