package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "tripletmatch",
	Short: "Match and copy grouped images across three folders",
	Long: `tripletmatch pairs images across three folders by a shared identifier
and copies each full match into a destination folder as a renamed triple.

The identifier is the digit run at the end of a filename (before .jpg) with
its last five digits dropped. Every image in the source folder is looked up
in two candidate folders; when both hold a match, all three files are copied
with names that keep the groups in source order.

Example usage:
  tripletmatch match ./src ./cam1 ./cam2 ./out   # Match and copy triples
  tripletmatch match ./src ./cam1 ./cam2 ./out --verify
  tripletmatch history                           # List past match runs`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Default database path
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".tripletmatch", "history.db")

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "Path to SQLite history database")
}
