package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tripletmatch/internal/inspect"
	"tripletmatch/internal/match"
	"tripletmatch/internal/models"
	"tripletmatch/internal/scan"
	"tripletmatch/internal/storage"
)

var (
	verify          bool
	verifyThreshold int
	noRecord        bool
)

var matchCmd = &cobra.Command{
	Use:   "match <source_folder> <folder1> <folder2> <destination_folder>",
	Short: "Match source images against two folders and copy triples",
	Long: `Match every .jpg in the source folder against two candidate folders
and copy each full match into the destination folder.

The match will:
1. List the source folder (non-recursive) and sort it
2. Index folder1 and folder2 recursively by identifier
3. Copy each fully matched triple, renamed so groups keep source order

Destination names follow {index:04d}_{slot}_{folder}_{original name}, where
slot 1/2/3 is source/folder1/folder2. Source files without a match are
reported and skipped; the run still succeeds.

Example:
  tripletmatch match ./src ./cam1 ./cam2 ./out
  tripletmatch match ./src ./cam1 ./cam2 ./out --verify --threshold 5`,
	Args: cobra.ExactArgs(4),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&verify, "verify", false, "Check matched triples with perceptual hashing")
	matchCmd.Flags().IntVar(&verifyThreshold, "threshold", 10, "Hamming distance above which a verified triple is flagged")
	matchCmd.Flags().BoolVar(&noRecord, "no-record", false, "Skip recording this run in the history database")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	sourceDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	folder1, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	folder2, err := filepath.Abs(args[2])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	destDir, err := filepath.Abs(args[3])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	// Only the source folder must exist; a missing candidate folder just
	// yields an empty index and zero matches.
	info, err := os.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("source folder not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", sourceDir)
	}

	var store *storage.Storage
	if !noRecord {
		store, err = storage.NewStorage(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
	}

	fmt.Printf("Source:  %s\n", sourceDir)
	fmt.Printf("Folder1: %s\n", folder1)
	fmt.Printf("Folder2: %s\n", folder2)
	fmt.Printf("Dest:    %s\n\n", destDir)

	sources, err := scan.ListSource(sourceDir)
	if err != nil {
		return err
	}

	idx1 := scan.BuildIndex(folder1)
	idx2 := scan.BuildIndex(folder2)
	fmt.Printf("Source images:     %d\n", len(sources))
	fmt.Printf("Folder1 candidates: %d\n", idx1.Files())
	fmt.Printf("Folder2 candidates: %d\n\n", idx2.Files())

	opts := []match.Option{match.WithReporter(printOutcome)}
	if verify {
		probe := inspect.NewProbe()
		opts = append(opts, match.WithVerifier(func(g *models.MatchGroup) string {
			report, err := probe.VerifyTriple([3]string{g.SourcePath, g.Folder1Path, g.Folder2Path})
			if err != nil {
				return fmt.Sprintf("verification skipped: %v", err)
			}
			if report.MaxDistance > verifyThreshold {
				return fmt.Sprintf("triple looks dissimilar (max pHash distance %d > %d)",
					report.MaxDistance, verifyThreshold)
			}
			return ""
		}))
	}

	res, err := match.NewMatcher(opts...).Run(sourceDir, sources, idx1, idx2, destDir)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	fmt.Println()
	fmt.Println("=== Match Complete ===")
	fmt.Printf("Source images: %d\n", res.Sources)
	fmt.Printf("Matched:       %d\n", res.Matches)
	fmt.Printf("Skipped:       %d\n", res.Skipped)
	fmt.Printf("Files copied:  %d\n", res.Copied)
	fmt.Printf("Total matches found and processed: %d\n", res.Matches)

	if store != nil {
		rec := &models.RunRecord{
			SourceDir:    sourceDir,
			Folder1:      folder1,
			Folder2:      folder2,
			DestDir:      destDir,
			TotalSources: res.Sources,
			TotalMatches: res.Matches,
			TotalSkipped: res.Skipped,
		}
		if _, err := store.RecordRun(rec, res.Groups); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record run: %v\n", err)
		}
	}

	return nil
}

func printOutcome(o models.Outcome) {
	switch o.Kind {
	case models.OutcomeNoIdentifier:
		fmt.Printf("Could not extract identifier from %s\n", o.SourceFile)
	case models.OutcomeNoMatch:
		fmt.Printf("No match found for identifier: %s\n", o.Identifier)
	case models.OutcomeMultipleCandidates:
		fmt.Printf("Multiple matches found for %s, using the first one from each folder\n", o.Identifier)
	case models.OutcomeMatched:
		fmt.Printf("Matched and copied files with identifier: %s\n", o.Identifier)
	case models.OutcomeVerifyWarning:
		fmt.Printf("Verify %s: %s\n", o.SourceFile, o.Detail)
	}
}
