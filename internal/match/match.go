// Package match pairs source images with their candidates and emits the
// renamed triples.
package match

import (
	"fmt"
	"path/filepath"

	"tripletmatch/internal/fileutil"
	"tripletmatch/internal/ident"
	"tripletmatch/internal/models"
	"tripletmatch/internal/scan"
)

// Matcher walks the source listing in order, looks each identifier up in
// both candidate indices and copies every full match into the destination
// directory as a renamed triple.
//
// A destination name encodes the group index, the slot and the originating
// folder: {index:04d}_{slot}_{folder}_{basename}. Re-running over the same
// destination overwrites files of the same derived name; nothing
// deduplicates across runs.
type Matcher struct {
	reporter func(models.Outcome)
	verifier func(*models.MatchGroup) string
}

// Option configures a Matcher
type Option func(*Matcher)

// WithReporter sets a callback receiving one Outcome per reportable event.
func WithReporter(fn func(models.Outcome)) Option {
	return func(m *Matcher) {
		m.reporter = fn
	}
}

// WithVerifier sets a callback run on each emitted group after its copies
// complete. A non-empty return value is reported as a verification warning;
// it never affects matching or copying.
func WithVerifier(fn func(*models.MatchGroup) string) Option {
	return func(m *Matcher) {
		m.verifier = fn
	}
}

// NewMatcher creates a new Matcher
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run processes sources (names inside sourceDir, already filtered and
// sorted) against the two indices and copies each full match into destDir,
// which is created along with missing parents. Per-file failures to match
// are reported and skipped; a copy failure aborts the pass with no rollback
// of copies already made.
func (m *Matcher) Run(sourceDir string, sources []string, idx1, idx2 scan.Index, destDir string) (*models.RunResult, error) {
	if err := fileutil.EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("failed to create destination folder: %w", err)
	}

	res := &models.RunResult{Sources: len(sources)}
	srcName := filepath.Base(filepath.Clean(sourceDir))

	for index, name := range sources {
		id, ok := ident.Extract(name)
		if !ok {
			m.report(models.Outcome{Kind: models.OutcomeNoIdentifier, SourceFile: name})
			res.Skipped++
			continue
		}

		path1, ok1 := idx1.First(id)
		path2, ok2 := idx2.First(id)
		if !ok1 || !ok2 {
			m.report(models.Outcome{Kind: models.OutcomeNoMatch, SourceFile: name, Identifier: id})
			res.Skipped++
			continue
		}

		if len(idx1[id]) > 1 || len(idx2[id]) > 1 {
			m.report(models.Outcome{Kind: models.OutcomeMultipleCandidates, SourceFile: name, Identifier: id})
		}

		group := &models.MatchGroup{
			Index:       index,
			Identifier:  id,
			SourcePath:  filepath.Join(sourceDir, name),
			Folder1Path: path1,
			Folder2Path: path2,
		}
		group.DestNames = [3]string{
			destName(index, models.SlotSource, srcName, name),
			destName(index, models.SlotFolder1, parentName(path1), filepath.Base(path1)),
			destName(index, models.SlotFolder2, parentName(path2), filepath.Base(path2)),
		}

		for i, src := range []string{group.SourcePath, group.Folder1Path, group.Folder2Path} {
			if err := fileutil.CopyFile(src, filepath.Join(destDir, group.DestNames[i])); err != nil {
				return res, fmt.Errorf("failed to copy %s: %w", src, err)
			}
			res.Copied++
		}

		res.Matches++
		res.Groups = append(res.Groups, group)
		m.report(models.Outcome{Kind: models.OutcomeMatched, SourceFile: name, Identifier: id})

		if m.verifier != nil {
			if detail := m.verifier(group); detail != "" {
				m.report(models.Outcome{Kind: models.OutcomeVerifyWarning, SourceFile: name, Identifier: id, Detail: detail})
			}
		}
	}

	return res, nil
}

func (m *Matcher) report(o models.Outcome) {
	if m.reporter != nil {
		m.reporter(o)
	}
}

// destName derives the destination filename for one slot of a group. The
// zero-padded index sorts groups by source order; indices past 9999 simply
// widen the field.
func destName(index, slot int, folder, basename string) string {
	return fmt.Sprintf("%04d_%d_%s_%s", index, slot, folder, basename)
}

// parentName returns the name of the directory holding a matched candidate,
// used as the folder tag in its destination name.
func parentName(path string) string {
	return filepath.Base(filepath.Dir(path))
}
