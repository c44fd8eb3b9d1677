package models

import "time"

// Slot positions within an emitted triple. The slot keeps the three files of
// a group adjacent when the destination directory is sorted by name.
const (
	SlotSource  = 1
	SlotFolder1 = 2
	SlotFolder2 = 3
)

// MatchGroup is one fully matched triple: a source file plus the first
// candidate from each of the two search folders sharing its identifier.
// Index is the source file's position in the sorted source listing and
// determines output ordering.
type MatchGroup struct {
	Index       int       `json:"index"`
	Identifier  string    `json:"identifier"`
	SourcePath  string    `json:"source_path"`
	Folder1Path string    `json:"folder1_path"`
	Folder2Path string    `json:"folder2_path"`
	DestNames   [3]string `json:"dest_names"`
}

// OutcomeKind classifies what happened to one source file during a pass.
type OutcomeKind int

const (
	// OutcomeMatched means a full triple was found and copied.
	OutcomeMatched OutcomeKind = iota
	// OutcomeNoIdentifier means the filename has no trailing digit run.
	OutcomeNoIdentifier
	// OutcomeNoMatch means the identifier is missing from one or both indices.
	OutcomeNoMatch
	// OutcomeMultipleCandidates is an informational notice that an index held
	// more than one path for the identifier and the first was used.
	OutcomeMultipleCandidates
	// OutcomeVerifyWarning is an informational notice from triple verification.
	OutcomeVerifyWarning
)

// Outcome is a single reportable event for one source file.
type Outcome struct {
	Kind       OutcomeKind
	SourceFile string
	Identifier string
	Detail     string
}

// RunResult summarizes one complete matching pass.
type RunResult struct {
	Sources int           `json:"sources"`
	Matches int           `json:"matches"`
	Skipped int           `json:"skipped"`
	Copied  int           `json:"copied"`
	Groups  []*MatchGroup `json:"groups"`
}

// RunRecord is a persisted match run for the history listing.
type RunRecord struct {
	ID           int64     `json:"id"`
	SourceDir    string    `json:"source_dir"`
	Folder1      string    `json:"folder1"`
	Folder2      string    `json:"folder2"`
	DestDir      string    `json:"dest_dir"`
	MatchedAt    time.Time `json:"matched_at"`
	TotalSources int       `json:"total_sources"`
	TotalMatches int       `json:"total_matches"`
	TotalSkipped int       `json:"total_skipped"`
}

// ImageProbe holds decoded metadata for one file of a verified triple.
type ImageProbe struct {
	Path    string `json:"path"`
	Hash    uint64 `json:"hash"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"format"`
	HasExif bool   `json:"has_exif"`
}
