package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/citelint/citelint/internal/ai"
	"github.com/citelint/citelint/internal/config"
	"github.com/citelint/citelint/internal/document"
	"github.com/citelint/citelint/internal/engine"
	"github.com/citelint/citelint/internal/format"
	"github.com/citelint/citelint/internal/report"
	"github.com/citelint/citelint/internal/storage"
)

var (
	analyzeSave         bool
	analyzeAICheck      bool
	analyzeAuthorFormat string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the report to the report store")
	analyzeCmd.Flags().BoolVar(&analyzeAICheck, "ai-check", false, "Ask the configured AI endpoint whether unmatched citations plausibly refer to never-cited references")
	analyzeCmd.Flags().StringVar(&analyzeAuthorFormat, "author-format", "", "Author display format: full or abbrev (default from config)")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document>",
	Short: "Check a document's citations against its reference list",
	Long: `Analyze a document (.txt, .md, or .pdf) for citation compliance.

The reference list is located by its heading (参考文献, References,
Bibliography); everything after the last such heading is treated as the
reference section.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// AnalyzeResult is the response for the analyze command.
type AnalyzeResult struct {
	Document      string         `json:"document"`
	Report        *report.Report `json:"report"`
	SavedID       string         `json:"saved_id,omitempty"`
	PriorAnalyses int            `json:"prior_analyses,omitempty"`
	AISuggestions []AISuggestion `json:"ai_suggestions,omitempty"`
}

// AISuggestion pairs an unmatched citation with a never-cited reference
// the AI endpoint judged relevant.
type AISuggestion struct {
	CitationRaw      string `json:"citation_raw"`
	ReferenceOrdinal int    `json:"reference_ordinal"`
	ReferenceRaw     string `json:"reference_raw"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	path := args[0]
	text, err := document.Read(path)
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	formatValue := analyzeAuthorFormat
	if formatValue == "" {
		formatValue = cfg.AuthorFormat
	}
	authorFormat, err := format.ParseAuthorFormat(formatValue)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	region, _ := document.FindReferenceSection(text)
	rep, err := engine.Analyze(text, region, engine.Options{AuthorFormat: authorFormat})
	if err != nil {
		exitWithError(ExitDataError, "analyzing %s: %v", path, err)
	}

	result := AnalyzeResult{Document: path, Report: rep}

	if analyzeAICheck {
		refTexts := document.SplitEntries(text[region.Start:region.End])
		result.AISuggestions = aiSuggestions(cmd.Context(), cfg, rep, refTexts)
	}

	if analyzeSave {
		db, err := storage.OpenDB(config.ReportsDBPath())
		if err != nil {
			exitWithError(ExitConfigError, "opening report store: %v", err)
		}
		defer db.Close()

		prior, err := db.FindByFingerprint(storage.Fingerprint(text))
		if err == nil {
			result.PriorAnalyses = len(prior)
		}
		saved, err := db.Save(path, text, rep)
		if err != nil {
			exitWithError(ExitError, "saving report: %v", err)
		}
		saved.Report = nil // summary is echoed in the result already
		result.SavedID = saved.ID
	}

	if humanOutput {
		printReportHuman(result)
	} else {
		outputJSON(result)
	}
	return nil
}

// aiSuggestions cross-checks unmatched citations against never-cited
// references via the enrichment endpoint. Failures degrade to no
// suggestions; enrichment never blocks the report.
func aiSuggestions(ctx context.Context, cfg *config.Config, rep *report.Report, refTexts []string) []AISuggestion {
	if len(rep.UnusedReferences) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []ai.ClientOption
	if cfg.AIAPIKey != "" {
		opts = append(opts, ai.WithAPIKey(cfg.AIAPIKey))
	}
	if cfg.AIBaseURL != "" {
		opts = append(opts, ai.WithBaseURL(cfg.AIBaseURL))
	}
	if cfg.AIModel != "" {
		opts = append(opts, ai.WithModel(cfg.AIModel))
	}
	client := ai.NewClient(opts...)

	orphanRaw := make(map[int]string)
	for _, ordinal := range rep.UnusedReferences {
		if ordinal >= 1 && ordinal <= len(refTexts) {
			orphanRaw[ordinal] = refTexts[ordinal-1]
		}
	}

	var suggestions []AISuggestion
	for _, res := range rep.Results {
		if res.MatchedReferenceOrdinal != nil || res.Authors == "" {
			continue
		}
		for _, ordinal := range rep.UnusedReferences {
			raw, ok := orphanRaw[ordinal]
			if !ok {
				continue
			}
			relevant, err := client.CheckRelevance(ctx, res.CitationRaw, raw)
			if err != nil {
				return suggestions
			}
			if relevant {
				suggestions = append(suggestions, AISuggestion{
					CitationRaw:      res.CitationRaw,
					ReferenceOrdinal: ordinal,
					ReferenceRaw:     raw,
				})
				break
			}
		}
	}
	return suggestions
}

func printReportHuman(result AnalyzeResult) {
	rep := result.Report
	if rep.Status == report.StatusNoReferences {
		fmt.Printf("%s: no references to match against\n\n", result.Document)
	} else {
		fmt.Printf("%s\n\n", result.Document)
	}
	fmt.Printf("Citations:      %d\n", rep.TotalCitations)
	fmt.Printf("References:     %d\n", rep.TotalReferences)
	fmt.Printf("Matched:        %d (%.1f%%)\n", rep.MatchedCount, rep.MatchRate*100)
	fmt.Printf("Unmatched:      %d\n", rep.UnmatchedCount)
	fmt.Printf("Year mismatches: %d\n", rep.YearMismatchCount)

	if len(rep.CorrectionsNeeded) > 0 {
		fmt.Printf("\nCorrections needed:\n")
		for _, c := range rep.CorrectionsNeeded {
			fmt.Printf("  %s -> %s (reference [%d] says %d)\n", c.Original, c.Corrected, c.ReferenceOrdinal, c.ExpectedYear)
		}
	}
	if len(rep.UnusedReferences) > 0 {
		fmt.Printf("\nNever-cited references: %v\n", rep.UnusedReferences)
	}
	for _, s := range result.AISuggestions {
		fmt.Printf("\n  [AI] %s may refer to [%d] %s\n", s.CitationRaw, s.ReferenceOrdinal, truncateString(s.ReferenceRaw, 70))
	}
	if result.SavedID != "" {
		fmt.Printf("\nSaved as %s\n", result.SavedID)
	}
}
