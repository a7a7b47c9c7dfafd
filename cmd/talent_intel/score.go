package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-intel/internal/config"
	"github.com/jonathan/talent-intel/internal/embedding"
	"github.com/jonathan/talent-intel/internal/fetch"
	"github.com/jonathan/talent-intel/internal/llm"
	"github.com/jonathan/talent-intel/internal/observability"
	"github.com/jonathan/talent-intel/internal/parsing"
	"github.com/jonathan/talent-intel/internal/scoring"
	"github.com/jonathan/talent-intel/internal/types"
)

var scoreCommand = &cobra.Command{
	Use:   "score",
	Short: "Score a batch of resumes against a job description",
	Long: `Runs the full scoring pipeline offline: fetch or read the job posting,
structure it and the resumes with the LLM, score every resume, and print the
ranked candidates.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScoreCmd,
}

var (
	scoreConfigPath  string
	scoreJob         string
	scoreJobURL      string
	scoreResumes     []string
	scoreResumesDir  string
	scoreDetectAI    bool
	scoreAPIKey      string
	scoreUseBrowser  bool
	scoreVerbose     bool
	scoreInteractive bool
	scoreConcurrency int
)

func init() {
	scoreCommand.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scoreCommand.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	scoreCommand.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	scoreCommand.Flags().StringSliceVarP(&scoreResumes, "resume", "r", nil, "Path to a resume text file (repeatable)")
	scoreCommand.Flags().StringVar(&scoreResumesDir, "resumes-dir", "", "Directory of resume text files")
	scoreCommand.Flags().BoolVar(&scoreDetectAI, "detect-ai", false, "Audit each resume for AI-generated content")
	scoreCommand.Flags().BoolVar(&scoreUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	scoreCommand.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")
	scoreCommand.Flags().BoolVarP(&scoreInteractive, "interactive", "i", false, "Enter the approve/reject feedback loop after scoring")
	scoreCommand.Flags().IntVar(&scoreConcurrency, "concurrency", 0, "Parallel resume scoring workers")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	scoreCommand.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if scoreConfigPath != "" {
		loadedCfg, err := config.LoadConfig(scoreConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if scoreVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", scoreConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("job") {
		cfg.Job = scoreJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = scoreJobURL
	}
	if cmd.Flags().Changed("resume") {
		cfg.Resumes = scoreResumes
	}
	if cmd.Flags().Changed("resumes-dir") {
		cfg.ResumesDir = scoreResumesDir
	}
	if cmd.Flags().Changed("detect-ai") {
		cfg.DetectAI = scoreDetectAI
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = scoreUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scoreVerbose
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = scoreConcurrency
	}

	// Step 3: Validate required fields
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if len(cfg.Resumes) == 0 && cfg.ResumesDir == "" {
		return fmt.Errorf("at least one --resume or a --resumes-dir must be provided")
	}

	// Step 4: API key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		devLogger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		logger = devLogger
		defer func() { _ = logger.Sync() }()
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	embedder, err := embedding.NewGemini(ctx, cfg.APIKey, embedding.DefaultModel)
	if err != nil {
		return fmt.Errorf("failed to create embedding client: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	parser := parsing.New(llmClient)
	printer := observability.NewPrinter(os.Stdout)

	// Step 5: Resolve and parse the job description
	jobText, err := resolveJobText(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	job, err := parser.ParseJobRecord(ctx, jobText)
	if err != nil {
		return fmt.Errorf("failed to parse job posting: %w", err)
	}
	if cfg.Verbose {
		printer.PrintJobRecord(job)
	}

	// Step 6: Load and parse the resumes
	inputs, err := loadResumeInputs(cfg.Resumes, cfg.ResumesDir)
	if err != nil {
		return err
	}

	auditor := parsing.NewAuditor(parser)
	resumes := make([]*types.ResumeRecord, 0, len(inputs))
	for _, input := range inputs {
		if cfg.DetectAI {
			auditor.Register(input.ref, input.text)
		}
		record, err := parser.ParseResumeRecord(ctx, input.ref, input.text)
		if err != nil {
			// The raw text still scores: it becomes the experience section
			// and the other signals degrade.
			logger.Warn("resume extraction failed, scoring raw text",
				zap.String("ref", input.ref),
				zap.Error(err),
			)
			record = &types.ResumeRecord{
				Ref:               input.ref,
				ExperienceBullets: []string{input.text},
			}
		}
		resumes = append(resumes, record)
	}

	// Step 7: Score the batch
	weights := weightsFromConfig(cfg.Weights)
	policy := scoring.DefaultPolicy()
	if cfg.Concurrency > 0 {
		policy.Concurrency = cfg.Concurrency
	}

	var assessor scoring.AIAssessor
	if cfg.DetectAI {
		assessor = auditor
	}
	scorer := scoring.NewScorer(scoring.ScorerConfig{
		Embedder: embedder,
		Assessor: assessor,
		Policy:   policy,
		Logger:   logger,
	})

	results, err := scorer.ScoreAll(ctx, job, resumes, weights)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	printer.PrintRankedResults(results)

	if scoreInteractive {
		return feedbackLoop(ctx, os.Stdin, os.Stdout, printer, scorer, policy, job, resumes, weights, results)
	}
	return nil
}

// resolveJobText reads the job posting from the configured file or URL.
func resolveJobText(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(data), nil
	}

	text, err := fetch.Posting(ctx, cfg.JobURL, &fetch.PostingOptions{
		UseBrowser: cfg.UseBrowser,
		Logger:     logger,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return text, nil
}

// resumeInput pairs a resume's ref (its file name) with its raw text.
type resumeInput struct {
	ref  string
	text string
}

// resumeExtensions are the file types read from a resumes directory.
var resumeExtensions = map[string]bool{".txt": true, ".md": true}

// loadResumeInputs reads resume text from explicit file paths and from every
// text file in the directory, deduplicating by ref.
func loadResumeInputs(paths []string, dir string) ([]resumeInput, error) {
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read resumes directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !resumeExtensions[filepath.Ext(entry.Name())] {
				continue
			}
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	seen := make(map[string]bool)
	inputs := make([]resumeInput, 0, len(paths))
	for _, path := range paths {
		ref := filepath.Base(path)
		if seen[ref] {
			continue
		}
		seen[ref] = true

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("resume %s is empty", path)
		}
		inputs = append(inputs, resumeInput{ref: ref, text: string(data)})
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no resume files found")
	}
	return inputs, nil
}

// weightsFromConfig converts the config file weight block to a normalized
// vector, falling back to the defaults when absent.
func weightsFromConfig(w *config.Weights) types.WeightVector {
	if w == nil {
		return types.DefaultWeights()
	}
	return types.WeightVector{
		Experience: w.Experience,
		Skills:     w.Skills,
		Trajectory: w.Trajectory,
	}.Normalized()
}

// feedbackLoop reads approve/reject commands from the recruiter and adapts
// the weight vector, rescoring on demand.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func feedbackLoop(ctx context.Context, in io.Reader, out io.Writer, printer *observability.Printer, scorer *scoring.Scorer, policy scoring.Policy, job *types.JobRecord, resumes []*types.ResumeRecord, weights types.WeightVector, results []types.ScoreResult) error {
	fmt.Fprintln(out, "Feedback: approve <ref> | reject <ref> | rescore | weights | quit")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		verb, arg := parseFeedbackCommand(scanner.Text())

		switch verb {
		case "":
			continue
		case "quit", "q", "exit":
			return nil
		case "weights":
			printer.PrintWeights(weights)
		case "rescore":
			rescored, err := scorer.ScoreAll(ctx, job, resumes, weights)
			if err != nil {
				return fmt.Errorf("rescoring failed: %w", err)
			}
			results = rescored
			printer.PrintRankedResults(results)
		case "approve", "a", "reject", "r":
			result := findResult(results, arg)
			if result == nil {
				fmt.Fprintf(out, "no candidate %q in the current ranking\n", arg)
				continue
			}
			approve := verb == "approve" || verb == "a"
			weights = policy.AdjustWeights(weights, result, approve)
			printer.PrintWeights(weights)
		default:
			fmt.Fprintf(out, "unknown command %q\n", verb)
		}
	}
}

// parseFeedbackCommand splits one feedback line into its verb and argument.
func parseFeedbackCommand(line string) (verb, arg string) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return "", ""
	}
	verb = strings.ToLower(fields[0])
	if len(fields) > 1 {
		arg = fields[1]
	}
	return verb, arg
}

// findResult locates a candidate by ref in the current ranking.
func findResult(results []types.ScoreResult, ref string) *types.ScoreResult {
	for i := range results {
		if results[i].Ref == ref {
			return &results[i]
		}
	}
	return nil
}
