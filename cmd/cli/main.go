package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"heartbi/domain/heart"
	"heartbi/internal"
	"heartbi/internal/config"
	"heartbi/internal/dataset"
	"heartbi/internal/profiling"
	"heartbi/internal/results"
	"heartbi/internal/scoring"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "heartbi-cli",
		Short:         "Heart-disease dashboard tools: risk score, dataset inspection, result exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// a missing .env is normal outside development
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newInspectCmd(),
		newExportCmd(),
	)
	return rootCmd
}

func newScoreCmd() *cobra.Command {
	var (
		in        scoring.Input
		model     string
		jsonOut   bool
		estimator int
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the toy risk score for one patient",
		Long: `Compute the dashboard's risk score from age, cholesterol and max heart rate.

Example: heartbi-cli score --age 65 --chol 320 --thalach 120 --model RandomForest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := heart.ParseModelChoice(model)
			if err != nil {
				return err
			}
			in.Model = m
			in.Estimators = estimator

			result, err := scoring.Predict(in)
			if err != nil {
				return err
			}
			return printScore(cmd.OutOrStdout(), result, jsonOut)
		},
	}

	cmd.Flags().IntVar(&in.Age, "age", 50, "Age in years (20-80)")
	cmd.Flags().IntVar(&in.Chol, "chol", 250, "Serum cholesterol in mg/dl (100-600)")
	cmd.Flags().IntVar(&in.Thalach, "thalach", 150, "Maximum heart rate achieved (70-220)")
	cmd.Flags().IntVar(&in.CP, "cp", 1, "Chest pain type (1-4)")
	cmd.Flags().StringVar(&model, "model", string(heart.ModelXGBoost), "Model: XGBoost, RandomForest or Logistic")
	cmd.Flags().IntVar(&estimator, "n-estimators", scoring.DefaultEstimators, "Number of trees (50-200, step 10)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON")

	return cmd
}

func printScore(w io.Writer, r scoring.Result, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"probability":  r.Probability,
			"label":        r.Label,
			"model":        r.Input.Model,
			"n_estimators": r.Input.Estimators,
		})
	}

	fmt.Fprintf(w, "🤖 Modèle : %s\n", r.Input.Model.Label())
	fmt.Fprintf(w, "%s  %s\n", r.Label.Display(), r.Percent())
	fmt.Fprintf(w, "🌳 Nombre d'arbres : %d\n", r.Input.Estimators)
	return nil
}

func newInspectCmd() *cobra.Command {
	var (
		file    string
		url     string
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a dataset the way the dashboard does and summarize it",
		Long: `Load a dataset from a local CSV/XLSX file or from a URL and print the
dashboard metrics and descriptive statistics. A dataset that fails to load is
replaced by the fallback sample, exactly as in the dashboard.

Example: heartbi-cli inspect --file heart.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// same defaults as the server
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if url == "" {
				url = cfg.Data.DefaultURL
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Data.FetchTimeout
			}

			level := internal.LogLevelError
			if verbose {
				level = internal.LogLevelDebug
			}
			loader := dataset.NewLoader(&http.Client{Timeout: timeout}, internal.NewLogger(level, cmd.ErrOrStderr()))

			var upload *dataset.Upload
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				upload = &dataset.Upload{Filename: file, Data: data}
			}

			res := loader.Load(cmd.Context(), upload, url)
			printInspect(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Local CSV or XLSX file (default: fetch --url)")
	cmd.Flags().StringVar(&url, "url", "", "Remote CSV used when no file is given (default: $DATASET_URL or the UCI heart dataset)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Remote fetch timeout (default: $FETCH_TIMEOUT or 15s)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log loader diagnostics to stderr")

	return cmd
}

func printInspect(w io.Writer, res *dataset.Result) {
	if res.Warning != "" {
		fmt.Fprintln(w, res.Warning)
		if res.Cause != nil {
			fmt.Fprintf(w, "   cause: %v\n", res.Cause)
		}
	}

	o := profiling.Summarize(res.Dataset)
	fmt.Fprintf(w, "📊 Source : %s\n", o.Source)
	fmt.Fprintf(w, "📏 Lignes : %d\n", o.Rows)
	fmt.Fprintf(w, "🔢 Colonnes : %d\n", o.Columns)
	fmt.Fprintf(w, "🎯 Cas positifs : %s\n", o.PositiveCases)

	stats := profiling.Describe(res.Dataset)
	if len(stats) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t50%\tmax\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n", s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
	}
	tw.Flush()
}

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the model results table as CSV, JSON or XLSX",
		Long: `Write the static model results the dashboard offers for download.

Example: heartbi-cli export --format json -o resultats.json
Use -o - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, filename, err := renderExport(format)
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💾 %s written (%d bytes)\n", output, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv, json or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: the dashboard download name)")

	return cmd
}

func renderExport(format string) ([]byte, string, error) {
	switch format {
	case "csv":
		data, err := results.CSV()
		return data, results.CSVFilename, err
	case "json":
		data, err := results.JSON()
		return data, results.JSONFilename, err
	case "xlsx":
		data, err := results.XLSX()
		return data, results.XLSXFilename, err
	default:
		return nil, "", fmt.Errorf("unknown export format %q (csv, json, xlsx)", format)
	}
}
