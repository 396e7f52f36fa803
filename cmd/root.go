package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nathangeffen/ziggie/macro"
	"github.com/nathangeffen/ziggie/macro/table"
)

var (
	// CLI flags shared by the simulation commands
	logLevel    string // Log verbosity level
	seed        int64  // Master seed for noise streams (0 = time-derived)
	output      string // CSV output path (empty = stdout)
	concatNames string // Separator to join group name paths into one column
	noHeader    bool   // Omit the CSV header row
	runs        int    // Number of independent repetitions of the model list
	workers     int    // Worker bound for repeated runs (0 = one per CPU)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ziggie",
	Short: "Discrete-time compartmental modelling of infectious diseases",
}

// runCmd simulates the models in a YAML file and writes the series as CSV
var runCmd = &cobra.Command{
	Use:   "run <modelfile.yaml>",
	Short: "Run the models in a YAML file and export the series as CSV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		list, err := LoadModelFile(args[0])
		if err != nil {
			logrus.Fatalf("Unable to load model file: %v", err)
		}

		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		opts := table.Options{
			Header:       !noHeader,
			ConcatNames:  concatNames,
			IncludeIdent: runs > 1,
		}

		startTime := time.Now()
		rows, err := simulateRows(list, opts)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulated %d model(s) x %d run(s) in %v", len(list), runs, time.Since(startTime))

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				logrus.Fatalf("Unable to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		if err := table.WriteCSV(out, rows); err != nil {
			logrus.Fatalf("Unable to write CSV: %v", err)
		}
	},
}

// simulateRows runs the list once, or several times in parallel when
// --runs is above one, and flattens the output.
func simulateRows(list macro.ModelList, opts table.Options) ([][]string, error) {
	if runs <= 1 {
		series, err := macro.SimulateSeeded(list, seed)
		if err != nil {
			return nil, err
		}
		return table.Series(series, opts), nil
	}

	lists := make([]macro.ModelList, runs)
	for i := range lists {
		lists[i] = list
	}
	results, err := macro.SimulateMany(lists, workers, seed)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for i, res := range results {
		batchOpts := opts
		batchOpts.Header = opts.Header && i == 0
		rows = append(rows, table.Series(res.Series, batchOpts)...)
	}
	return rows, nil
}

func init() {
	runCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed for noise streams (0 = time-derived)")
	runCmd.Flags().StringVarP(&output, "output", "o", "", "CSV output path (default stdout)")
	runCmd.Flags().StringVar(&concatNames, "concat-names", "", "Join group name path into one column with this separator")
	runCmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the CSV header row")
	runCmd.Flags().IntVar(&runs, "runs", 1, "Independent repetitions of the model list (for sensitivity analysis)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Worker bound for repeated runs (0 = one per CPU)")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
