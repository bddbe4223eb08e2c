package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mzyy94/spoolsniff/internal/config"
	"github.com/mzyy94/spoolsniff/internal/datastream"
	"github.com/mzyy94/spoolsniff/internal/spool"
)

func newClassifyCmd(v *viper.Viper) *cobra.Command {
	var (
		offset  int
		length  int
		verbose bool
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Print the data stream type of each file (- reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sp *spool.Spooler
			if outDir != "" {
				sp = spool.New(config.NewMemoryStore(), spool.Options{OutputDir: outDir, MaxJobSize: v.GetInt("max_job_size")})
			}
			failed := false
			for _, name := range args {
				if err := classifyFile(cmd.Context(), cmd.OutOrStdout(), name, offset, length, verbose, sp); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, err)
					failed = true
				}
			}
			if failed {
				return errors.New("some files could not be classified")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&offset, "offset", 0, "start of the window")
	f.IntVar(&length, "length", -1, "window length (-1 = to end of file)")
	f.BoolVarP(&verbose, "verbose", "v", false, "show AFP and SCS verdicts")
	f.StringVar(&outDir, "spool", "", "also spool each file into this directory")
	return cmd
}

func classifyFile(ctx context.Context, w io.Writer, name string, offset, length int, verbose bool, sp *spool.Spooler) error {
	data, err := readInput(name)
	if err != nil {
		return err
	}
	if length < 0 {
		length = len(data) - offset
	}
	report, err := datastream.Analyze(data, offset, length)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(w, "%s\t%s\tafp=%s\tscs=%s\tbytes=%d\n", name, report.Type, report.AFP, report.SCS, report.Length)
	} else {
		fmt.Fprintf(w, "%s\t%s\n", name, report.Type)
	}

	if sp != nil {
		job := spool.NewJob(name, spool.SourceCLI, data[offset:offset+length])
		res, err := sp.Submit(ctx, job)
		if err != nil {
			return err
		}
		if res.Path != "" {
			fmt.Fprintf(w, "%s\t-> %s\n", name, res.Path)
		}
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the SCS commands recognised by the classifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tSEQUENCE")
			for _, c := range datastream.Commands() {
				fmt.Fprintf(tw, "%s\t%s\t% X\n", c.Name, c.Kind, c.Sample())
			}
			return tw.Flush()
		},
	}
}
