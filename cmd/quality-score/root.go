package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"dataquality_backend/internal/quality/matcher"
	"dataquality_backend/internal/quality/scoring"
	"dataquality_backend/internal/quality/service"
	"dataquality_backend/internal/quality/transport"
	"dataquality_backend/internal/refdata"
	"dataquality_backend/platform/config"
	"dataquality_backend/platform/logger"
	"dataquality_backend/platform/phone"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

type options struct {
	dataset string
	record  string
	now     string
	region  string
	submit  bool
	pretty  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "quality-score",
		Short: "Score the data quality of a customer record",
		Long: `Score the data quality of a customer record against the postcode reference dataset.
The record is a JSON object of string fields (email, phone_number, street, postcode, city,
last_confirmed_date) read from --record or stdin. The report is written to stdout as JSON.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// flags win over the environment the API server reads
			opts.dataset = v.GetString("dataset")
			opts.region = v.GetString("region")
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataset, "dataset", "d", "data/PC62023NL.csv", "Reference postcode dataset (CSV)")
	cmd.Flags().StringVarP(&opts.record, "record", "r", "-", "Record JSON file, - for stdin")
	cmd.Flags().StringVar(&opts.now, "now", "", "Score as of this date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&opts.region, "region", phone.DefaultRegion, "Region for phone numbers without a country code")
	cmd.Flags().BoolVar(&opts.submit, "submit", false, "Mark the record as confirmed today before scoring")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the JSON output")

	cobra.CheckErr(v.BindPFlag("dataset", cmd.Flags().Lookup("dataset")))
	cobra.CheckErr(v.BindPFlag("region", cmd.Flags().Lookup("region")))
	cobra.CheckErr(v.BindEnv("dataset", "REFERENCE_DATASET_PATH"))
	cobra.CheckErr(v.BindEnv("region", "PHONE_DEFAULT_REGION"))

	return cmd
}

type output struct {
	Record scoring.Record          `json:"record,omitempty"`
	Report transport.ScoreResponse `json:"report"`
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	clock := time.Now
	if opts.now != "" {
		fixed, err := time.ParseInLocation(dateLayout, opts.now, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --now %q: expected YYYY-MM-DD", opts.now)
		}
		clock = func() time.Time { return fixed }
	}

	record, err := readRecord(stdin, opts.record)
	if err != nil {
		return err
	}

	index, err := refdata.Load(opts.dataset)
	if err != nil {
		return err
	}

	m := matcher.New(index)
	scorer := scoring.New(m, scoring.WithClock(clock), scoring.WithPhoneRegion(opts.region))
	svc := service.New(scorer, m, &config.Config{BatchMaxRecords: 1, ScoreWorkers: 1}, logger.Discard())

	var out output
	var report scoring.Report
	if opts.submit {
		record, report = svc.Submit(ctx, record)
		out.Record = record
	} else {
		report = svc.Score(ctx, record)
	}
	out.Report = transport.NewScoreResponse(record, report, svc.Region())

	enc := json.NewEncoder(stdout)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func readRecord(stdin io.Reader, path string) (scoring.Record, error) {
	src := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open record: %w", err)
		}
		defer f.Close()
		src = f
	}

	var raw map[string]any
	if err := json.NewDecoder(src).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return transport.ToRecord(raw), nil
}
