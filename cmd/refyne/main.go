// Command refyne is a small CLI around the Refyne client for one-off
// extractions and job inspection.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/refyne/refyne-go/pkg/client"
	"github.com/refyne/refyne-go/pkg/logging"
	"github.com/refyne/refyne-go/pkg/pagination"
)

// cliConfig is populated from the environment.
type cliConfig struct {
	APIKey     string        `env:"REFYNE_API_KEY"`
	BaseURL    string        `env:"REFYNE_BASE_URL" envDefault:"https://api.refyne.uk"`
	Timeout    time.Duration `env:"REFYNE_TIMEOUT" envDefault:"30s"`
	MaxRetries int           `env:"REFYNE_MAX_RETRIES" envDefault:"3"`
	LogLevel   string        `env:"REFYNE_LOG_LEVEL" envDefault:"warn"`
	NoCache    bool          `env:"REFYNE_NO_CACHE"`
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "refyne",
		Short:         "Refyne web extraction API client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(extractCmd())
	cmd.AddCommand(usageCmd())
	cmd.AddCommand(jobsCmd())

	return cmd
}

// newClient builds a client from the environment.
func newClient() (*client.Client, error) {
	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: true,
		Output: os.Stderr,
	})

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("REFYNE_API_KEY is not set")
	}

	return client.New(client.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		Timeout:         cfg.Timeout,
		MaxRetries:      cfg.MaxRetries,
		CacheEnabled:    !cfg.NoCache,
		UserAgentSuffix: "cli",
	})
}

func extractCmd() *cobra.Command {
	var schemaFile string
	var fetchMode string

	cmd := &cobra.Command{
		Use:   "extract URL",
		Short: "Extract structured data from a single page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := os.ReadFile(schemaFile)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			resp, err := c.Extract(cmd.Context(), client.ExtractRequest{
				URL:       args[0],
				Schema:    schema,
				FetchMode: client.FetchMode(fetchMode),
			})
			if err != nil {
				return err
			}

			return printJSON(resp.Data)
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "path to the extraction schema (JSON)")
	cmd.Flags().StringVar(&fetchMode, "fetch-mode", string(client.FetchModeAuto), "fetch mode: auto, static or dynamic")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show usage for the current billing period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			usage, err := c.GetUsage(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Jobs:    %d (%d BYOK)\n", usage.TotalJobs, usage.BYOKJobs)
			fmt.Printf("Charged: $%.4f\n", usage.TotalChargedUSD)
			return nil
		},
	}
}

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect crawl jobs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			pager := pagination.NewPager(c, pagination.DefaultConfig())
			return pager.Each(cmd.Context(), func(job client.Job) error {
				fmt.Printf("%s  %-9s  %s\n", job.ID, job.Status, job.URL)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			job, err := c.GetJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(job, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	})

	cmd.AddCommand(jobsResultsCmd())
	cmd.AddCommand(jobsWaitCmd())

	return cmd
}

func jobsResultsCmd() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "results ID",
		Short: "Show the results of a finished job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			results, err := c.GetJobResults(cmd.Context(), args[0], merge)
			if err != nil {
				return err
			}

			if merge {
				return printJSON(results.Merged)
			}
			for _, r := range results.Results {
				if err := printJSON(r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "merge all page results into a single object")

	return cmd
}

func jobsWaitCmd() *cobra.Command {
	var pollInterval time.Duration

	cmd := &cobra.Command{
		Use:   "wait ID",
		Short: "Poll a job until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			job, err := waitForJob(cmd.Context(), c, args[0], pollInterval)
			if err != nil {
				return err
			}

			fmt.Printf("%s  %s  pages=%d  cost=$%.4f\n",
				job.ID, job.Status, job.PageCount, job.CostUSD)
			if job.Status == client.JobStatusFailed {
				return fmt.Errorf("job failed: %s", job.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 5*time.Second, "time between status checks")

	return cmd
}

// waitForJob polls until the job reaches a terminal status.
func waitForJob(ctx context.Context, c *client.Client, id string, interval time.Duration) (*client.Job, error) {
	for {
		job, err := c.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status == client.JobStatusCompleted || job.Status == client.JobStatusFailed {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

func printJSON(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		return err
	}
	data, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
