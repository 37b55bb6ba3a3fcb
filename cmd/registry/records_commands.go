package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/landledger/registry-indexer/internal/apiclient"
	"github.com/landledger/registry-indexer/internal/config"
)

// newAPIClient loads configuration and builds the indexer API client.
// Read-only commands never touch the node or the wallet.
func newAPIClient(c *cli.Context) (*apiclient.Client, error) {
	config.ChdirRepoRoot()
	cfg, err := config.LoadClientConfig(c.String("config"), c.String("env"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return apiclient.New(cfg.RegistryAPI.BaseURL, cfg.RegistryAPI.Timeout), nil
}

func recordsCommand() *cli.Command {
	return &cli.Command{
		Name:  "records",
		Usage: "Off-chain property record index commands",
		Subcommands: []*cli.Command{
			listRecordsCommand(),
		},
	}
}

func listRecordsCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Usage:   "List all indexed property records, newest first",
		Aliases: []string{"ls"},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output records as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			client, err := newAPIClient(c)
			if err != nil {
				return err
			}

			records, err := client.ListRecords(c.Context)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			if c.Bool("json") {
				return outputJSON(records)
			}

			if len(records) == 0 {
				fmt.Println("No property records indexed yet.")
				return nil
			}

			// Pretty table output
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROPERTY\tLOCATION\tAREA\tOWNER\tBLOCK\tREGISTERED\tTX HASH")
			for _, record := range records {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
					record.PropertyID,
					record.Location,
					record.Area,
					shortAddress(record.Owner),
					record.BlockNumber,
					record.Timestamp.Format(time.RFC3339),
					shortHash(record.TransactionHash),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nTotal: %d records\n", len(records))
			return nil
		},
	}
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check the indexer API health endpoint",
		Action: func(c *cli.Context) error {
			client, err := newAPIClient(c)
			if err != nil {
				return err
			}

			if err := client.Health(c.Context); err != nil {
				return fmt.Errorf("indexer API is unhealthy: %w", err)
			}

			fmt.Println("Indexer API is healthy.")
			return nil
		},
	}
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// shortAddress abbreviates a hex address for table display
func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:8] + ".." + address[len(address)-4:]
}

// shortHash abbreviates a transaction hash for table display
func shortHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:10] + ".." + hash[len(hash)-6:]
}
