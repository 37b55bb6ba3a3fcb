package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/landledger/registry-indexer/internal/adapter"
	"github.com/landledger/registry-indexer/internal/apiclient"
	"github.com/landledger/registry-indexer/internal/config"
	"github.com/landledger/registry-indexer/internal/ethereum"
	"github.com/landledger/registry-indexer/internal/logger"
	"github.com/landledger/registry-indexer/internal/orchestrator"
	"github.com/landledger/registry-indexer/internal/wallet"
)

// registrar bundles everything a chain-writing command needs
type registrar struct {
	cfg    *config.ClientConfig
	orch   *orchestrator.Orchestrator
	wallet wallet.Wallet
	close  func()
}

// newRegistrar loads configuration, opens the node connection, and
// wires the orchestrator. The returned close func releases the node
// connection and flushes logs.
func newRegistrar(c *cli.Context, jsonOutput bool) (*registrar, error) {
	config.ChdirRepoRoot()
	cfg, err := config.LoadClientConfig(c.String("config"), c.String("env"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "registry-cli",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	w, err := wallet.NewFromHexKey(cfg.Wallet.PrivateKey)
	if err != nil {
		return nil, err
	}

	if cfg.Ethereum.RPCURL == "" {
		return nil, fmt.Errorf("ethereum.rpc_url is required")
	}
	if !common.IsHexAddress(cfg.Contract.Address) {
		return nil, fmt.Errorf("contract.address is not a valid address: %q", cfg.Contract.Address)
	}

	nodeClient, err := adapter.NewEthClientDialer().Dial(c.Context, cfg.Ethereum.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node: %w", err)
	}

	eth := ethereum.NewClient(cfg.Ethereum.ChainID, nodeClient)
	ingest := apiclient.New(cfg.RegistryAPI.BaseURL, cfg.RegistryAPI.Timeout)

	var hook orchestrator.TransitionHook
	if !jsonOutput {
		hook = func(from, to orchestrator.State) {
			fmt.Fprintf(os.Stderr, "  %s\n", to)
		}
	}

	orch := orchestrator.New(orchestrator.Config{
		ContractAddress:     common.HexToAddress(cfg.Contract.Address),
		ConfirmationTimeout: cfg.ConfirmationTimeout,
		OnTransition:        hook,
	}, eth, w, ingest)

	return &registrar{
		cfg:    cfg,
		orch:   orch,
		wallet: w,
		close: func() {
			eth.Close()
			logger.Flush(2 * time.Second)
		},
	}, nil
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:      "register",
		Usage:     "Register a property on chain and index the confirmed record",
		ArgsUsage: "PROPERTY_ID LOCATION AREA",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "owner",
				Aliases: []string{"o"},
				Usage:   "Owner address (defaults to the signing wallet address)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output result as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 3 {
				return fmt.Errorf("property id, location, and area are required")
			}

			propertyID, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
			if err != nil || propertyID < 0 {
				return fmt.Errorf("property id must be a non-negative integer: %q", c.Args().Get(0))
			}
			location := c.Args().Get(1)
			area, err := strconv.ParseInt(c.Args().Get(2), 10, 64)
			if err != nil || area <= 0 {
				return fmt.Errorf("area must be a positive integer: %q", c.Args().Get(2))
			}

			jsonOutput := c.Bool("json")
			r, err := newRegistrar(c, jsonOutput)
			if err != nil {
				return err
			}
			defer r.close()

			owner := r.wallet.Address()
			if s := c.String("owner"); s != "" {
				if !common.IsHexAddress(s) {
					return fmt.Errorf("owner must be a hex address: %q", s)
				}
				owner = common.HexToAddress(s)
			}

			if !jsonOutput {
				fmt.Fprintf(os.Stderr, "Registering property %d at %q (%d sq m) for %s...\n",
					propertyID, location, area, owner.Hex())
			}

			result, err := r.orch.RegisterProperty(c.Context, big.NewInt(propertyID), location, big.NewInt(area), owner)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			return printResult(result, jsonOutput)
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Transfer a property to a new owner on chain",
		ArgsUsage: "PROPERTY_ID NEW_OWNER",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output result as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("property id and new owner address are required")
			}

			propertyID, err := strconv.ParseInt(c.Args().Get(0), 10, 64)
			if err != nil || propertyID < 0 {
				return fmt.Errorf("property id must be a non-negative integer: %q", c.Args().Get(0))
			}
			newOwner := c.Args().Get(1)
			if !common.IsHexAddress(newOwner) {
				return fmt.Errorf("new owner must be a hex address: %q", newOwner)
			}

			jsonOutput := c.Bool("json")
			r, err := newRegistrar(c, jsonOutput)
			if err != nil {
				return err
			}
			defer r.close()

			if !jsonOutput {
				fmt.Fprintf(os.Stderr, "Transferring property %d to %s...\n", propertyID, newOwner)
			}

			result, err := r.orch.TransferProperty(c.Context, big.NewInt(propertyID), common.HexToAddress(newOwner))
			if err != nil {
				return fmt.Errorf("transfer failed: %w", err)
			}

			return printResult(result, jsonOutput)
		},
	}
}

func printResult(result *orchestrator.Result, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(map[string]any{
			"tx_hash":      result.TxHash.Hex(),
			"block_number": result.BlockNumber.String(),
			"recorded":     result.Recorded,
			"note":         result.Note,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Transaction: %s\n", result.TxHash.Hex())
	fmt.Printf("Block:       %s\n", result.BlockNumber.String())
	if result.Recorded {
		fmt.Println("Indexed:     yes")
	} else {
		fmt.Printf("Indexed:     no (%s)\n", result.Note)
	}
	return nil
}
