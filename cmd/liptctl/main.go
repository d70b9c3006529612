// liptctl is the operator CLI for the LIPT protocol contracts. It covers the
// admin surface: plan management, wheel configuration, minting and ownership
// inspection. State-changing commands need a private key in the config.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/liptlabs/lipt-gateway/pkg/config"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum"
	"github.com/liptlabs/lipt-gateway/pkg/ethereum/contracts"
	"github.com/liptlabs/lipt-gateway/pkg/protocol"
)

const usageText = `liptctl manages the LIPT protocol contracts.

Usage:
  liptctl <command> [flags]

Commands:
  ownership           print the contract ownership chain
  plans               list staking and mining plans
  add-staking-plan    add a staking plan (-cost, -apy, -days)
  modify-staking-plan modify a staking plan (-index, -cost, -apy, -days, -active)
  add-mining-plan     add a mining plan (-cost, -hashrate, -days)
  set-wheel           replace wheel segments (-segments "mult:weight:color,...")
  set-module          point the controller at a module (-module, -to)
  mint                mint LIPT (-to, -amount)
  transfer            transfer LIPT (-to, -amount)

Every command accepts -config (default config.yaml).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usageText)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "liptctl: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")

	var (
		index    = fs.Int64("index", -1, "plan index")
		cost     = fs.String("cost", "", "plan cost in LIPT")
		apy      = fs.String("apy", "", "APY in percent")
		days     = fs.Int64("days", 0, "plan duration in days")
		hashRate = fs.Int64("hashrate", 0, "miner hash rate")
		active   = fs.Bool("active", true, "plan active flag")
		segments = fs.String("segments", "", "wheel segments as mult:weight:color, comma separated")
		module   = fs.String("module", "", "controller module: staking_pool, mining_pool, swap_pool, wheel_of_fortune, rocket_game, lottery, referral_program")
		to       = fs.String("to", "", "recipient address")
		amount   = fs.String("amount", "", "amount in LIPT")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Keep command output clean; chain noise goes to the error level only.
	logCfg := cfg.Logging
	logCfg.Level = "error"
	logger, err := config.NewLogger(logCfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	client, err := ethereum.NewClient(ctx, cfg.Ethereum, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Ethereum node: %w", err)
	}
	defer client.Close()

	proto := protocol.New(ctx, client, cfg.Ethereum.Contracts, logger)

	switch cmd {
	case "ownership":
		return printOwnership(ctx, proto)
	case "plans":
		return printPlans(ctx, proto)
	case "add-staking-plan":
		return addStakingPlan(ctx, proto, *cost, *apy, *days)
	case "modify-staking-plan":
		return modifyStakingPlan(ctx, proto, *index, *cost, *apy, *days, *active)
	case "add-mining-plan":
		return addMiningPlan(ctx, proto, *cost, *hashRate, *days)
	case "set-wheel":
		return setWheel(ctx, proto, *segments)
	case "set-module":
		return setModule(ctx, client, cfg.Ethereum.Contracts.Controller, *module, *to)
	case "mint":
		return mint(ctx, client, proto, *to, *amount)
	case "transfer":
		return transfer(ctx, proto, *to, *amount)
	default:
		fmt.Print(usageText)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printOwnership(ctx context.Context, proto *protocol.Protocol) error {
	res := proto.GetOwnershipChain(ctx)
	if res.IsFailed() {
		return fmt.Errorf("failed to read ownership chain: %w", res.Err)
	}
	chain := res.Data

	fmt.Printf("LIPT token owner:   %s\n", chain.LiptTokenOwner.Hex())
	if chain.ControllerOwner != nil {
		fmt.Printf("Controller owner:   %s\n", chain.ControllerOwner.Hex())
	}
	fmt.Printf("Owned by controller: %v\n", chain.IsOwnerTransferredToController)
	fmt.Printf("Final owner:        %s\n", chain.FinalOwner.Hex())
	return nil
}

func printPlans(ctx context.Context, proto *protocol.Protocol) error {
	staking := proto.GetStakingPlans(ctx)
	if staking.IsFailed() {
		return fmt.Errorf("failed to read staking plans: %w", staking.Err)
	}
	fmt.Printf("Staking plans (%d):\n", len(staking.Data))
	for _, plan := range staking.Data {
		fmt.Printf("  [%d] cost=%s LIPT apy=%s%% duration=%sd active=%v\n",
			plan.Index, plan.Cost, plan.APYPercent, plan.DurationDays, plan.Active)
	}

	mining := proto.GetMiningPlans(ctx)
	if mining.IsFailed() {
		return fmt.Errorf("failed to read mining plans: %w", mining.Err)
	}
	fmt.Printf("Mining plans (%d):\n", len(mining.Data))
	for _, plan := range mining.Data {
		fmt.Printf("  [%d] cost=%s LIPT hashrate=%d duration=%sd active=%v\n",
			plan.Index, plan.Cost, plan.HashRate, plan.DurationDays, plan.Active)
	}
	return nil
}

func addStakingPlan(ctx context.Context, proto *protocol.Protocol, cost, apy string, days int64) error {
	costDec, err := parseAmount(cost, "cost")
	if err != nil {
		return err
	}
	apyDec, err := parseAmount(apy, "apy")
	if err != nil {
		return err
	}
	if days <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	conf, err := proto.AddStakingPlan(ctx, costDec, apyDec, days)
	if err != nil {
		return err
	}
	fmt.Printf("Plan added in tx %s (block %d)\n", conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

func modifyStakingPlan(ctx context.Context, proto *protocol.Protocol, index int64, cost, apy string, days int64, active bool) error {
	if index < 0 {
		return fmt.Errorf("-index is required")
	}
	costDec, err := parseAmount(cost, "cost")
	if err != nil {
		return err
	}
	apyDec, err := parseAmount(apy, "apy")
	if err != nil {
		return err
	}
	if days <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	conf, err := proto.ModifyStakingPlan(ctx, index, costDec, apyDec, days, active)
	if err != nil {
		return err
	}
	fmt.Printf("Plan %d modified in tx %s (block %d)\n", index, conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

func addMiningPlan(ctx context.Context, proto *protocol.Protocol, cost string, hashRate, days int64) error {
	costDec, err := parseAmount(cost, "cost")
	if err != nil {
		return err
	}
	if hashRate <= 0 {
		return fmt.Errorf("-hashrate must be positive")
	}
	if days <= 0 {
		return fmt.Errorf("-days must be positive")
	}

	conf, err := proto.AddMiningPlan(ctx, costDec, hashRate, days)
	if err != nil {
		return err
	}
	fmt.Printf("Plan added in tx %s (block %d)\n", conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

// setWheel parses "2.5:10:#ff0000,0:40:#222222" into segments and replaces
// the wheel configuration.
func setWheel(ctx context.Context, proto *protocol.Protocol, raw string) error {
	if raw == "" {
		return fmt.Errorf("-segments is required")
	}

	var segments []protocol.WheelSegment
	for _, part := range strings.Split(raw, ",") {
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return fmt.Errorf("invalid segment %q, want mult:weight:color", part)
		}
		mult, err := decimal.NewFromString(fields[0])
		if err != nil {
			return fmt.Errorf("invalid multiplier in %q: %w", part, err)
		}
		weight, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || weight <= 0 {
			return fmt.Errorf("invalid weight in %q", part)
		}
		segments = append(segments, protocol.WheelSegment{
			Multiplier: mult,
			Weight:     weight,
			Color:      fields[2],
		})
	}

	conf, err := proto.SetWheelSegments(ctx, segments)
	if err != nil {
		return err
	}
	fmt.Printf("Wheel updated with %d segments in tx %s (block %d)\n",
		len(segments), conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

// setModule rewires one of the controller's module pointers. Used after a
// module redeploy; the controller enforces ownership on-chain.
func setModule(ctx context.Context, client *ethereum.Client, controllerAddr, module, to string) error {
	if controllerAddr == "" {
		return fmt.Errorf("no controller address configured")
	}
	toAddr, err := parseAddress(to)
	if err != nil {
		return err
	}

	controller := contracts.NewProtocolController(common.HexToAddress(controllerAddr), client.Backend())

	opts, err := client.Transactor(ctx)
	if err != nil {
		return err
	}

	var tx *types.Transaction
	switch module {
	case "staking_pool":
		tx, err = controller.SetStakingPool(opts, toAddr)
	case "mining_pool":
		tx, err = controller.SetMiningPool(opts, toAddr)
	case "swap_pool":
		tx, err = controller.SetSwapPool(opts, toAddr)
	case "wheel_of_fortune":
		tx, err = controller.SetWheelOfFortune(opts, toAddr)
	case "rocket_game":
		tx, err = controller.SetRocketGame(opts, toAddr)
	case "lottery":
		tx, err = controller.SetLottery(opts, toAddr)
	case "referral_program":
		tx, err = controller.SetReferralProgram(opts, toAddr)
	default:
		return fmt.Errorf("unknown module %q", module)
	}
	if err != nil {
		return err
	}

	receipt, err := client.WaitMined(ctx, tx)
	if err != nil {
		return err
	}
	fmt.Printf("Controller now points %s at %s (tx %s, block %d)\n",
		module, toAddr.Hex(), receipt.TxHash.Hex(), receipt.BlockNumber.Uint64())
	return nil
}

func mint(ctx context.Context, client *ethereum.Client, proto *protocol.Protocol, to, amount string) error {
	toAddr, err := parseAddress(to)
	if err != nil {
		return err
	}
	amountDec, err := parseAmount(amount, "amount")
	if err != nil {
		return err
	}

	// Advisory only. The contract enforces ownership; this just saves gas on
	// a doomed transaction.
	if from, ok := client.From(); ok {
		chain := proto.GetOwnershipChain(ctx)
		if chain.IsOk() && chain.Data.FinalOwner != from {
			fmt.Fprintf(os.Stderr, "warning: connected wallet %s is not the token owner %s, mint will likely revert\n",
				from.Hex(), chain.Data.FinalOwner.Hex())
		}
	}

	conf, err := proto.MintLipt(ctx, toAddr, amountDec)
	if err != nil {
		return err
	}
	fmt.Printf("Minted %s LIPT to %s in tx %s (block %d)\n",
		amountDec, toAddr.Hex(), conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

func transfer(ctx context.Context, proto *protocol.Protocol, to, amount string) error {
	toAddr, err := parseAddress(to)
	if err != nil {
		return err
	}
	amountDec, err := parseAmount(amount, "amount")
	if err != nil {
		return err
	}

	conf, err := proto.TransferLipt(ctx, toAddr, amountDec)
	if err != nil {
		return err
	}
	fmt.Printf("Transferred %s LIPT to %s in tx %s (block %d)\n",
		amountDec, toAddr.Hex(), conf.TxHash.Hex(), conf.BlockNumber)
	return nil
}

func parseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}
	return common.HexToAddress(raw), nil
}

func parseAmount(raw, name string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("-%s is required", name)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid -%s: %w", name, err)
	}
	if value.IsNegative() {
		return decimal.Zero, fmt.Errorf("-%s cannot be negative", name)
	}
	return value, nil
}
