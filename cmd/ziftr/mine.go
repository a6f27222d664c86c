package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dominant-strategies/go-ziftr/cmd/utils"
	"github.com/dominant-strategies/go-ziftr/common"
	"github.com/dominant-strategies/go-ziftr/consensus"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/core/rawdb"
	"github.com/dominant-strategies/go-ziftr/log"
	"github.com/dominant-strategies/go-ziftr/metrics_config"
)

// hashrateReportInterval is how often the running hashrate is logged.
const hashrateReportInterval = 5 * time.Second

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "searches a nonce range for a ziftr solution",
	Long: `searches the nonce range [--nonce-start, --nonce-max) of the header given by
--header for a seal whose final digest meets the target. The range is split across
--threads workers. Solutions are printed and, unless --store-solutions=false, recorded
in the data directory.`,
	RunE:                       runMine,
	SilenceUsage:               true,
	SuggestionsMinimumDistance: 2,
	Example:                    `go-ziftr mine --header=0x... --difficulty=256 --threads=4`,
}

func init() {
	rootCmd.AddCommand(mineCmd)

	for _, flagGroup := range [][]utils.Flag{utils.WorkFlags, utils.MinerFlags, utils.MetricsFlags} {
		for _, flag := range flagGroup {
			utils.CreateAndBindFlag(flag, mineCmd)
		}
	}
}

func runMine(cmd *cobra.Command, args []string) error {
	work, err := utils.WorkFromConfig()
	if err != nil {
		return err
	}

	if viper.GetBool(utils.IdleFlag.Name) {
		if err := common.SetIdlePriority(); err != nil {
			log.Global.WithField("err", err).Warn("Failed to lower process priority")
		}
	}
	if viper.GetBool(utils.MetricsEnabledFlag.Name) {
		metrics_config.EnableMetrics()
		go func() {
			if err := metrics_config.StartProcessMetrics(viper.GetString(utils.MetricsAddrFlag.Name)); err != nil {
				log.Global.WithField("err", err).Error("Metrics server stopped")
			}
		}()
	} else {
		metrics_config.DisableMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout := viper.GetDuration(utils.TimeoutFlag.Name); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	engine := ziftr.New(utils.EngineConfig(log.Global))
	defer engine.Close()
	var pow consensus.PoW = engine

	log.Global.WithFields(log.Fields{
		"nonceStart": work.NonceStart,
		"nonceMax":   work.NonceMax,
		"target":     work.Target.Hex(),
		"difficulty": consensus.TargetToDifficulty(work.Target).Dec(),
		"threads":    engine.Threads(),
	}).Info("Starting ziftr search")

	done := make(chan struct{})
	defer close(done)
	go reportHashrate(pow, done)

	start := time.Now()
	solution, err := pow.Mine(ctx, work)
	elapsed := common.PrettyDuration(time.Since(start))
	switch {
	case errors.Is(err, ziftr.ErrNonceRangeExhausted):
		log.Global.WithField("elapsed", elapsed).Info("Nonce range exhausted")
		fmt.Fprintln(cmd.OutOrStdout(), "exhausted")
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Global.WithFields(log.Fields{"elapsed": elapsed, "reason": err}).Info("Search stopped")
		fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	case err != nil:
		return err
	}

	log.Global.WithFields(log.Fields{
		"nonce":    solution.Nonce,
		"hash":     solution.Hash.TerminalString(),
		"attempts": solution.HashesAttempted,
		"worker":   solution.Worker,
		"elapsed":  elapsed,
	}).Info("Found solution")

	if viper.GetBool(utils.StoreSolutionsFlag.Name) {
		if err := storeSolution(solution); err != nil {
			log.Global.WithField("err", err).Error("Failed to record solution")
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "nonce:  %d\n", solution.Nonce)
	fmt.Fprintf(out, "header: %s\n", solution.Header.Hex())
	fmt.Fprintf(out, "hash:   %s\n", solution.Hash.Hex())
	return nil
}

func storeSolution(solution *ziftr.Solution) error {
	db, err := rawdb.Open(utils.SolutionDBPath(), log.Global)
	if err != nil {
		return err
	}
	defer db.Close()
	rawdb.WriteSolution(db, solution)
	return nil
}

func reportHashrate(engine consensus.PoW, done <-chan struct{}) {
	ticker := time.NewTicker(hashrateReportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			log.Global.WithField("hashrate", common.PrettyHashrate(engine.Hashrate())).Info("Mining")
		case <-done:
			return
		}
	}
}
