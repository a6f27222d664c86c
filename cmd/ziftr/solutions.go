package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dominant-strategies/go-ziftr/cmd/utils"
	"github.com/dominant-strategies/go-ziftr/common"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/core/rawdb"
	"github.com/dominant-strategies/go-ziftr/log"
)

var (
	errSolutionNotFound = errors.New("solution not found")
	errDeleteNeedsHash  = errors.New("--delete needs --hash")
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "lists the solutions recorded by mine",
	Long: `lists every solution recorded in the data directory. With --hash only the
solution with that proof hash is shown, and --delete removes it.`,
	RunE:         runSolutions,
	SilenceUsage: true,
	Example:      `go-ziftr solutions --hash=0x... --delete`,
}

func init() {
	rootCmd.AddCommand(solutionsCmd)
	for _, flag := range utils.SolutionFlags {
		utils.CreateAndBindFlag(flag, solutionsCmd)
	}
}

func runSolutions(cmd *cobra.Command, args []string) error {
	db, err := rawdb.Open(utils.SolutionDBPath(), log.Global)
	if err != nil {
		return err
	}
	defer db.Close()
	return manageSolutions(cmd.OutOrStdout(), db, viper.GetString(utils.SolutionHashFlag.Name), viper.GetBool(utils.DeleteSolutionFlag.Name))
}

func manageSolutions(out io.Writer, db *rawdb.Database, encoded string, remove bool) error {
	if encoded == "" {
		if remove {
			return errDeleteNeedsHash
		}
		return listSolutions(out, db)
	}
	hash, err := common.HexToHash(encoded)
	if err != nil {
		return err
	}
	if !rawdb.HasSolution(db, hash) {
		return fmt.Errorf("%w: %s", errSolutionNotFound, hash.Hex())
	}
	if remove {
		rawdb.DeleteSolution(db, hash)
		log.Global.WithField("hash", hash.TerminalString()).Info("Deleted solution")
		fmt.Fprintf(out, "deleted: %s\n", hash.Hex())
		return nil
	}
	solution := rawdb.ReadSolution(db, hash)
	if solution == nil {
		return fmt.Errorf("%w: %s", errSolutionNotFound, hash.Hex())
	}
	printSolution(out, solution)
	return nil
}

func listSolutions(out io.Writer, db *rawdb.Database) error {
	count := 0
	err := rawdb.IterateSolutions(db, func(solution *ziftr.Solution) bool {
		printSolution(out, solution)
		count++
		return true
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "solutions: %d\n", count)
	return nil
}

func printSolution(out io.Writer, solution *ziftr.Solution) {
	fmt.Fprintf(out, "hash:     %s\n", solution.Hash.Hex())
	fmt.Fprintf(out, "nonce:    %d\n", solution.Nonce)
	fmt.Fprintf(out, "attempts: %d\n", solution.HashesAttempted)
	fmt.Fprintf(out, "header:   %s\n", solution.Header.Hex())
}
