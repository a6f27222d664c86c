package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dominant-strategies/go-ziftr/common/constants"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/log"
	"github.com/dominant-strategies/go-ziftr/metrics_config"
)

var GlobalFlags = []Flag{
	ConfigDirFlag,
	DataDirFlag,
	LogLevelFlag,
	SaveConfigFlag,
}

var WorkFlags = []Flag{
	HeaderFlag,
	TargetFlag,
	DifficultyFlag,
	NonceStartFlag,
	NonceMaxFlag,
}

var MinerFlags = []Flag{
	ThreadsFlag,
	IdleFlag,
	StoreSolutionsFlag,
	TimeoutFlag,
	CacheSizeFlag,
}

var MetricsFlags = []Flag{
	MetricsEnabledFlag,
	MetricsAddrFlag,
}

// SolutionFlags select and manage recorded solutions. They are never
// persisted.
var SolutionFlags = []Flag{
	SolutionHashFlag,
	DeleteSolutionFlag,
}

// Flags is every flag group persisted by the config command.
var Flags = [][]Flag{
	GlobalFlags,
	WorkFlags,
	MinerFlags,
	MetricsFlags,
}

var (
	// ****************************************
	// **                                    **
	// **         WORK FLAGS                 **
	// **                                    **
	// ****************************************
	HeaderFlag = Flag{
		Name:         "header",
		Abbreviation: "H",
		Value:        &ziftr.Header{},
		Usage:        "80 byte block header template, hex encoded" + generateEnvDoc("header"),
	}

	TargetFlag = Flag{
		Name:         "target",
		Abbreviation: "t",
		Value:        &ziftr.Target{},
		Usage:        "256 bit big-endian target, hex encoded. Overrides --difficulty" + generateEnvDoc("target"),
	}

	DifficultyFlag = Flag{
		Name:  "difficulty",
		Value: uint64(1),
		Usage: "difficulty the target is derived from when --target is not set" + generateEnvDoc("difficulty"),
	}

	NonceStartFlag = Flag{
		Name:  "nonce-start",
		Value: uint64(0),
		Usage: "first nonce to search" + generateEnvDoc("nonce-start"),
	}

	NonceMaxFlag = Flag{
		Name:  "nonce-max",
		Value: uint64(0xffffffff),
		Usage: "exclusive upper bound of the nonce range" + generateEnvDoc("nonce-max"),
	}

	// ****************************************
	// **                                    **
	// **         MINER FLAGS                **
	// **                                    **
	// ****************************************
	ThreadsFlag = Flag{
		Name:  "threads",
		Value: 0,
		Usage: "number of mining threads, 0 uses every core" + generateEnvDoc("threads"),
	}

	IdleFlag = Flag{
		Name:  "idle",
		Value: false,
		Usage: "lower the process scheduling priority while mining" + generateEnvDoc("idle"),
	}

	StoreSolutionsFlag = Flag{
		Name:  "store-solutions",
		Value: true,
		Usage: "record found solutions in the data directory" + generateEnvDoc("store-solutions"),
	}

	TimeoutFlag = Flag{
		Name:  "timeout",
		Value: time.Duration(0),
		Usage: "give up mining after this long, 0 never times out" + generateEnvDoc("timeout"),
	}

	CacheSizeFlag = Flag{
		Name:  "verify-cache",
		Value: 1024,
		Usage: "number of seal verifications kept in memory" + generateEnvDoc("verify-cache"),
	}

	// ****************************************
	// **                                    **
	// **         SOLUTION FLAGS             **
	// **                                    **
	// ****************************************
	SolutionHashFlag = Flag{
		Name:  "hash",
		Value: "",
		Usage: "proof hash of the recorded solution to show, hex encoded" + generateEnvDoc("hash"),
	}

	DeleteSolutionFlag = Flag{
		Name:  "delete",
		Value: false,
		Usage: "remove the solution selected by --hash" + generateEnvDoc("delete"),
	}

	// ****************************************
	// **                                    **
	// **         METRICS FLAGS              **
	// **                                    **
	// ****************************************
	MetricsEnabledFlag = Flag{
		Name:  "metrics",
		Value: false,
		Usage: "serve prometheus metrics while mining" + generateEnvDoc("metrics"),
	}

	MetricsAddrFlag = Flag{
		Name:  "metrics-addr",
		Value: metrics_config.DefaultAddr,
		Usage: "address the metrics endpoint listens on" + generateEnvDoc("metrics-addr"),
	}

	// ****************************************
	// **                                    **
	// **         GLOBAL FLAGS               **
	// **                                    **
	// ****************************************
	ConfigDirFlag = Flag{
		Name:         "config-dir",
		Abbreviation: "c",
		Value:        xdg.ConfigHome + "/" + constants.APP_NAME + "/",
		Usage:        "config directory" + generateEnvDoc("config-dir"),
	}

	DataDirFlag = Flag{
		Name:         "data-dir",
		Abbreviation: "d",
		Value:        xdg.DataHome + "/" + constants.APP_NAME + "/",
		Usage:        "data directory" + generateEnvDoc("data-dir"),
	}

	LogLevelFlag = Flag{
		Name:         "log-level",
		Abbreviation: "l",
		Value:        "info",
		Usage:        "log level (trace, debug, info, warn, error, fatal, panic)" + generateEnvDoc("log-level"),
	}

	SaveConfigFlag = Flag{
		Name:         "save-config",
		Abbreviation: "S",
		Value:        false,
		Usage:        "save/update config file with current config parameters" + generateEnvDoc("save-config"),
	}
)

/*
CreateAndBindFlag creates a flag based on the type of the value and binds it to the viper instance.
It supports the following types: string, bool, []string, time.Duration, int, int64, uint64
and any TextMarshaler.
*/
func CreateAndBindFlag(flag Flag, cmd *cobra.Command) {
	switch val := flag.GetValue().(type) {
	case string:
		cmd.PersistentFlags().StringP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case bool:
		cmd.PersistentFlags().BoolP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case []string:
		cmd.PersistentFlags().StringSliceP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case time.Duration:
		cmd.PersistentFlags().DurationP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case int:
		cmd.PersistentFlags().IntP(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case int64:
		cmd.PersistentFlags().Int64P(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case uint64:
		cmd.PersistentFlags().Uint64P(flag.GetName(), flag.GetAbbreviation(), val, flag.GetUsage())
	case TextMarshaler:
		cmd.PersistentFlags().VarP(NewTextMarshalerValue(cloneTextMarshaler(val)), flag.GetName(), flag.GetAbbreviation(), flag.GetUsage())
	default:
		log.Global.Error("Flag type not supported: " + flag.GetName() + ", " + fmt.Sprintf("%T", val))
	}
	viper.BindPFlag(flag.GetName(), cmd.PersistentFlags().Lookup(flag.GetName()))
}

// helper function that given a cobra flag name, returns the corresponding
// help legend for the equivalent environment variable
func generateEnvDoc(flag string) string {
	envVar := constants.ENV_PREFIX + "_" + strings.ReplaceAll(strings.ToUpper(flag), "-", "_")
	return fmt.Sprintf(" [%s]", envVar)
}
