package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/dominant-strategies/go-ziftr/common/constants"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/log"
)

var (
	ErrNonceOutOfRange = errors.New("nonce does not fit in 32 bits")
	ErrMissingHeader   = errors.New("no header given")
)

// InitConfig initializes the viper config instance ensuring that environment variables
// take precedence over config file parameters.
// Environment variables should be prefixed with the application name (e.g. ZIFTR_LOG_LEVEL).
// It panics if an error occurs while reading the config file.
func InitConfig() {
	// read in config file and merge with defaults
	log.Global.Infof("Loading config from file: %s", viper.ConfigFileUsed())
	err := viper.ReadInConfig()
	if err != nil {
		// if error is type ConfigFileNotFoundError or fs.PathError, ignore error
		var notFound viper.ConfigFileNotFoundError
		if _, ok := err.(*fs.PathError); ok || errors.As(err, &notFound) {
			log.Global.Warnf("Config file not found: %s", viper.ConfigFileUsed())
		} else {
			log.Global.Errorf("Error reading config file: %s", err)
			// config file was found but another error was produced. Cannot continue
			panic(err)
		}
	}

	log.Global.Infof("Loading config from environment variables with prefix: '%s_'", constants.ENV_PREFIX)
	viper.SetEnvPrefix(constants.ENV_PREFIX)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// settings flattens the current value of every known flag into a map keyed
// by flag name. Durations are written as strings so the file reads back
// through viper unchanged. Headers and targets are only written when set.
func settings() map[string]interface{} {
	out := make(map[string]interface{})
	for _, group := range Flags {
		for _, flag := range group {
			if flag.Name == SaveConfigFlag.Name {
				continue
			}
			if _, ok := flag.Value.(TextMarshaler); ok {
				if viper.IsSet(flag.Name) {
					out[flag.Name] = viper.GetString(flag.Name)
				}
				continue
			}
			value := viper.Get(flag.Name)
			if value == nil {
				value = flag.Value
			}
			if d, ok := value.(time.Duration); ok {
				value = d.String()
			}
			out[flag.Name] = value
		}
	}
	return out
}

func writeConfig(path string) error {
	encoded, err := toml.Marshal(settings())
	if err != nil {
		return pkgerrors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return pkgerrors.Wrapf(err, "writing config file %s", path)
	}
	return nil
}

// WriteDefaultConfigFile creates configDir/fileName holding every flag with
// its current value. Only the toml type is supported.
func WriteDefaultConfigFile(configDir string, fileName string, fileType string) error {
	if fileType != constants.CONFIG_FILE_TYPE {
		return fmt.Errorf("unsupported config file type %q", fileType)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return pkgerrors.Wrapf(err, "creating config directory %s", configDir)
	}
	return writeConfig(filepath.Join(configDir, fileName))
}

// SaveConfig saves the current config parameters to the config file used by
// viper, creating it when it does not exist yet.
func SaveConfig() error {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(viper.GetString(ConfigDirFlag.Name), constants.CONFIG_FILE_NAME)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pkgerrors.Wrapf(err, "creating config directory for %s", path)
	}
	return writeConfig(path)
}

// WorkFromConfig assembles a sealing task from the work flags. An explicit
// target wins over the difficulty.
func WorkFromConfig() (*ziftr.Work, error) {
	header, err := HeaderFromConfig()
	if err != nil {
		return nil, err
	}
	target, err := TargetFromConfig()
	if err != nil {
		return nil, err
	}
	start, max := viper.GetUint64(NonceStartFlag.Name), viper.GetUint64(NonceMaxFlag.Name)
	if start > math.MaxUint32 || max > math.MaxUint32 {
		return nil, pkgerrors.Wrapf(ErrNonceOutOfRange, "nonce range [%d, %d)", start, max)
	}
	return &ziftr.Work{
		Header:     header,
		Target:     target,
		NonceStart: uint32(start),
		NonceMax:   uint32(max),
	}, nil
}

// HeaderFromConfig reads --header. It is required.
func HeaderFromConfig() (ziftr.Header, error) {
	if !viper.IsSet(HeaderFlag.Name) {
		return ziftr.Header{}, pkgerrors.Wrap(ErrMissingHeader, "--"+HeaderFlag.Name+" is required")
	}
	header, err := ziftr.HeaderFromHex(viper.GetString(HeaderFlag.Name))
	if err != nil {
		return ziftr.Header{}, pkgerrors.Wrap(err, "parsing --"+HeaderFlag.Name)
	}
	return header, nil
}

// TargetFromConfig reads --target, falling back to --difficulty when it is
// not set.
func TargetFromConfig() (ziftr.Target, error) {
	if viper.IsSet(TargetFlag.Name) {
		target, err := ziftr.TargetFromHex(viper.GetString(TargetFlag.Name))
		if err != nil {
			return ziftr.Target{}, pkgerrors.Wrap(err, "parsing --"+TargetFlag.Name)
		}
		return target, nil
	}
	return ziftr.TargetFromDifficulty(viper.GetUint64(DifficultyFlag.Name)), nil
}

// EngineConfig builds the ziftr engine configuration from the miner flags.
func EngineConfig(logger log.Logger) ziftr.Config {
	return ziftr.Config{
		PowMode:   ziftr.ModeNormal,
		Threads:   viper.GetInt(ThreadsFlag.Name),
		CacheSize: viper.GetInt(CacheSizeFlag.Name),
		Log:       logger,
	}
}

// SolutionDBPath is the location of the solution store under the data dir.
func SolutionDBPath() string {
	return filepath.Join(viper.GetString(DataDirFlag.Name), constants.SOLUTION_DB_NAME)
}
