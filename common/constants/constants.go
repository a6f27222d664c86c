package constants

const (
	APP_NAME = "go-ziftr"
	// prefix used to read config parameters from environment variables
	ENV_PREFIX = "ZIFTR"
	// config file name
	CONFIG_FILE_NAME = "config.toml"
	// config file type
	CONFIG_FILE_TYPE = "toml"
	// solution database directory name, relative to the data dir
	SOLUTION_DB_NAME = "solutions"
)
