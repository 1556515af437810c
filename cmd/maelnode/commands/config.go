package commands

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by viper, as in
// MAELNODE_LOG=debug.
const EnvPrefix = "MAELNODE"

// AddConfigFlags adds the flags shared by every node command
func AddConfigFlags(cmd *cobra.Command, conf *config.Config) {
	cmd.PersistentFlags().String("datadir", conf.DataDir, "Top-level directory for configuration and data")
	cmd.PersistentFlags().String("log", conf.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", conf.LogFile, "Also write JSON logs to this file")

	// Store
	cmd.PersistentFlags().Bool("store", conf.Store, "Use badgerDB instead of in-mem DB")
	cmd.PersistentFlags().String("db", conf.DatabaseDir, "Database directory")

	// Node
	cmd.PersistentFlags().String("node", conf.NodeType, "Node to run without a sub-command: echo, unique-ids, broadcast")
}

// loadConfig resolves conf from, in order of precedence, explicit flags,
// MAELNODE_* environment variables (including those of [datadir]/.env) and
// [datadir]/maelnode.toml.
func loadConfig(cmd *cobra.Command, v *viper.Viper, conf *config.Config) error {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// first unmarshal to find the datadir
	if err := v.Unmarshal(conf); err != nil {
		return err
	}

	// a missing .env file is not an error; existing variables are not
	// overridden
	envFile := conf.EnvFile()
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return err
	}

	// look for config file in [datadir]/maelnode.toml (.json, .yaml also work)
	v.SetConfigName("maelnode")
	v.AddConfigPath(conf.DataDir)

	// If a config file is found, read it in.
	configFile := ""
	if err := v.ReadInConfig(); err == nil {
		configFile = v.ConfigFileUsed()
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		return err
	}

	// second unmarshal to read from config file and .env. The logger is only
	// built after this point, once the log level is final.
	if err := v.Unmarshal(conf); err != nil {
		return err
	}

	// If --datadir was explicitely set, but not --db, this will update the
	// default database dir to be inside the new datadir
	conf.SetDataDir(conf.DataDir)

	logFields := logrus.Fields{
		"DataDir":  conf.DataDir,
		"LogLevel": conf.LogLevel,
		"LogFile":  conf.LogFile,
		"Store":    conf.Store,
		"NodeType": conf.NodeType,
		"EnvFile":  envFile,
	}

	if configFile != "" {
		logFields["ConfigFile"] = configFile
	}

	if conf.Store {
		logFields["DatabaseDir"] = conf.DatabaseDir
	}

	conf.Logger().WithFields(logFields).Debug("Config")

	return nil
}
