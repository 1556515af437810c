// Package config defines the configuration for a node process.
//
// Regardless of how a node is started, directly from Go code or as a
// standalone process spawned by the test harness, it uses the Config object
// defined in this package. The harness starts binaries without arguments, so
// the command line layer also reads a Config from MAELNODE_* environment
// variables and from optional files in Config.DataDir:
//
//  .env           // KEY=VALUE lines loaded into the environment
//  maelnode.toml  // (or .json, .yaml) configuration file
//  badger_db/     // database directories when Store is set
package config
