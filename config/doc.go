// Package config loads seqkit service configuration.
//
// Values come from a config.yml file (searched in the usual cmd/<service>
// and config/ locations), a .env file, and the process environment, merged
// by Viper. Environment variables map onto nested keys by splitting on
// underscores, so SERVER_PORT sets server.port and
// PIPELINES_MAX_ELEMENTS sets pipelines.max_elements.
//
// # Usage
//
//	cfg, err := config.Load("seqd", config.WithConfigFile(path))
//	if err != nil {
//	    return err
//	}
package config
