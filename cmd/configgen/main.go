package main

import (
	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

const defaultPath = "cmd/bitsctl/config.toml"

func main() {
	output := pflag.StringP("output", "o", "", "output path for config template")
	validate := pflag.Bool("validate", false, "validate an existing config file")
	input := pflag.StringP("input", "i", "", "config path for validation (defaults to "+defaultPath+")")
	force := pflag.Bool("force", false, "overwrite existing config file")
	pflag.Parse()

	logging.ConfigureRuntime()

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath
		}
		if _, err := config.Load(path); err != nil {
			log.Fatal().Err(err).Msg("config validation failed")
		}
		log.Info().Str("path", path).Msg("validated bitsctl config")
		return
	}

	target := *output
	if target == "" {
		target = defaultPath
	}
	if err := config.WriteTemplate(target, *force); err != nil {
		log.Fatal().Err(err).Msg("write config template failed")
	}
	log.Info().Str("path", target).Msg("wrote bitsctl config template")
}
