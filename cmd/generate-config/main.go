package main

import (
	"flag"
	"io"
	"os"

	"blackjack-server/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var output = flag.String("o", "", "write the config to this file instead of stdout")

func main() {
	flag.Parse()

	var w io.Writer = os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			logrus.WithError(err).Fatal("could not create config file")
		}
		defer file.Close()

		w = file
	}

	if err := writeConfig(w, config.DefaultConfig()); err != nil {
		logrus.WithError(err).Fatal("could not write config")
	}
}

// writeConfig writes cfg as YAML that config.Load can read back
func writeConfig(w io.Writer, cfg config.Config) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(cfg); err != nil {
		return err
	}

	return enc.Close()
}
