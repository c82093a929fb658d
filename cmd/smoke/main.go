// Command smoke is the function binary. It serves the entry point named in
// lambda.yaml, or direct invocations when no config file is deployed.
package main

import (
	"os"

	"github.com/aura-studio/smoke/logging"
	"github.com/aura-studio/smoke/server"
)

func main() {
	log := logging.New(false)

	var opts []server.Option
	if p, err := server.FindDefaultServeConfigFile(); err == nil {
		log.WithField("config", p).Info("loading server config")
		opts = append(opts, server.WithServeConfigFile(p))
	}

	if err := server.Serve(opts); err != nil {
		log.WithError(err).Error("serve failed")
		os.Exit(1)
	}
}
