package main

import (
	cmd "github.com/semshift/semshift/cmd/semshift"
	"github.com/semshift/semshift/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting semshift")
	cmd.Execute()
}
