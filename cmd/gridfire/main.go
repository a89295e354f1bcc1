// Command gridfire is a thin CLI over the reaction-network engine: it
// exists so the ambient stack (config, logging, run identity) is wired end
// to end, not as the core deliverable. See package solver and package
// engine for the actual network evaluation.
package main

import (
	"os"

	"github.com/tboudreaux/GridFire-sub000/glog"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		glog.With("cmd").Errorf("%v", err)
		os.Exit(1)
	}
}
