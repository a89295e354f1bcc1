package main

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tboudreaux/GridFire-sub000/engine"
	"github.com/tboudreaux/GridFire-sub000/gferrors"
	"github.com/tboudreaux/GridFire-sub000/glog"
	"github.com/tboudreaux/GridFire-sub000/gridfire"
	"github.com/tboudreaux/GridFire-sub000/netgraph"
	"github.com/tboudreaux/GridFire-sub000/reaclib"
	"github.com/tboudreaux/GridFire-sub000/reaction"
	"github.com/tboudreaux/GridFire-sub000/solver"
)

var (
	reaclibPath      string
	compositionPath  string
	temperature      float64
	density          float64
	tMax             float64
	dt0              float64
	mode             string
	cullingThreshold float64
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "integrate one zone's composition forward by TMax seconds",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&reaclibPath, "reaclib", "", "path to a REACLIB binary blob (spec §6 format)")
	f.StringVar(&compositionPath, "composition", "", "path to a JSON file of {species name: mass fraction}")
	f.Float64Var(&temperature, "temperature", 0, "zone temperature, K")
	f.Float64Var(&density, "density", 0, "zone density, g/cm^3")
	f.Float64Var(&tMax, "tmax", 0, "integration window, s")
	f.Float64Var(&dt0, "dt0", 0, "initial step size, s (0 lets the solver choose)")
	f.StringVar(&mode, "mode", "direct", "solver to use: direct or qse")
	f.Float64Var(&cullingThreshold, "culling-threshold", 0, "AdaptiveEngineView relative culling threshold override (0 uses config default)")

	for _, name := range []string{"reaclib", "composition"} {
		_ = evaluateCmd.MarkFlagRequired(name)
	}
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	runID := uuid.New()
	log := glog.With("cmd.evaluate").WithField("run_id", runID.String())

	blob, err := os.ReadFile(reaclibPath)
	if err != nil {
		return gferrors.Wrap(gferrors.DataIntegrity, err, "reading reaclib blob %s", reaclibPath)
	}
	raw, err := reaclib.Decode(blob)
	if err != nil {
		return err
	}

	set := reaction.NewReactionSet()
	for _, r := range raw {
		if err := set.Add(r); err != nil {
			return err
		}
	}
	logical, err := set.ToLogical()
	if err != nil {
		return err
	}
	log.Infof("loaded %d raw reactions, %d logical reactions", len(raw), logical.Len())

	baseEngine, err := netgraph.New(logical)
	if err != nil {
		return err
	}
	base := engine.NewBase(baseEngine)
	view := engine.NewAdaptiveEngineView(base, cullingThreshold)

	compBytes, err := os.ReadFile(compositionPath)
	if err != nil {
		return gferrors.Wrap(gferrors.DataIntegrity, err, "reading composition file %s", compositionPath)
	}
	var composition map[string]float64
	if err := json.Unmarshal(compBytes, &composition); err != nil {
		return gferrors.Wrap(gferrors.DataIntegrity, err, "parsing composition file %s", compositionPath)
	}

	in := gridfire.NetIn{
		Composition:      composition,
		Temperature:      temperature,
		Density:          density,
		TMax:             tMax,
		Dt0:              dt0,
		CullingThreshold: cullingThreshold,
	}

	var out gridfire.NetOut
	switch mode {
	case "direct":
		if err := view.Update(in); err != nil {
			return err
		}
		out, err = solver.NewDirectNetworkSolver(view).Evaluate(in)
	case "qse":
		out, err = solver.NewQSENetworkSolver(baseEngine, view).Evaluate(in)
	default:
		return gferrors.New(gferrors.Config, "unknown solver mode %q (want direct or qse)", mode)
	}
	if err != nil {
		return err
	}

	log.Infof("evaluate: %d steps, final energy %.6e erg/g", out.StepCount, out.Energy)
	return json.NewEncoder(os.Stdout).Encode(out)
}
