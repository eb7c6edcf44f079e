package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnetsim/qnetsim/analytic"
	"github.com/qnetsim/qnetsim/sim"
)

var (
	studyMeanI   float64
	studyMeanS   []float64
	studyC       int
	studyCount   int64
	studyWorkers int
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Sweep mean service time over a series of M/M/c runs in parallel",
	Run: func(cmd *cobra.Command, args []string) {
		if len(studyMeanS) == 0 {
			logrus.Fatalf("--mean-s-series needs at least one value")
		}
		models, err := sim.RunStudy(len(studyMeanS), studyWorkers, func(run int) *sim.Model {
			return sim.MMCModel(studyMeanI, studyMeanS[run], studyC, studyCount, seed+uint64(run), false)
		})
		if err != nil {
			logrus.Fatalf("study failed: %v", err)
		}

		fmt.Printf("%10s %12s %12s %12s %12s\n", "mean_s", "sim E[W]", "erlC E[W]", "sim E[NQ]", "erlC E[NQ]")
		for run, m := range models {
			ec := analytic.NewErlangC(1/studyMeanI, 1/studyMeanS[run], studyC)
			fmt.Printf("%10.2f %12.4f %12.4f %12.4f %12.4f\n",
				studyMeanS[run],
				m.Dispose.ClientWaiting.Mean(), ec.EW(),
				m.Process.QueueLength.Mean(), ec.ENQ())
		}
	},
}

func init() {
	studyCmd.Flags().Float64Var(&studyMeanI, "mean-i", 100, "mean inter-arrival time")
	studyCmd.Flags().Float64SliceVar(&studyMeanS, "mean-s-series", nil, "series of mean service times")
	studyCmd.Flags().IntVar(&studyC, "c", 1, "number of servers")
	studyCmd.Flags().Int64Var(&studyCount, "count", 10000, "number of clients per run")
	studyCmd.Flags().IntVar(&studyWorkers, "workers", 4, "parallel runs")
	rootCmd.AddCommand(studyCmd)
}
