package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/qnetsim/qnetsim/analytic"
	"github.com/qnetsim/qnetsim/sim"
)

var (
	runMeanI          float64
	runMeanS          float64
	runC              int
	runCount          int64
	runMeanWT         float64
	runRetryProb      float64
	runMeanRetryDelay float64
	runRecordValues   bool
	runCompare        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single M/M/c model, optionally with impatience and retries",
	Run: func(cmd *cobra.Command, args []string) {
		if runMeanI <= 0 || runMeanS <= 0 {
			logrus.Fatalf("mean-i and mean-s must be positive, got %f and %f", runMeanI, runMeanS)
		}
		if runMeanWT > 0 && runRecordValues {
			logrus.Fatalf("record-values is only supported without impatience")
		}

		var m *sim.Model
		if runMeanWT > 0 {
			m = sim.ImpatienceRetryModel(runMeanI, runMeanS, runMeanWT, runRetryProb, runMeanRetryDelay, runC, runCount, seed)
		} else {
			m = sim.MMCModel(runMeanI, runMeanS, runC, runCount, seed, runRecordValues)
		}
		if err := m.Run(); err != nil {
			logrus.Fatalf("run failed: %v", err)
		}

		fmt.Print(sim.MMCResults(m))
		fmt.Printf("events                     %d\n", m.Simulator.EventCount)
		fmt.Printf("run time                   %s\n", m.Simulator.RunTime)

		if runCompare && runMeanWT == 0 {
			ec := analytic.NewErlangC(1/runMeanI, 1/runMeanS, runC)
			fmt.Printf("erlang_c E[W]=%.4f E[V]=%.4f E[NQ]=%.4f E[N]=%.4f rho=%.4f\n",
				ec.EW(), ec.EV(), ec.ENQ(), ec.EN(), ec.Rho())
		}
	},
}

func init() {
	runCmd.Flags().Float64Var(&runMeanI, "mean-i", 100, "mean inter-arrival time")
	runCmd.Flags().Float64Var(&runMeanS, "mean-s", 80, "mean service time")
	runCmd.Flags().IntVar(&runC, "c", 1, "number of servers")
	runCmd.Flags().Int64Var(&runCount, "count", 10000, "number of clients")
	runCmd.Flags().Float64Var(&runMeanWT, "mean-wt", 0, "mean patience time (0 disables impatience)")
	runCmd.Flags().Float64Var(&runRetryProb, "retry-prob", 0, "retry probability for cancelled clients")
	runCmd.Flags().Float64Var(&runMeanRetryDelay, "mean-retry-delay", 0, "mean pause before a retry")
	runCmd.Flags().BoolVar(&runRecordValues, "record-values", false, "retain full time-weighted recorder traces")
	runCmd.Flags().BoolVar(&runCompare, "compare", false, "print Erlang C reference figures")
	rootCmd.AddCommand(runCmd)
}
