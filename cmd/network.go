package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var networkScenario string

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Run an arbitrary network described by a YAML scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if networkScenario == "" {
			logrus.Fatalf("--scenario is required")
		}
		sc, err := LoadScenario(networkScenario)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		runSeed := seed
		if sc.Seed != 0 {
			runSeed = sc.Seed
		}
		built, err := sc.Build(runSeed)
		if err != nil {
			logrus.Fatalf("building network: %v", err)
		}
		if err := built.Sim.Run(); err != nil {
			logrus.Fatalf("run failed: %v", err)
		}

		for _, src := range built.Sources {
			fmt.Printf("%s.inter_arrival  %s\n", src.Name(), src.Statistic.Info())
		}
		for _, p := range built.Processes {
			fmt.Printf("%s.station_waiting    %s\n", p.Name(), p.StationWaiting.Info())
			fmt.Printf("%s.station_service    %s\n", p.Name(), p.StationService.Info())
			fmt.Printf("%s.station_residence  %s\n", p.Name(), p.StationResidence.Info())
			fmt.Printf("%s.queue_length       %s\n", p.Name(), p.QueueLength.Info())
			fmt.Printf("%s.workload           %s\n", p.Name(), p.Workload.Info())
			fmt.Printf("%s.outcomes           %s\n", p.Name(), p.Success.Info())
		}
		for _, d := range built.Disposes {
			fmt.Printf("%s.client_residence  %s\n", d.Name(), d.ClientResidence.Info())
			fmt.Printf("%s.count             %d\n", d.Name(), d.Count())
		}
		fmt.Printf("events   %d\n", built.Sim.EventCount)
		fmt.Printf("run time %s\n", built.Sim.RunTime)
	},
}

func init() {
	networkCmd.Flags().StringVar(&networkScenario, "scenario", "", "path to a YAML scenario file")
	rootCmd.AddCommand(networkCmd)
}
