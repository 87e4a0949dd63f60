package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/elastic-grid/gridsim/sim"
	"github.com/elastic-grid/gridsim/sim/workload"
)

var (
	// CLI flags for simulation inputs and outputs
	tracePath  string // Path to the job trace CSV
	configPath string // Optional YAML configuration file
	outputPath string // Snapshot CSV destination ("" = stdout)
	logLevel   string // Log verbosity level
	rebase     bool   // Shift trace submit times so the earliest is 0

	// CLI flags overriding individual configuration options
	bootDelay        int64  // VM start-up latency (s)
	shutdownDelay    int64  // Stopping -> Terminated latency (s)
	snapshotInterval int64  // Snapshot spacing (s)
	policyInterval   int64  // Periodic policy cycle (s)
	minNodes         int    // Lower bound on started nodes
	maxNodes         int    // Upper bound on started nodes
	maxDelta         int    // Nodes started per policy decision
	idleTimeout      int64  // Idle time before a node may stop (s)
	maxTime          int64  // Simulated-time horizon (s)
	nodeSlots        int    // Slot capacity per provisioned node
	policyName       string // Scaling policy name
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "gridsim",
	Short: "Discrete-event simulator for elastically provisioned batch clusters",
}

// runCmd replays a job trace under the configured provisioning policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cluster simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig(cmd)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}

		records, err := workload.LoadTrace(tracePath)
		if err != nil {
			logrus.Fatalf("Trace error: %v", err)
		}
		if rebase {
			workload.Rebase(records)
		}
		jobs := workload.Jobs(records)

		out := os.Stdout
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Output error: %v", err)
			}
			defer f.Close()
			out = f
		}
		reporter := sim.NewCSVReporter(out)

		s, err := sim.NewSimulator(cfg, nil, reporter)
		if err != nil {
			logrus.Fatalf("Simulator error: %v", err)
		}
		for _, job := range jobs {
			if err := s.InjectJob(job); err != nil {
				logrus.Fatalf("Trace error: %v", err)
			}
		}

		logrus.Infof("Starting simulation: %d jobs, boot_delay=%ds, max_nodes=%d, policy=%s",
			len(jobs), cfg.BootDelay, cfg.MaxNodes, cfg.Policy)
		startTime := time.Now()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runErr := s.Run(ctx)
		if err := reporter.Flush(); err != nil {
			logrus.Errorf("Flushing snapshots: %v", err)
		}
		if runErr != nil {
			logrus.Fatalf("Simulation failed: %v", runErr)
		}

		s.Metrics.Print()
		logrus.Infof("Simulation complete in %v (wall clock).", time.Since(startTime))
	},
}

// buildConfig layers the optional YAML file over the defaults, then applies
// any flags the user set explicitly.
func buildConfig(cmd *cobra.Command) (*sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if flags.Changed("boot-delay") {
		cfg.BootDelay = bootDelay
	}
	if flags.Changed("shutdown-delay") {
		cfg.ShutdownDelay = shutdownDelay
	}
	if flags.Changed("snapshot-interval") {
		cfg.SnapshotInterval = snapshotInterval
	}
	if flags.Changed("policy-interval") {
		cfg.PolicyInterval = policyInterval
	}
	if flags.Changed("min-nodes") {
		cfg.MinNodes = minNodes
	}
	if flags.Changed("max-nodes") {
		cfg.MaxNodes = maxNodes
	}
	if flags.Changed("max-delta") {
		cfg.MaxDelta = maxDelta
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = idleTimeout
	}
	if flags.Changed("max-time") {
		cfg.MaxTime = maxTime
	}
	if flags.Changed("node-slots") {
		cfg.NodeSlots = nodeSlots
	}
	if flags.Changed("policy") {
		cfg.Policy = policyName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&tracePath, "trace", "", "Path to the job trace CSV (job_id,submit_time[,slots],duration)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Snapshot CSV destination (default: stdout)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&rebase, "rebase", true, "Shift trace submit times so the earliest becomes 0")

	defaults := sim.DefaultConfig()
	runCmd.Flags().Int64Var(&bootDelay, "boot-delay", defaults.BootDelay, "VM start-up latency in seconds")
	runCmd.Flags().Int64Var(&shutdownDelay, "shutdown-delay", defaults.ShutdownDelay, "Node shutdown latency in seconds")
	runCmd.Flags().Int64Var(&snapshotInterval, "snapshot-interval", defaults.SnapshotInterval, "Snapshot spacing in seconds")
	runCmd.Flags().Int64Var(&policyInterval, "policy-interval", defaults.PolicyInterval, "Periodic policy cycle in seconds")
	runCmd.Flags().IntVar(&minNodes, "min-nodes", defaults.MinNodes, "Minimum number of started nodes")
	runCmd.Flags().IntVar(&maxNodes, "max-nodes", defaults.MaxNodes, "Maximum number of started nodes")
	runCmd.Flags().IntVar(&maxDelta, "max-delta", defaults.MaxDelta, "Maximum nodes started per policy decision")
	runCmd.Flags().Int64Var(&idleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle seconds before a node becomes stoppable")
	runCmd.Flags().Int64Var(&maxTime, "max-time", defaults.MaxTime, "Simulated-time horizon in seconds")
	runCmd.Flags().IntVar(&nodeSlots, "node-slots", defaults.NodeSlots, "Slot capacity of each provisioned node")
	runCmd.Flags().StringVar(&policyName, "policy", defaults.Policy, "Scaling policy name")
	_ = runCmd.MarkFlagRequired("trace")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
