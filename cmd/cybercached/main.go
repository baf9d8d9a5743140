// Command cybercached runs the cache cluster node: it bootstraps
// configuration, logging, memory accounting, and one reactor loop per
// service (session, FPC, admin).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nabbar/cybercache/edition"
	loglvl "github.com/nabbar/cybercache/logger/level"
	"github.com/nabbar/cybercache/runtimeinfo"
)

var cfgFile string

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cybercached",
		Short: "cybercached runs a CyberCache cluster node",
		RunE:  runServe,
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to the configuration file")

	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the build version and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(versionBanner())
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := defaultViper()
	cfg, err := loadConfig(v, cfgFile)
	if err != nil {
		return err
	}

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	rt.log.Entry(loglvl.InfoLevel, versionBanner()).Log()

	waiter := runtimeinfo.NewSignalWaiter()
	defer waiter.Stop()

	sig := waiter.Wait()
	rt.log.Entry(loglvl.InfoLevel, fmt.Sprintf("cybercached: received %s, shutting down", sig)).Log()

	return nil
}

func versionBanner() string {
	return edition.FullVersionString(buildVersion, buildMode)
}
