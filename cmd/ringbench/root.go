// File: cmd/ringbench/root.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/momentics/hioload-ringbuf/control"
)

// Version is stamped at build time with -ldflags "-X main.Version=...".
var Version = "dev"

type rootFlags struct {
	configFile string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{v: control.NewViper()}
	cmd := &cobra.Command{
		Use:           "ringbench",
		Short:         "Exercise thread-partitioned growable ring buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rf.configFile == "" {
				return nil
			}
			rf.v.SetConfigFile(rf.configFile)
			return rf.v.ReadInConfig()
		},
	}
	cmd.PersistentFlags().StringVarP(&rf.configFile, "config", "c", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	_ = rf.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newRunCmd(rf), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ringbench %s\n", Version)
		},
	}
}
