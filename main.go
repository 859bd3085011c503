package main

import (
	"fmt"
	"os"
	"strings"

	bplus "BriarDB/bplustree"
	"BriarDB/kvcache"
	"BriarDB/logger"
	"BriarDB/repl"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "briardb",
		Short:         "Disk-resident B+ tree index with an interactive prompt",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			indexPath := viper.GetString("index")
			blockSize := viper.GetInt64("block-size")
			cacheEntries := viper.GetInt64("lookup-cache")

			lg := logger.NewSimpleLogger("briardb", os.Stderr)
			tree, err := bplus.NewBPlusTree(indexPath, &bplus.Options{
				BlockSize: blockSize,
				Logger:    lg,
			})
			if err != nil {
				return err
			}

			var lookups *kvcache.Cache
			if cacheEntries > 0 {
				if lookups, err = kvcache.New(cacheEntries); err != nil {
					tree.Close()
					return err
				}
				defer lookups.Close()
			}

			if err := repl.New(tree, lookups, os.Stdout).Run(); err != nil {
				tree.Close()
				return err
			}
			return tree.Close()
		},
	}

	cmd.Flags().String("index", "data.index", "index file path (boot sidecar at <index>.boot)")
	cmd.Flags().Int64("block-size", 128, "block size in bytes for a fresh index")
	cmd.Flags().Int64("lookup-cache", 1024, "max entries in the point-lookup cache, 0 disables")

	viper.SetEnvPrefix("briardb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(cmd.Flags())

	return cmd
}
