package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ifsgen/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the point and artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// Redis cache when --redis-addr is set and the file cache otherwise.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached point cloud and artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.redisAddr == "" {
				dir, err := cache.DefaultDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo(c.Out, "Cache is empty")
					return nil
				}
			}

			cc, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer cc.Close()

			clearer, ok := cc.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %T cannot be cleared", cc)
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess(c.Out, "Cache cleared")
			if fc, ok := cc.(*cache.FileCache); ok {
				printDetail(c.Out, "Directory: %s", fc.Dir())
			} else {
				printDetail(c.Out, "Redis: %s", c.redisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.Out, dir)
			return nil
		},
	}
}
