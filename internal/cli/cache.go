package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL != "" {
				rc, err := cache.NewRedisCache(cmd.Context(), redisURL)
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(cmd.Context())
				if err != nil {
					return err
				}
				printSuccess("Cleared %d cached entries", n)
				return nil
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if !isDir(dir) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear a redis cache instead of the local one")
	return cmd
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
