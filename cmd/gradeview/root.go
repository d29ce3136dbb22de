package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/i-am-zach/uiuc-grade-stats/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("note: could not load .env file (%v); continuing with system environment", err)
	}
	log.SetPrefix("[gradeview] ")
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gradeview",
		Short: "Explore UIUC grade distributions",
		Long: "gradeview aggregates the public UIUC GPA dataset by course, year and\n" +
			"instructor, and keeps a list of courses you are tracking.",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML config file")

	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newCoursesCmd(opts))
	root.AddCommand(newMirrorCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
