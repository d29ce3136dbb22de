package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/i-am-zach/uiuc-grade-stats/internal/dataset"
	"github.com/i-am-zach/uiuc-grade-stats/internal/firebase"
	"github.com/i-am-zach/uiuc-grade-stats/internal/mirror"
)

type mirrorOptions struct {
	url      string
	fileName string
}

func newMirrorCmd(root *rootOptions) *cobra.Command {
	opts := &mirrorOptions{}

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Copy the dataset into the project's Cloud Storage bucket",
		Long: "mirror downloads the dataset over HTTP, checks that it parses, and\n" +
			"uploads it under grades/ so the API can use the storage source.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			storage, err := a.CloudStorage(ctx)
			if err != nil {
				return err
			}

			url := opts.url
			if url == "" {
				url = a.Config.Dataset.URL
			}
			fileName := opts.fileName
			if fileName == "" {
				fileName = path.Base(a.Config.Dataset.Object)
			}

			m := mirror.New(dataset.NewHTTPSource(url), storage, firebase.DatasetFolder)
			res, err := m.Run(ctx, fileName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mirrored %d rows (%d bytes) to %s\n", res.Rows, res.Bytes, res.Path)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "Dataset URL (default: dataset.url from config)")
	f.StringVar(&opts.fileName, "file", "", "Object file name under grades/ (default: base of dataset.object)")
	return cmd
}
