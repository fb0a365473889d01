package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hiremenot/internal/bootstrap"
	"hiremenot/internal/meme"
	"hiremenot/internal/roasts"
	"hiremenot/internal/shared/config"
)

func newRoastCmd() *cobra.Command {
	var (
		filePath string
		text     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "roast",
		Short: "Roast a resume from a PDF file or inline text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			ctx := cmd.Context()

			sub := roasts.Submission{}
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("read resume: %w", err)
				}
				sub.File = &roasts.UploadedFile{Name: filepath.Base(filePath), Data: data}
			}
			if cmd.Flags().Changed("text") {
				sub.Text = &text
			}

			gen, err := bootstrap.BuildGenerator(cfg)
			if err != nil {
				return err
			}
			repo, closeRepo, err := openRepo(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer closeRepo()

			var memes roasts.MemeFinder
			if cfg.GiphyAPIKey != "" {
				memes = meme.NewClient(meme.Config{APIKey: cfg.GiphyAPIKey, URL: cfg.GiphyURL})
			}
			svc := bootstrap.NewService(cfg, repo, gen, memes)

			res, err := svc.Upload(ctx, sub)
			if err != nil {
				return fmt.Errorf("%s", roasts.Classify(err).Message)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "%s\n\nroast id: %s\n", res.Roast.RoastText, res.Roast.ID)
			if res.MemeURL != "" {
				fmt.Fprintf(out, "meme: %s\n", res.MemeURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to a PDF resume")
	cmd.Flags().StringVarP(&text, "text", "t", "", "resume text")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "print the result as JSON")
	return cmd
}
