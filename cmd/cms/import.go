package main

import (
	"fmt"
	"os"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/config"
	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/importer"
	"github.com/spf13/cobra"
)

func NewImportCommand() *cobra.Command {
	var draft bool

	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Create blog posts from Markdown files",
		Long: `Import Markdown files with YAML, TOML or JSON front matter as blog posts.

Each path may be a file or a directory; directories are walked for .md
files. Posts are drafts unless their front matter says status: published.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			// The memory store lives only as long as this process, which
			// makes the run a check of the files rather than an import.
			ephemeral := cfg.Database.Type == config.DatabaseMemory
			if ephemeral {
				logger.Warn("Importing into the in-memory store; posts are discarded on exit", "database", cfg.Database.Type)
				cmd.PrintErrln("Warning: DATABASE_TYPE=memory, imported posts are discarded when the command exits")
			}

			svc, cleanup, err := cfg.BuildService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to build service: %w", err)
			}
			defer cleanup()

			opts := []importer.Option{importer.WithLogger(logger)}
			if draft {
				opts = append(opts, importer.WithForceDraft())
			}
			imp, err := importer.New(svc, opts...)
			if err != nil {
				return err
			}

			var created, failed int
			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				if !info.IsDir() {
					post, err := imp.ImportFile(cmd.Context(), path)
					if err != nil {
						logger.Warn("Failed to import file", "path", path, "error", err)
						failed++
						continue
					}
					logger.Info("Imported post", "path", path, "id", post.ID, "slug", post.Slug)
					created++
					continue
				}

				result, err := imp.ImportDir(cmd.Context(), path)
				if result != nil {
					created += len(result.Created)
					failed += len(result.Failed)
				}
				if err != nil {
					return err
				}
			}

			if ephemeral {
				cmd.Printf("Checked %d post(s), %d failed (nothing was saved)\n", created, failed)
			} else {
				cmd.Printf("Imported %d post(s), %d failed\n", created, failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) could not be imported", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&draft, "draft", false, "import every post as a draft")
	return cmd
}
