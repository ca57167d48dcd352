package main

import (
	"encoding/json"
	"net/url"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms/config"
	"github.com/spf13/cobra"
)

const redacted = "xxxxx"

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteUsage(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(redact(*cfg))
		},
	})

	return cmd
}

// redact masks credentials so the output can be pasted into bug reports.
func redact(cfg config.Config) config.Config {
	cfg.Database.URL = redactURL(cfg.Database.URL)
	cfg.Database.MongoURI = redactURL(cfg.Database.MongoURI)
	if cfg.Storage.S3.SecretAccessKey != "" {
		cfg.Storage.S3.SecretAccessKey = redacted
	}
	if cfg.Cache.RedisPassword != "" {
		cfg.Cache.RedisPassword = redacted
	}
	return cfg
}

func redactURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	return u.Redacted()
}
