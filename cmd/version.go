// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"runtime/debug"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/org-provisioning-service/internal/version"
	"github.com/canonical/org-provisioning-service/migrations"
)

type versionInfo struct {
	Version       string `json:"version"`
	SchemaVersion int64  `json:"schema_version"`
	GoVersion     string `json:"go_version,omitempty"`
	Revision      string `json:"revision,omitempty"`
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Long:  `Get the application's version and the database schema version it expects, see "migrate check"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		info, err := buildVersionInfo(migrations.EmbedMigrations)
		if err != nil {
			return err
		}

		return writeVersion(cmd.OutOrStdout(), info, format == "json")
	},
}

func init() {
	versionCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(versionCmd)
}

// buildVersionInfo reports the release and the highest migration embedded in
// the binary.
func buildVersionInfo(fsys fs.FS) (*versionInfo, error) {
	info := &versionInfo{Version: version.Version}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, f := range files {
		v, err := goose.NumericComponent(f)
		if err != nil {
			return nil, fmt.Errorf("invalid migration file %s: %w", f, err)
		}
		info.SchemaVersion = max(info.SchemaVersion, v)
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Revision = s.Value
			}
		}
	}

	return info, nil
}

func writeVersion(out io.Writer, info *versionInfo, jsonOutput bool) error {
	if jsonOutput {
		return json.NewEncoder(out).Encode(info)
	}

	fmt.Fprintf(out, "App Version: %s\n", info.Version)
	fmt.Fprintf(out, "Schema Version: %d\n", info.SchemaVersion)
	if info.Revision != "" {
		fmt.Fprintf(out, "Revision: %s\n", info.Revision)
	}

	return nil
}
