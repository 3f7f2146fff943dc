package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pylens/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show pylens build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout())
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(w io.Writer) {
	fmt.Fprintf(w, "pylens %s\n", version.Version)
	if versionShowFull {
		if version.GitCommit != "" {
			fmt.Fprintf(w, "  commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(w, "  built:  %s\n", version.BuildDate)
		}
	}
}

func renderVersionJSON(w io.Writer) error {
	payload := versionPayload{
		Tool:    "pylens",
		Version: version.Version,
	}
	if versionShowFull {
		payload.GitCommit = version.GitCommit
		payload.BuildDate = version.BuildDate
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
