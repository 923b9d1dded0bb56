package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jswitch/internal/java"
	"jswitch/internal/platform"
	"jswitch/internal/theme"
)

// Output formats for list
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type listItem struct {
	Name        string `json:"name" yaml:"name"`
	InstallPath string `json:"install_path" yaml:"install_path"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Active      bool   `json:"active" yaml:"active"`
}

type listReport struct {
	Active platform.ActiveState `json:"active" yaml:"active"`
	Jdks   []listItem           `json:"jdks" yaml:"jdks"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		output string
		probe  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known JDKs",
		Long: `List the JDKs jswitch knows about. When none are registered yet the
machine is scanned and the result is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}

			report := a.buildListReport(probe)
			if output == outputText {
				a.renderListText(report)
				return nil
			}
			return writeReport(a.out, output, report)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&probe, "probe", false, "run each JDK's launcher to report its version")
	return cmd
}

func (a *app) buildListReport(probe bool) listReport {
	report := listReport{Active: platform.Active(a.ops), Jdks: []listItem{}}
	layout := a.ops.Layout()

	for _, r := range a.records() {
		item := listItem{
			Name:        r.Name,
			InstallPath: r.InstallPath,
			Active:      layout.SamePath(r.InstallPath, report.Active.JavaHome),
		}
		if probe {
			if v, ok := a.ops.RuntimeVersionAt(r.InstallPath); ok {
				item.Version = v
			}
		}
		report.Jdks = append(report.Jdks, item)
	}
	return report
}

func (a *app) renderListText(report listReport) {
	if len(report.Jdks) == 0 {
		a.println(theme.WarningStyle.Render("No JDK installations found."))
		a.println(theme.InfoStyle.Render("Run 'jswitch add <path>' or 'jswitch add-path <dir>' to register one."))
		return
	}

	a.println(theme.Title.Render("Available JDKs:"))
	a.println()
	for _, item := range report.Jdks {
		r := java.JdkRecord{Name: item.Name, InstallPath: item.InstallPath}
		a.println(recordLine(r, item.Active, item.Version))
	}
	a.println()

	if report.Active.JavaHome == "" {
		a.println(theme.WarningMessage("No active JDK"))
		a.println(theme.Faint.Render("  Run 'jswitch use <name|version>' to select one"))
	}
}

// writeReport encodes v as JSON or YAML
func writeReport(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newScanCmd(a *app) *cobra.Command {
	var (
		root string
		save bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Search the machine for installed JDKs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			found := a.scan(root)
			if len(found) == 0 {
				a.println(theme.WarningStyle.Render("No JDK installations found."))
				return nil
			}

			active, _ := a.ops.ActiveHome()
			layout := a.ops.Layout()
			a.println(theme.Title.Render(fmt.Sprintf("Found %d JDKs:", len(found))))
			a.println()
			for _, r := range found {
				line := recordLine(r, layout.SamePath(r.InstallPath, active), "")
				if !a.cfg.HasJdk(r.InstallPath) {
					line += " " + theme.InfoStyle.Render("(new)")
				}
				a.println(line)
			}
			a.println()

			if !save {
				a.println(theme.Faint.Render("Run with --save to register new JDKs"))
				return nil
			}

			added := 0
			for _, r := range found {
				if a.cfg.AddJdk(r.Name, r.InstallPath) == nil {
					added++
				}
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			a.println(theme.SuccessMessage(fmt.Sprintf("Registered %d new JDKs", added)))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "additional directory to search")
	cmd.Flags().BoolVar(&save, "save", false, "register the JDKs that were found")
	return cmd
}

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active JDK",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.println(theme.Title.Render("Current JDK"))
			a.println()

			state := platform.Active(a.ops)
			if state.JavaHome == "" && state.RuntimeVersion == "" {
				a.println(theme.WarningStyle.Render("No active JDK"))
				a.println(theme.Faint.Render("Run 'jswitch use <name|version>' to select one"))
				return nil
			}

			version := state.RuntimeVersion
			if version == "" {
				version = "unknown"
			}
			a.printf("%s %s\n", theme.LabelStyle.Render("Version:"), theme.CurrentStyle.Render(version))

			if state.JavaHome == "" {
				a.printf("%s %s\n", theme.LabelStyle.Render("JAVA_HOME:"), theme.Faint.Render("not set"))
				return nil
			}
			a.printf("%s %s\n", theme.LabelStyle.Render("JAVA_HOME:"), theme.PathStyle.Render(state.JavaHome))

			if !a.ops.Layout().IsValidJdkRoot(state.JavaHome) {
				a.println()
				a.println(theme.WarningStyle.Render("The active JDK path looks invalid"))
				a.println(theme.Faint.Render("Use 'jswitch use' to fix it or 'jswitch doctor' for details"))
			}
			return nil
		},
	}
}
