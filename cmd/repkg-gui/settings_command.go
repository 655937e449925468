package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/NaiHeeeee/repkg-gui/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSettingsShowCommand(ctx))
	cmd.AddCommand(newSettingsSetCommand(ctx))

	return cmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}
			current, err := store.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "only_images:              %s\n", yesNo(current.OnlyImages))
			fmt.Fprintf(out, "no_tex_convert:           %s\n", yesNo(current.NoTexConvert))
			fmt.Fprintf(out, "ignore_dir_structure:     %s\n", yesNo(current.IgnoreDirStructure))
			fmt.Fprintf(out, "overwrite_files:          %s\n", yesNo(current.OverwriteFiles))
			fmt.Fprintf(out, "auto_open_extract_folder: %s\n", yesNo(current.AutoOpenFolder))
			fmt.Fprintf(out, "workshop_path:            %s\n", orDash(current.WorkshopPath))
			fmt.Fprintf(out, "extract_path:             %s\n", orDash(current.ExtractPath))
			fmt.Fprintf(out, "extract_path_manual:      %s\n", yesNo(current.ExtractPathManual))
			fmt.Fprintf(out, "sort_key:                 %s\n", orDash(current.SortKey))
			fmt.Fprintf(out, "sort_direction:           %s\n", orDash(current.SortDirection))
			return nil
		},
	}
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one persisted setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.settingsStore()
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			var applyErr error
			if _, err := store.Update(func(s *settings.Settings) {
				applyErr = applySetting(s, key, value)
			}); err != nil {
				return err
			}
			if applyErr != nil {
				return applyErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}
}

func applySetting(s *settings.Settings, key, value string) error {
	boolValue := func() (bool, error) { return strconv.ParseBool(value) }

	switch key {
	case "only_images":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.OnlyImages = v
	case "no_tex_convert":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.NoTexConvert = v
	case "ignore_dir_structure":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.IgnoreDirStructure = v
	case "overwrite_files":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.OverwriteFiles = v
	case "auto_open_extract_folder":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.AutoOpenFolder = v
	case "extract_path_manual":
		v, err := boolValue()
		if err != nil {
			return err
		}
		s.ExtractPathManual = v
	case "workshop_path":
		s.WorkshopPath = value
	case "extract_path":
		s.ExtractPath = value
	case "sort_key":
		if value != "name" && value != "date" {
			return fmt.Errorf("sort_key must be name or date, got %q", value)
		}
		s.SortKey = value
	case "sort_direction":
		if value != "asc" && value != "desc" {
			return fmt.Errorf("sort_direction must be asc or desc, got %q", value)
		}
		s.SortDirection = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
