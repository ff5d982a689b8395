package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subburn/internal/style"
)

func newColorsCommand() *cobra.Command {
	var alpha int
	var plain bool

	cmd := &cobra.Command{
		Use:         "colors",
		Short:       "List the caption color palette and its ASS tokens",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tty := isTerminal(out) && !plain

			names := style.ColorNames()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				hex, _ := style.LookupColor(name)
				row := []string{name, "#" + hex, style.EncodeColor(name, alpha)}
				if tty {
					row = append(row, swatch(hex))
				}
				rows = append(rows, row)
			}

			if !tty {
				fmt.Fprint(out, renderPlain(rows))
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "RGB", "Token", ""}, rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVar(&alpha, "alpha", 0, "Alpha used for the token column (0 opaque - 255 transparent)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print tab separated rows even on a terminal")
	return cmd
}

// swatch renders a two-cell 24-bit background block.
func swatch(hex string) string {
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ""
	}
	r, g, b := value>>16&0xFF, value>>8&0xFF, value&0xFF
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm    %s", r, g, b, ansiReset)
}
