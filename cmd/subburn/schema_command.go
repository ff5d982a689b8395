package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/node"
)

func newSchemaCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "schema",
		Short:       "Describe the subtitle burner node inputs and outputs",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				payload := map[string]any{
					"name":         node.NodeName,
					"display_name": node.DisplayName,
					"category":     node.Category,
					"inputs":       node.InputTypes(),
					"return_types": node.ReturnTypes,
					"return_names": node.ReturnNames,
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			fmt.Fprintf(out, "%s (%s) in %s\n", node.DisplayName, node.NodeName, node.Category)
			rows := make([][]string, 0, len(node.InputTypes()))
			for _, field := range node.InputTypes() {
				rows = append(rows, []string{field.Name, string(field.Kind), formatDefault(field.Default), formatRange(field)})
			}
			fmt.Fprintln(out, renderTable([]string{"Input", "Kind", "Default", "Values"}, rows, nil))

			returns := make([]string, len(node.ReturnTypes))
			for i, kind := range node.ReturnTypes {
				returns[i] = fmt.Sprintf("%s %s", node.ReturnNames[i], kind)
			}
			fmt.Fprintf(out, "Returns: %s\n", strings.Join(returns, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the schema as JSON")
	return cmd
}

func formatDefault(value any) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(value)
}

func formatRange(field node.Field) string {
	switch {
	case len(field.Choices) > 6:
		return fmt.Sprintf("%d choices", len(field.Choices))
	case len(field.Choices) > 0:
		parts := make([]string, len(field.Choices))
		for i, c := range field.Choices {
			parts[i] = fmt.Sprint(c)
		}
		return strings.Join(parts, " | ")
	case field.Min != nil && field.Max != nil:
		return formatNumber(*field.Min) + " - " + formatNumber(*field.Max)
	default:
		return "-"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
