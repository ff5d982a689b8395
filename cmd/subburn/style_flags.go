package main

import (
	"github.com/spf13/cobra"

	"subburn/internal/style"
)

// styleFlags binds the caption style flags. Values start at the built-in
// defaults; apply only overrides what the user passed explicitly so the
// [style] config section still wins over untouched flags.
type styleFlags struct {
	values style.Config
}

func addStyleFlags(cmd *cobra.Command) *styleFlags {
	sf := &styleFlags{values: style.Default()}
	f := cmd.Flags()
	f.StringVar(&sf.values.FontName, "font", sf.values.FontName, "Caption font (Arial or \"WenQuanYi Zen Hei\")")
	f.IntVar(&sf.values.FontSize, "font-size", sf.values.FontSize, "Caption font size (5-100)")
	f.StringVar(&sf.values.PrimaryColor, "primary-color", sf.values.PrimaryColor, "Text color name (list them with subburn colors)")
	f.StringVar(&sf.values.OutlineColor, "outline-color", sf.values.OutlineColor, "Outline color name")
	f.IntVar(&sf.values.OutlineAlpha, "outline-alpha", sf.values.OutlineAlpha, "Outline transparency (0 opaque - 255 transparent)")
	f.StringVar(&sf.values.BackColor, "back-color", sf.values.BackColor, "Background box color name")
	f.IntVar(&sf.values.BackAlpha, "back-alpha", sf.values.BackAlpha, "Background transparency (0 opaque - 255 transparent)")
	f.IntVar(&sf.values.BorderStyle, "border-style", sf.values.BorderStyle, "1 = outline and shadow, 3 = opaque box")
	f.IntVar(&sf.values.Outline, "outline", sf.values.Outline, "Outline width (0-10)")
	f.IntVar(&sf.values.Shadow, "shadow", sf.values.Shadow, "Shadow depth (0-10)")
	f.IntVar(&sf.values.Alignment, "alignment", sf.values.Alignment, "Numpad position (1-9)")
	f.IntVar(&sf.values.MarginV, "margin-v", sf.values.MarginV, "Vertical margin in pixels (0-500)")
	return sf
}

func (sf *styleFlags) apply(cmd *cobra.Command, base style.Config) style.Config {
	f := cmd.Flags()
	out := base
	if f.Changed("font") {
		out.FontName = sf.values.FontName
	}
	if f.Changed("font-size") {
		out.FontSize = sf.values.FontSize
	}
	if f.Changed("primary-color") {
		out.PrimaryColor = sf.values.PrimaryColor
	}
	if f.Changed("outline-color") {
		out.OutlineColor = sf.values.OutlineColor
	}
	if f.Changed("outline-alpha") {
		out.OutlineAlpha = sf.values.OutlineAlpha
	}
	if f.Changed("back-color") {
		out.BackColor = sf.values.BackColor
	}
	if f.Changed("back-alpha") {
		out.BackAlpha = sf.values.BackAlpha
	}
	if f.Changed("border-style") {
		out.BorderStyle = sf.values.BorderStyle
	}
	if f.Changed("outline") {
		out.Outline = sf.values.Outline
	}
	if f.Changed("shadow") {
		out.Shadow = sf.values.Shadow
	}
	if f.Changed("alignment") {
		out.Alignment = sf.values.Alignment
	}
	if f.Changed("margin-v") {
		out.MarginV = sf.values.MarginV
	}
	return out
}
