package node

import (
	"subburn/internal/style"
	"subburn/internal/transcribe"
)

// Host-facing identity of the node.
const (
	NodeName    = "AudioSubtitle"
	DisplayName = "📺 Audio Subtitles"
	Category    = "Custom/Audio Subtitles"
)

// Kind is a host value type.
type Kind string

// Value kinds understood by the host runtime.
const (
	KindImage  Kind = "IMAGE"
	KindAudio  Kind = "AUDIO"
	KindFloat  Kind = "FLOAT"
	KindInt    Kind = "INT"
	KindChoice Kind = "CHOICE"
)

// Field describes one typed input.
type Field struct {
	Name    string   `json:"name"`
	Kind    Kind     `json:"kind"`
	Default any      `json:"default,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Choices []any    `json:"choices,omitempty"`
}

// ReturnTypes and ReturnNames describe the output tuple.
var (
	ReturnTypes = []Kind{KindImage, KindAudio, KindFloat}
	ReturnNames = []string{"frames", "audio", "fps"}
)

func bound(v float64) *float64 { return &v }

func intField(name string, def, lo, hi int) Field {
	return Field{Name: name, Kind: KindInt, Default: def, Min: bound(float64(lo)), Max: bound(float64(hi)), Step: bound(1)}
}

func choiceField[T any](name string, def T, choices []T) Field {
	values := make([]any, len(choices))
	for i, c := range choices {
		values[i] = c
	}
	return Field{Name: name, Kind: KindChoice, Default: def, Choices: values}
}

// InputTypes returns the node's input schema in declaration order.
func InputTypes() []Field {
	d := style.Default()
	colors := style.ColorNames()
	return []Field{
		{Name: "images", Kind: KindImage},
		{Name: "audio", Kind: KindAudio},
		{Name: "fps", Kind: KindFloat, Default: DefaultFPS, Min: bound(MinFPS), Max: bound(MaxFPS), Step: bound(0.01)},
		choiceField("model_size", transcribe.DefaultSize, transcribe.Sizes()),
		choiceField("Fontname", d.FontName, style.Fonts()),
		intField("Fontsize", d.FontSize, style.MinFontSize, style.MaxFontSize),
		choiceField("PrimaryColour", d.PrimaryColor, colors),
		choiceField("OutlineColour", d.OutlineColor, colors),
		choiceField("BackColour", d.BackColor, colors),
		intField("OutlineAlpha", d.OutlineAlpha, style.MinAlpha, style.MaxAlpha),
		intField("BackAlpha", d.BackAlpha, style.MinAlpha, style.MaxAlpha),
		choiceField("BorderStyle", d.BorderStyle, style.BorderStyles()),
		intField("Outline", d.Outline, style.MinOutline, style.MaxOutline),
		intField("Shadow", d.Shadow, style.MinShadow, style.MaxShadow),
		intField("Alignment", d.Alignment, style.MinAlignment, style.MaxAlignment),
		intField("MarginV", d.MarginV, style.MinMarginV, style.MaxMarginV),
	}
}

// Registration is what a host needs to list and instantiate the node.
type Registration struct {
	DisplayName string
	Category    string
	New         func(Deps) (*SubtitleBurner, error)
}

// Registry maps node names to their registrations.
var Registry = map[string]Registration{
	NodeName: {DisplayName: DisplayName, Category: Category, New: New},
}
