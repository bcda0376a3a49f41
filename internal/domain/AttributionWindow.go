package domain

import "strings"

// AttributionWindow is the configured action_attribution_windows value:
// either "default" or a comma separated list of window tokens.
type AttributionWindow string

const DefaultAttributionWindow AttributionWindow = "default"

// Window tokens accepted by the insights endpoint.
const (
	Window1dClick  = "1d_click"
	Window7dClick  = "7d_click"
	Window28dClick = "28d_click"
	Window1dView   = "1d_view"
	Window7dView   = "7d_view"
	WindowDDA      = "dda"
)

func (w AttributionWindow) IsDefault() bool {
	return w == DefaultAttributionWindow
}

// Tokens splits the window value on commas. An empty value yields no tokens.
func (w AttributionWindow) Tokens() []string {
	if strings.TrimSpace(string(w)) == "" {
		return nil
	}

	parts := strings.Split(string(w), ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}

func (w AttributionWindow) String() string {
	return string(w)
}

// SelectOption is a label/value pair offered to whoever configures a report.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AttributionWindowOptions lists the selectable conversion windows in display order.
var AttributionWindowOptions = []SelectOption{
	{Label: "Default (7 day click / 1 day view)", Value: "default"},
	{Label: "1 day click", Value: Window1dClick},
	{Label: "7 day click", Value: Window7dClick},
	{Label: "28 day click", Value: Window28dClick},
	{Label: "1 day view", Value: Window1dView},
	{Label: "7 day view", Value: Window7dView},
	{Label: "1 day click / 1 day view", Value: "1d_click,1d_view"},
	{Label: "1 day click / 7 day view", Value: "1d_click,7d_view"},
	{Label: "7 day click / 1 day view", Value: "7d_click,1d_view"},
	{Label: "7 day click / 7 day view", Value: "7d_click,7d_view"},
	{Label: "28 day click / 1 day view", Value: "28d_click,1d_view"},
	{Label: "28 day click / 7 day view", Value: "28d_click,7d_view"},
	{Label: "DDA", Value: WindowDDA},
}
