package fieldname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Name
	}{
		{name: "dimension", in: "dimension__ad_name", want: Name{Group: GroupDimension, Key: "ad_name"}},
		{name: "splits on first delimiter only", in: "actions__offsite__x", want: Name{Group: GroupActions, Key: "offsite__x"}},
		{name: "dotted action type", in: "action_values__offsite_conversion.fb_pixel_purchase", want: Name{Group: GroupActionValues, Key: "offsite_conversion.fb_pixel_purchase"}},
		{name: "no delimiter", in: "clicks", want: Unrecognized},
		{name: "single underscore", in: "metric_clicks", want: Unrecognized},
		{name: "unknown group", in: "custom__clicks", want: Unrecognized},
		{name: "empty key", in: "metric__", want: Unrecognized},
		{name: "empty", in: "", want: Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decompose(tt.in))
		})
	}
}

func TestUpstreamField(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "date__date", wantOK: false},
		{in: "breakdown__age", wantOK: false},
		{in: "actions__link_click", want: "actions", wantOK: true},
		{in: "action_values__omni_purchase", want: "action_values", wantOK: true},
		{in: "metric__clicks", want: "clicks", wantOK: true},
		{in: "aggregated_cost__cpc", want: "cpc", wantOK: true},
		{in: "percent__ctr", want: "ctr", wantOK: true},
		{in: "dimension__campaign_id", want: "campaign_id", wantOK: true},
		{in: "unknown", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := UpstreamField(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBreakdown(t *testing.T) {
	got, ok := Breakdown("breakdown__publisher_platform")
	assert.True(t, ok)
	assert.Equal(t, "publisher_platform", got)

	_, ok = Breakdown("dimension__age")
	assert.False(t, ok)

	_, ok = Breakdown("age")
	assert.False(t, ok)
}

func TestComposeIsInverseOfDecompose(t *testing.T) {
	for _, g := range KnownGroups {
		name := string(g) + Delimiter + "some_key"
		assert.Equal(t, name, Compose(Decompose(name)))
	}

	assert.Equal(t, "", Compose(Unrecognized))
}
