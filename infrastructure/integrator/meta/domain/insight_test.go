package metadomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageBody = `{
	"data": [
		{
			"date_start": "2023-05-07",
			"date_stop": "2023-05-07",
			"campaign_name": "Spring \"Sale\"",
			"clicks": "42",
			"reach": 1200,
			"ctr": 1.25,
			"quality_ranking": null,
			"actions": [
				{"action_type": "link_click", "value": "10", "7d_click": "5", "1d_view": "3"},
				{"action_type": "like", "value": 4}
			]
		}
	],
	"paging": {
		"cursors": {"before": "b", "after": "a"},
		"next": "https://graph.facebook.com/v15.0/act_1/insights?after=a"
	}
}`

func TestPage_DecodeInsights(t *testing.T) {
	var page Page[InsightRecord]
	require.NoError(t, jsonAPI.Unmarshal([]byte(pageBody), &page))

	require.Len(t, page.Data, 1)
	assert.Equal(t, "https://graph.facebook.com/v15.0/act_1/insights?after=a", page.Paging.Next)

	rec := page.Data[0]
	assert.Equal(t, "2023-05-07", rec.DateStart())

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{key: "campaign_name", want: `Spring "Sale"`, ok: true},
		{key: "clicks", want: "42", ok: true},
		{key: "reach", want: "1200", ok: true},
		{key: "ctr", want: "1.25", ok: true},
		{key: "quality_ranking", want: "", ok: false},
		{key: "actions", want: "", ok: false},
		{key: "missing", want: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := rec.Scalar(tt.key)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestInsightRecord_ActionStats(t *testing.T) {
	var page Page[InsightRecord]
	require.NoError(t, jsonAPI.Unmarshal([]byte(pageBody), &page))

	stats := page.Data[0].ActionStats("actions")
	require.Len(t, stats, 2)

	assert.Equal(t, "link_click", stats[0].ActionType)
	assert.Equal(t, "10", stats[0].Value)
	assert.Equal(t, map[string]string{"7d_click": "5", "1d_view": "3"}, stats[0].Windows)

	v, ok := stats[0].WindowValue("default")
	assert.True(t, ok)
	assert.Equal(t, "10", v)

	_, ok = stats[0].WindowValue("28d_click")
	assert.False(t, ok)

	assert.Equal(t, "4", stats[1].Value)
	assert.Nil(t, page.Data[0].ActionStats("action_values"))
}

func TestAccountPath(t *testing.T) {
	assert.Equal(t, "act_123", AccountPath("123"))
	assert.Equal(t, "act_123", AccountPath("act_123"))
}
