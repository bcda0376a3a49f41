package catalog

import (
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/fieldname"
)

type builder struct {
	currency string
}

func (b builder) build() []domain.SchemaField {
	return []domain.SchemaField{
		// Actions
		b.actions("rsvp", "RSVP"),
		b.actions("video_view", "Video Views"),
		b.actions("landing_page_view", "Landing Page Views"),
		b.actions("comment", "Comments"),
		b.actions("like", "Likes"),
		b.actions("link_click", "Link Clicks"),
		b.actions("onsite_conversion.post_save", "Post saves"),
		b.actions("offsite_conversion.fb_pixel_add_to_cart", "Website Adds to Cart Conversions"),
		b.actions("offsite_conversion.fb_pixel_initiate_checkout", "Website Checkout Initiated Conversions"),
		b.actions("offsite_conversion.fb_pixel_purchase", "Website Purchase Conversions"),
		b.actions("offsite_conversion.fb_pixel_view_content", "Website View Content Conversions"),
		b.actions("post", "Post Shares"),

		// Action values
		b.actionValues("offsite_conversion.fb_pixel_add_to_cart", "Website Adds to Cart Conversion Value"),
		b.actionValues("offsite_conversion.fb_pixel_initiate_checkout", "Website Checkout Initiated Conversion Value"),
		b.actionValues("offsite_conversion.fb_pixel_purchase", "Website Purchase Conversion Value"),
		b.actionValues("offsite_conversion.fb_pixel_view_content", "Website View Content Conversion Value"),
		b.actionValues("omni_add_to_cart", "Omni Adds to Cart Conversion Value"),
		b.actionValues("omni_initiated_checkout", "Omni Checkout Initiated Conversion Value"),
		b.actionValues("omni_purchase", "Omni Purchase Conversion Value"),
		b.actionValues("omni_view_content", "Omni View Content Conversion Value"),

		// Breakdowns
		b.breakdown("ad_format_asset"),
		b.breakdown("age"),
		b.breakdown("body_asset"),
		b.breakdown("call_to_action_asset"),
		b.breakdown("country"),
		b.breakdown("description_asset"),
		b.breakdown("gender"),
		b.breakdown("image_asset"),
		b.breakdown("impression_device"),
		b.breakdown("link_url_asset"),
		b.breakdown("product_id"),
		b.breakdown("region"),
		b.breakdown("title_asset"),
		b.breakdown("video_asset"),
		b.breakdown("dma"),
		b.breakdown("frequency_value"),
		b.breakdown("hourly_stats_aggregated_by_advertiser_time_zone"),
		b.breakdown("hourly_stats_aggregated_by_audience_time_zone"),
		b.breakdown("place_page_id"),
		b.breakdown("publisher_platform"),
		b.breakdown("platform_position"),
		b.breakdown("device_platform"),

		// Date
		b.date("date", "YEAR_MONTH_DAY", "Date", true),

		// Dimensions
		b.dimension("ad_id"),
		b.dimension("ad_name"),
		b.dimension("adset_id"),
		b.dimension("adset_name"),
		b.dimension("buying_type"),
		b.dimension("campaign_id"),
		b.dimension("campaign_name"),
		b.dimension("conversion_rate_ranking"),
		b.dimension("engagement_rate_ranking"),
		b.dimension("objective"),
		b.dimension("quality_ranking"),

		// Costs
		b.aggregatedCost("cost_per_estimated_ad_recallers", "Sum(cost__spend) / (Sum(metric__estimated_ad_recallers) / 1000)", ""),
		b.aggregatedCost("cost_per_inline_link_click", "Sum(cost__spend) / Sum(metric__inline_link_clicks)", ""),
		b.aggregatedCost("cost_per_inline_post_engagement", "Sum(cost__spend) / Sum(metric__inline_post_engagement)", ""),
		b.aggregatedCost("cost_per_unique_click", "Sum(cost__spend) / Sum(metric__unique_clicks)", ""),
		b.aggregatedCost("cost_per_unique_inline_link_click", "Sum(cost__spend) / Sum(metric__unique_inline_link_clicks)", ""),
		b.aggregatedCost("cpc", "Sum(cost__spend) / Sum(metric__clicks)", "CPC"),
		b.aggregatedCost("cpm", "Sum(cost__spend) / (Sum(metric__impressions) / 1000)", "CPM"),
		b.aggregatedCost("cpp", "Sum(cost__spend) / (Sum(metric__reach) / 1000)", "CPP"),
		b.cost("social_spend"),
		b.cost("spend"),

		// Metrics
		b.metric("clicks"),
		b.metric("deeplink_clicks"),
		b.metric("estimated_ad_recall_rate"),
		b.metric("estimated_ad_recallers"),
		b.metric("full_view_impressions"),
		b.metric("full_view_reach"),
		b.metric("impressions"),
		b.metric("inline_link_clicks"),
		b.metric("inline_post_engagement"),
		b.metric("instant_experience_clicks_to_open"),
		b.metric("instant_experience_clicks_to_start"),
		b.metric("instant_experience_outbound_clicks"),
		b.metric("newsfeed_avg_position"),
		b.metric("newsfeed_clicks"),
		b.metric("newsfeed_impressions"),
		b.metric("reach"),
		b.metric("unique_clicks"),
		b.metric("unique_inline_link_clicks"),
		b.aggregatedMetric("frequency", "Sum(metric__impressions) / Sum(metric__reach)"),

		// Percents
		b.percent("inline_link_click_ctr", "Sum(metric__inline_link_clicks) / Sum(metric__impressions)", ""),
		b.percent("ctr", "Sum(metric__clicks) / Sum(metric__impressions)", "CTR"),
		b.percent("unique_ctr", "Sum(metric__unique_clicks) / Sum(metric__reach)", ""),
		b.percent("unique_inline_link_click_ctr", "Sum(metric__unique_inline_link_clicks) / Sum(metric__reach)", ""),
		b.percent("unique_link_clicks_ctr", "Sum(actions__link_click) / Sum(metric__reach)", ""),
	}
}

func name(group fieldname.Group, key string) string {
	return fieldname.Compose(fieldname.Name{Group: group, Key: key})
}

func labelOr(label, key string) string {
	if label != "" {
		return label
	}
	return labelFromKey(key)
}

func (b builder) currencyMetric(group fieldname.Group, key, label, groupLabel, formula string) domain.SchemaField {
	return domain.SchemaField{
		Name:          name(group, key),
		Label:         labelOr(label, key),
		Group:         groupLabel,
		DataType:      domain.DataTypeNumber,
		ConceptType:   domain.ConceptMetric,
		SemanticType:  b.currency,
		SemanticGroup: domain.SemanticGroupCurrency,
		Formula:       formula,
	}
}

func (b builder) numberMetric(group fieldname.Group, key, label, groupLabel, formula string) domain.SchemaField {
	return domain.SchemaField{
		Name:         name(group, key),
		Label:        labelOr(label, key),
		Group:        groupLabel,
		DataType:     domain.DataTypeNumber,
		ConceptType:  domain.ConceptMetric,
		SemanticType: "NUMBER",
		Formula:      formula,
	}
}

func (b builder) textDimension(group fieldname.Group, key, groupLabel string) domain.SchemaField {
	return domain.SchemaField{
		Name:         name(group, key),
		Label:        labelFromKey(key),
		Group:        groupLabel,
		DataType:     domain.DataTypeString,
		ConceptType:  domain.ConceptDimension,
		SemanticType: "TEXT",
	}
}

func (b builder) date(key, semanticType, label string, isDefault bool) domain.SchemaField {
	return domain.SchemaField{
		Name:          name(fieldname.GroupDate, key),
		Label:         labelOr(label, key),
		Group:         "Date",
		DataType:      domain.DataTypeString,
		ConceptType:   domain.ConceptDimension,
		SemanticType:  semanticType,
		SemanticGroup: domain.SemanticGroupDatetime,
		IsDefault:     isDefault,
	}
}

func (b builder) actions(key, label string) domain.SchemaField {
	return b.numberMetric(fieldname.GroupActions, key, label, "Actions", "")
}

func (b builder) actionValues(key, label string) domain.SchemaField {
	return b.currencyMetric(fieldname.GroupActionValues, key, label, "Action Values", "")
}

func (b builder) breakdown(key string) domain.SchemaField {
	return b.textDimension(fieldname.GroupBreakdown, key, "Breakdown")
}

func (b builder) dimension(key string) domain.SchemaField {
	return b.textDimension(fieldname.GroupDimension, key, "Dimensions")
}

func (b builder) cost(key string) domain.SchemaField {
	return b.currencyMetric(fieldname.GroupCost, key, "", "Costs", "")
}

func (b builder) aggregatedCost(key, formula, label string) domain.SchemaField {
	return b.currencyMetric(fieldname.GroupAggregatedCost, key, label, "Costs", formula)
}

func (b builder) metric(key string) domain.SchemaField {
	return b.numberMetric(fieldname.GroupMetric, key, "", "Metrics", "")
}

func (b builder) aggregatedMetric(key, formula string) domain.SchemaField {
	return b.numberMetric(fieldname.GroupAggregatedMetric, key, "", "Metrics", formula)
}

func (b builder) percent(key, formula, label string) domain.SchemaField {
	return domain.SchemaField{
		Name:          name(fieldname.GroupPercent, key),
		Label:         labelOr(label, key),
		Group:         "Metrics",
		DataType:      domain.DataTypeNumber,
		ConceptType:   domain.ConceptMetric,
		SemanticType:  "PERCENT",
		SemanticGroup: domain.SemanticGroupNumeric,
		Formula:       formula,
	}
}
