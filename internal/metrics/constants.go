package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCasesOpened  = "cases_opened_total"
	MetricNameShopBuys     = "shop_purchases_total"
	MetricNameItemsSold    = "items_sold_total"
	MetricNameDailyClaims  = "daily_claims_total"
	MetricNameMoneyEarned  = "money_earned_total"
	MetricNameMoneySpent   = "money_spent_total"
	MetricNameCasePayout   = "case_payout_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCasesOpened = "Total number of cases opened"
	HelpTextShopBuys    = "Total number of shop purchases"
	HelpTextItemsSold   = "Total number of items sold"
	HelpTextDailyClaims = "Total number of daily rewards claimed"
	HelpTextMoneyEarned = "Total money credited, in cents"
	HelpTextMoneySpent  = "Total money debited, in cents"
	HelpTextCasePayout  = "Total value dropped from cases, in cents"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelCase   = "case"
	LabelItem   = "item"
	LabelRarity = "rarity"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
