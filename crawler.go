package inkpost

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var crawlerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "inkpost",
	Subsystem: "http",
	Name:      "crawler_requests_total",
	Help:      "Requests from recognised crawlers, by crawler.",
}, []string{"crawler"})

// Checked in order; specific names come before the generic fallbacks.
var crawlerPatterns = []struct{ pattern, name string }{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"yandex", "Yandex"},
	{"baidu", "Baidu"},
	{"duckduckbot", "DuckDuckBot"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"mj12bot", "Majestic"},
	{"dotbot", "Moz"},
	{"slurp", "Yahoo Slurp"},
	{"feedly", "Feedly"},
	{"crawler", "Generic Crawler"},
	{"spider", "Generic Spider"},
	{"crawl", "Generic Crawler"},
	{"scrape", "Generic Scraper"},
	{"bot", "Other Bot"},
}

// crawlerName reports which crawler, if any, sent a User-Agent.
func crawlerName(ua string) (string, bool) {
	ua = strings.ToLower(ua)
	for _, p := range crawlerPatterns {
		if strings.Contains(ua, p.pattern) {
			return p.name, true
		}
	}
	return "", false
}
