package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Simple Prometheus-style metrics for the API and the extraction
// pipeline. This is intentionally minimal and in-memory only.

var (
	mu             sync.RWMutex
	requestsTotal  = make(map[reqKey]int64)
	latencyMsSum   = make(map[latKey]int64)
	latencyMsCount = make(map[latKey]int64)

	aggregationsTotal   = make(map[string]int64)
	aggregationMsSum    int64
	aggregationMsCount  int64
	facetsTotal         = make(map[facetKey]int64)
	cacheLookupsTotal   = make(map[cacheKey]int64)
	retentionDeletedSum int64
)

type reqKey struct {
	Method string
	Path   string
	Status int
}

type latKey struct {
	Method string
	Path   string
}

type facetKey struct {
	Facet string
	Found string
}

type cacheKey struct {
	Layer string
	Hit   string
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// RecordRequest increments request counter and records latency.
func RecordRequest(method, path string, status int, latencyMs int64) {
	mu.Lock()
	defer mu.Unlock()

	rk := reqKey{Method: method, Path: path, Status: status}
	requestsTotal[rk]++

	lk := latKey{Method: method, Path: path}
	latencyMsSum[lk] += latencyMs
	latencyMsCount[lk]++
}

// RecordAggregation counts one finished extraction run by outcome
// ("complete", "invalid_url", "unreachable", "no_data") and records its
// duration.
func RecordAggregation(outcome string, durationMs int64) {
	mu.Lock()
	defer mu.Unlock()

	aggregationsTotal[outcome]++
	aggregationMsSum += durationMs
	aggregationMsCount++
}

// RecordFacet counts whether a facet produced data in a run.
func RecordFacet(facet string, found bool) {
	mu.Lock()
	defer mu.Unlock()
	facetsTotal[facetKey{Facet: facet, Found: boolLabel(found)}]++
}

// RecordCacheLookup counts a lookup against a persistence layer
// ("redis" or "store").
func RecordCacheLookup(layer string, hit bool) {
	mu.Lock()
	defer mu.Unlock()
	cacheLookupsTotal[cacheKey{Layer: layer, Hit: boolLabel(hit)}]++
}

// RecordRetention increments the counter of persisted insights deleted
// by TTL cleanup.
func RecordRetention(deleted int64) {
	if deleted <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	retentionDeletedSum += deleted
}

// Export returns Prometheus-style metrics text.
func Export() string {
	mu.RLock()
	defer mu.RUnlock()

	var b strings.Builder

	b.WriteString("# HELP brandscope_http_requests_total Total HTTP requests\n")
	b.WriteString("# TYPE brandscope_http_requests_total counter\n")

	// Sort keys for stable output
	var reqKeys []reqKey
	for k := range requestsTotal {
		reqKeys = append(reqKeys, k)
	}
	sort.Slice(reqKeys, func(i, j int) bool {
		if reqKeys[i].Method != reqKeys[j].Method {
			return reqKeys[i].Method < reqKeys[j].Method
		}
		if reqKeys[i].Path != reqKeys[j].Path {
			return reqKeys[i].Path < reqKeys[j].Path
		}
		return reqKeys[i].Status < reqKeys[j].Status
	})

	for _, k := range reqKeys {
		fmt.Fprintf(&b, "brandscope_http_requests_total{method=\"%s\",path=\"%s\",status=\"%d\"} %d\n",
			k.Method, k.Path, k.Status, requestsTotal[k])
	}

	b.WriteString("# HELP brandscope_http_request_duration_ms_sum Total request duration in milliseconds\n")
	b.WriteString("# TYPE brandscope_http_request_duration_ms_sum counter\n")
	b.WriteString("# HELP brandscope_http_request_duration_ms_count Request count for latency metric\n")
	b.WriteString("# TYPE brandscope_http_request_duration_ms_count counter\n")

	var latKeys []latKey
	for k := range latencyMsSum {
		latKeys = append(latKeys, k)
	}
	sort.Slice(latKeys, func(i, j int) bool {
		if latKeys[i].Method != latKeys[j].Method {
			return latKeys[i].Method < latKeys[j].Method
		}
		return latKeys[i].Path < latKeys[j].Path
	})

	for _, k := range latKeys {
		fmt.Fprintf(&b, "brandscope_http_request_duration_ms_sum{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsSum[k])
		fmt.Fprintf(&b, "brandscope_http_request_duration_ms_count{method=\"%s\",path=\"%s\"} %d\n",
			k.Method, k.Path, latencyMsCount[k])
	}

	// Aggregation metrics
	b.WriteString("# HELP brandscope_aggregations_total Extraction runs by outcome\n")
	b.WriteString("# TYPE brandscope_aggregations_total counter\n")

	var outcomes []string
	for o := range aggregationsTotal {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Fprintf(&b, "brandscope_aggregations_total{outcome=\"%s\"} %d\n", o, aggregationsTotal[o])
	}

	b.WriteString("# HELP brandscope_aggregation_duration_ms_sum Total extraction run duration in milliseconds\n")
	b.WriteString("# TYPE brandscope_aggregation_duration_ms_sum counter\n")
	fmt.Fprintf(&b, "brandscope_aggregation_duration_ms_sum %d\n", aggregationMsSum)
	b.WriteString("# HELP brandscope_aggregation_duration_ms_count Extraction run count for latency metric\n")
	b.WriteString("# TYPE brandscope_aggregation_duration_ms_count counter\n")
	fmt.Fprintf(&b, "brandscope_aggregation_duration_ms_count %d\n", aggregationMsCount)

	b.WriteString("# HELP brandscope_facets_total Facet extractions by facet and whether data was found\n")
	b.WriteString("# TYPE brandscope_facets_total counter\n")

	var facetKeys []facetKey
	for k := range facetsTotal {
		facetKeys = append(facetKeys, k)
	}
	sort.Slice(facetKeys, func(i, j int) bool {
		if facetKeys[i].Facet != facetKeys[j].Facet {
			return facetKeys[i].Facet < facetKeys[j].Facet
		}
		return facetKeys[i].Found < facetKeys[j].Found
	})
	for _, k := range facetKeys {
		fmt.Fprintf(&b, "brandscope_facets_total{facet=\"%s\",found=\"%s\"} %d\n", k.Facet, k.Found, facetsTotal[k])
	}

	// Cache metrics
	b.WriteString("# HELP brandscope_cache_lookups_total Insight lookups by layer and hit\n")
	b.WriteString("# TYPE brandscope_cache_lookups_total counter\n")

	var cacheKeys []cacheKey
	for k := range cacheLookupsTotal {
		cacheKeys = append(cacheKeys, k)
	}
	sort.Slice(cacheKeys, func(i, j int) bool {
		if cacheKeys[i].Layer != cacheKeys[j].Layer {
			return cacheKeys[i].Layer < cacheKeys[j].Layer
		}
		return cacheKeys[i].Hit < cacheKeys[j].Hit
	})
	for _, k := range cacheKeys {
		fmt.Fprintf(&b, "brandscope_cache_lookups_total{layer=\"%s\",hit=\"%s\"} %d\n", k.Layer, k.Hit, cacheLookupsTotal[k])
	}

	// Retention metrics
	b.WriteString("# HELP brandscope_retention_insights_deleted_total Total persisted insights deleted by TTL\n")
	b.WriteString("# TYPE brandscope_retention_insights_deleted_total counter\n")
	fmt.Fprintf(&b, "brandscope_retention_insights_deleted_total %d\n", retentionDeletedSum)

	return b.String()
}
