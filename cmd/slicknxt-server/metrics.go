package main

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// promMetricsHandler renders expvar-published metrics in Prometheus text
// exposition format. Known engine metrics get proper HELP and TYPE lines;
// any other numeric expvar falls back to an untyped gauge.
func promMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	type meta struct {
		typ, help string
	}

	metas := map[string]meta{
		"slicknxt_ticks_total":                  {typ: "counter", help: "Number of engine ticks executed"},
		"slicknxt_node_executions_total":        {typ: "counter", help: "Number of node executions"},
		"slicknxt_node_errors_total":            {typ: "counter", help: "Number of node execution errors"},
		"slicknxt_observer_notifications_total": {typ: "counter", help: "Number of observer notifications delivered"},
		"slicknxt_observers":                    {typ: "gauge", help: "Number of registered state observers"},
		"slicknxt_flows_loaded_total":           {typ: "counter", help: "Number of flows installed into the engine"},
		"slicknxt_cycle_fallbacks_total":        {typ: "counter", help: "Number of loads that hit the cycle fallback ordering"},
		"slicknxt_hardware_connected":           {typ: "gauge", help: "Whether a hardware provider is connected"},
		"slicknxt_hardware_changes_total":       {typ: "counter", help: "Number of hardware configuration changes observed"},
	}

	varNames := make([]string, 0, 32)
	expvar.Do(func(kv expvar.KeyValue) {
		varNames = append(varNames, kv.Key)
	})
	sort.Strings(varNames)

	for _, name := range varNames {
		v := expvar.Get(name)
		m, known := metas[name]
		if !known {
			if iv, ok := v.(*expvar.Int); ok {
				_, _ = fmt.Fprintf(w, "# TYPE %s gauge\n", name)
				_, _ = fmt.Fprintf(w, "%s %s\n", name, iv.String())
			}
			continue
		}
		_, _ = fmt.Fprintf(w, "# HELP %s %s\n", name, sanitizeHelp(m.help))
		_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", name, m.typ)
		_, _ = fmt.Fprintf(w, "%s %s\n", name, v.String())
	}
}

func sanitizeHelp(s string) string {
	// Newlines are not allowed in HELP lines
	return strings.ReplaceAll(s, "\n", " ")
}
