package report

import (
	"fmt"
	"io"

	"securiwatch/internal/pipeline"
	"securiwatch/internal/risk"
)

// PrintSummary writes the human-readable view of a collection report
func PrintSummary(w io.Writer, rep *pipeline.Report) {
	fmt.Fprintln(w, "COLLECTION SUMMARY")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Total events: %d\n", rep.Total)

	if len(rep.ByType) > 0 {
		fmt.Fprintln(w, "\nBy event type:")
		for _, tc := range rep.ByType {
			fmt.Fprintf(w, "   %s: %d\n", tc.EventType, tc.Count)
		}
	}

	fmt.Fprintf(w, "\nRisk events (score >= %d): %d\n", risk.Threshold, rep.RiskEventCount)

	if len(rep.TopRisk) > 0 {
		fmt.Fprintf(w, "\nTOP %d RISK EVENTS:\n", pipeline.TopN)
		for _, evt := range rep.TopRisk {
			fmt.Fprintf(w, "   [%s] Risk=%d/%d\n", evt.Timestamp.Format("2006-01-02 15:04:05"), evt.RiskScore, risk.MaxScore)
			fmt.Fprintf(w, "   Type: %s | User: %s\n", evt.EventType, evt.User)
			fmt.Fprintf(w, "   Message: %s\n\n", truncate(evt.Message, 80))
		}
	}

	if len(rep.TopSources) > 0 {
		fmt.Fprintln(w, "Top source IPs among risk events:")
		for _, sc := range rep.TopSources {
			fmt.Fprintf(w, "   %s: %d\n", sc.IP, sc.Count)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
