// Package loanview derives display values from loan snapshots: waiver
// choices, progress percentages and manage-token detection. Everything here
// is pure; the API response stays the single source of truth.
package loanview

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"dayne-web/pkg/format"
)

// WaiverOptions builds the candidate waiver amounts for a lender: the
// monthly plan amount plus 25%, 50% and 100% of the remaining balance, each
// rounded to cents, kept only when inside (0, remaining], deduplicated and
// sorted ascending. A nil result means no waiver UI should be shown.
func WaiverOptions(remaining, monthlyPlan float64) []float64 {
	if remaining <= 0 {
		return nil
	}

	rem := decimal.NewFromFloat(remaining)
	candidates := []decimal.Decimal{
		decimal.NewFromFloat(monthlyPlan),
		rem.Mul(decimal.NewFromFloat(0.25)),
		rem.Mul(decimal.NewFromFloat(0.5)),
		rem,
	}

	seen := make(map[string]struct{}, len(candidates))
	kept := make([]decimal.Decimal, 0, len(candidates))
	for _, c := range candidates {
		c = c.Round(2)
		// Rounding can push a candidate just past the raw remaining
		// balance; such a candidate is not offerable.
		if !c.IsPositive() || c.GreaterThan(rem) {
			continue
		}
		key := c.StringFixed(2)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, c)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].LessThan(kept[j]) })

	out := make([]float64, len(kept))
	for i, c := range kept {
		out[i], _ = c.Float64()
	}
	return out
}

// WaiverOptionLabel renders an option as "$50.00 (25% waiver)". The percent
// is shown as an integer when within 0.05 of one, otherwise to one decimal
// place with a trailing ".0" stripped.
func WaiverOptionLabel(amount, remaining float64, currency string) string {
	if remaining <= 0 {
		return format.Currency(amount, currency)
	}
	percent := amount / remaining * 100
	var pct string
	if math.Abs(percent-math.Round(percent)) < 0.05 {
		pct = strconv.FormatFloat(math.Round(percent), 'f', 0, 64)
	} else {
		pct = strings.TrimSuffix(strconv.FormatFloat(percent, 'f', 1, 64), ".0")
	}
	return fmt.Sprintf("%s (%s%% waiver)", format.Currency(amount, currency), pct)
}

// Progress returns the submitted and approved percentages, each clamped to
// 100. The two track different things (recorded vs. lender-approved money)
// and drive separate indicators.
func Progress(total, submitted, approved float64) (submittedPct, approvedPct float64) {
	return progressPct(total, submitted), progressPct(total, approved)
}

func progressPct(total, part float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(100, part/total*100)
}

// ExtractManageToken detects a manage token in whatever the borrower pasted:
// the bare token, a full manage URL, or a schemeless path. It returns ""
// when no token can be detected.
func ExtractManageToken(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "/") {
		return trimmed
	}

	raw := trimmed
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		if strings.HasPrefix(trimmed, "/") {
			raw = "http://placeholder" + trimmed
		} else {
			raw = "http://placeholder/" + trimmed
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	for i, p := range parts {
		if p == "manage" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// ReadableAction turns an audit action like "payment.approved" into
// "Payment Approved" for the timeline heading.
func ReadableAction(action string) string {
	cleaned := strings.NewReplacer(".", " ", "_", " ").Replace(action)
	words := strings.Fields(cleaned)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PayloadSummary flattens an audit payload into "key: value" pairs joined
// with a bullet, sorted by key so rendering is stable.
func PayloadSummary(payload map[string]any) string {
	if len(payload) == 0 {
		return ""
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s: %v", k, payload[k])
	}
	return strings.Join(pairs, " • ")
}
