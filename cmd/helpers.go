package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/odoo"
)

// parseID parses a positive record id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}

	return id, nil
}

// parseQuotationLine parses "product:qty[:price]". Without a price the line
// carries none and Odoo applies the pricelist.
func parseQuotationLine(s string) (core.QuotationLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return core.QuotationLine{}, fmt.Errorf("invalid line %q (want product:qty[:price])", s)
	}

	product, err := parseID(parts[0])
	if err != nil {
		return core.QuotationLine{}, fmt.Errorf("invalid line %q: %w", s, err)
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return core.QuotationLine{}, fmt.Errorf("invalid quantity in line %q", s)
	}

	line := core.QuotationLine{ProductID: product, Quantity: qty}

	if len(parts) == 3 {
		price, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || price < 0 {
			return core.QuotationLine{}, fmt.Errorf("invalid price in line %q", s)
		}

		line.PriceUnit = price
		line.HasPrice = true
	}

	return line, nil
}

// parseDomain parses a JSON domain such as [["name","ilike","acme"]].
func parseDomain(s string) (odoo.Domain, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var d odoo.Domain
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("invalid domain: %w", err)
	}

	return d, nil
}

// parseObject parses a JSON object flag.
func parseObject(name, s string) (map[string]any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return m, nil
}

// parseVals accepts one JSON object or an array of objects.
func parseVals(s string) ([]map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.HasPrefix(s, "[") {
		var list []map[string]any
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return nil, fmt.Errorf("invalid vals: %w", err)
		}

		return list, nil
	}

	one, err := parseObject("vals", s)
	if err != nil {
		return nil, err
	}

	return []map[string]any{one}, nil
}

// parseKwargs parses repeated key=json flags. A value that is not valid JSON
// is sent as a string.
func parseKwargs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(pairs))

	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid argument %q (want key=value)", p)
		}

		var decoded any
		if err := json.Unmarshal([]byte(v), &decoded); err != nil {
			decoded = v
		}

		out[strings.TrimSpace(k)] = decoded
	}

	return out, nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}

	return s
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

var stdin = bufio.NewReader(os.Stdin)

// readLine reads one line from stdin without the trailing newline.
func readLine() (string, error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// promptLine prints prompt and reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	line, err := readLine()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptConfirm asks the user for confirmation and returns true if they confirm
func promptConfirm(prompt string) bool {
	answer, err := promptLine(prompt)
	if err != nil {
		return false
	}

	return answer == "y" || answer == "Y"
}
