package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/odoo"
	"github.com/inovacc/odoocli/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotationLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    core.QuotationLine
		wantErr bool
	}{
		{name: "product and qty", input: "5:2", want: core.QuotationLine{ProductID: 5, Quantity: 2}},
		{name: "with price", input: "5:2:12.5", want: core.QuotationLine{ProductID: 5, Quantity: 2, PriceUnit: 12.5, HasPrice: true}},
		{name: "spaces", input: " 5 : 1 : 3 ", want: core.QuotationLine{ProductID: 5, Quantity: 1, PriceUnit: 3, HasPrice: true}},
		{name: "missing qty", input: "5", wantErr: true},
		{name: "too many parts", input: "5:1:2:3", wantErr: true},
		{name: "bad product", input: "desk:1", wantErr: true},
		{name: "zero product", input: "0:1", wantErr: true},
		{name: "bad qty", input: "5:two", wantErr: true},
		{name: "negative price", input: "5:1:-3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuotationLine(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseQuotationLine(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("parseQuotationLine(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildQuotation(t *testing.T) {
	q, err := buildQuotation(7, []string{"5:1:10", "6:2", "5:2"})
	require.NoError(t, err)

	want := core.Quotation{PartnerID: 7, Lines: []core.QuotationLine{
		{ProductID: 5, Quantity: 3, PriceUnit: 10, HasPrice: true},
		{ProductID: 6, Quantity: 2},
	}}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("buildQuotation() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "5 x 3, 6 x 2", describeQuotation(q))

	lines := q.Vals(time.Now())["order_line"].([]any)
	assert.NotContains(t, lines[1].([]any)[2].(map[string]any), "price_unit")

	_, err = buildQuotation(0, []string{"5:1"})
	assert.ErrorIs(t, err, core.ErrNoPartner)

	_, err = buildQuotation(7, nil)
	assert.ErrorIs(t, err, core.ErrNoLines)

	_, err = buildQuotation(7, []string{"5:0"})

	var lineErr *core.LineError
	assert.True(t, errors.As(err, &lineErr))
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "S001"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDomain(t *testing.T) {
	d, err := parseDomain(`["|",["name","ilike","acme"],["email","=",false]]`)
	require.NoError(t, err)

	want := odoo.Domain{
		odoo.Or(),
		odoo.Cond("name", "ilike", "acme"),
		odoo.Cond("email", "=", false),
	}
	assert.Equal(t, want, d)

	d, err = parseDomain("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDomain(`[["name","acme"]]`)
	assert.Error(t, err)
}

func TestParseVals(t *testing.T) {
	one, err := parseVals(`{"name":"Acme"}`)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"name": "Acme"}}, one)

	many, err := parseVals(`[{"name":"A"},{"name":"B"}]`)
	require.NoError(t, err)
	assert.Len(t, many, 2)

	none, err := parseVals("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseVals(`{"name":`)
	assert.Error(t, err)
}

func TestParseKwargs(t *testing.T) {
	got, err := parseKwargs([]string{"domain=[]", "raise_exception=false", "name=Acme", "offset=10"})
	require.NoError(t, err)

	want := map[string]any{
		"domain":          []any{},
		"raise_exception": false,
		"name":            "Acme",
		"offset":          float64(10),
	}
	assert.Equal(t, want, got)

	_, err = parseKwargs([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseKwargs([]string{"=1"})
	assert.Error(t, err)
}

func TestCallParams(t *testing.T) {
	t.Cleanup(func() {
		callIDs, callDomain, callFields, callLimit = nil, "", nil, 0
		callContext, callVals, callKwargs = "", "", nil
	})

	callIDs = []int64{1, 2}
	callDomain = `[["active","=",true]]`
	callFields = []string{"name"}
	callLimit = 5
	callContext = `{"lang":"es_PE"}`
	callKwargs = []string{"order=name asc"}

	p, err := callParams()
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, p.IDs)
	assert.Equal(t, odoo.Domain{odoo.Cond("active", "=", true)}, p.Domain)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, map[string]any{"lang": "es_PE"}, p.Context)
	assert.Equal(t, map[string]any{"order": "name asc"}, p.Extra)
	assert.Nil(t, p.ValsList)

	callContext = `["not","an","object"]`
	_, err = callParams()
	assert.Error(t, err)
}

func TestParsePolicy(t *testing.T) {
	p, err := parsePolicy("latest")
	require.NoError(t, err)
	assert.Equal(t, state.LatestIssuedWins, p)

	p, err = parsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, state.LastResolvedWins, p)

	_, err = parsePolicy("first")
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"Office Chair Deluxe", 10, "Office ..."},
		{"abcdef", 3, "abc"},
		{"Distribución", 8, "Distr..."},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestOrDashAndMoney(t *testing.T) {
	assert.Equal(t, "-", orDash("  "))
	assert.Equal(t, "x", orDash("x"))
	assert.Equal(t, "12.50", money(12.5))
	assert.Equal(t, "0.00", money(0))
}
