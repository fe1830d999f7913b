package cmd

import (
	"github.com/inovacc/odoocli/internal/odoo"
	"github.com/spf13/cobra"
)

var (
	callIDs     []int64
	callDomain  string
	callFields  []string
	callLimit   int
	callContext string
	callVals    string
	callKwargs  []string
)

var callCmd = &cobra.Command{
	Use:   "call <model> <method>",
	Short: "Call any model method and print the raw JSON reply",
	Long: `Call a model method through the JSON-2 API with the stored session.

Flags map to keyword arguments: --ids, --domain (JSON), --fields, --limit,
--context (JSON object) and --vals (JSON object or array, sent as vals_list).
Any other keyword argument can be passed with --arg key=value, where value is
JSON or a plain string.

Examples:
  odoocli call res.partner search_read --domain '[["is_company","=",true]]' --fields name --limit 5
  odoocli call res.partner read --ids 7,8 --fields name,email
  odoocli call res.partner create --vals '{"name":"Acme"}'
  odoocli call sale.order action_confirm --ids 42
  odoocli call res.partner search_count --arg 'domain=[]'`,
	Args: cobra.ExactArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().Int64SliceVar(&callIDs, "ids", nil, "Record ids")
	callCmd.Flags().StringVar(&callDomain, "domain", "", "Search domain as JSON")
	callCmd.Flags().StringSliceVar(&callFields, "fields", nil, "Fields to read")
	callCmd.Flags().IntVar(&callLimit, "limit", 0, "Maximum number of records")
	callCmd.Flags().StringVar(&callContext, "context", "", "Context as a JSON object")
	callCmd.Flags().StringVar(&callVals, "vals", "", "Values as a JSON object or array")
	callCmd.Flags().StringArrayVar(&callKwargs, "arg", nil, "Extra keyword argument key=value (repeatable)")
}

func callParams() (odoo.Params, error) {
	domain, err := parseDomain(callDomain)
	if err != nil {
		return odoo.Params{}, err
	}

	ctx, err := parseObject("context", callContext)
	if err != nil {
		return odoo.Params{}, err
	}

	vals, err := parseVals(callVals)
	if err != nil {
		return odoo.Params{}, err
	}

	extra, err := parseKwargs(callKwargs)
	if err != nil {
		return odoo.Params{}, err
	}

	return odoo.Params{
		IDs:      callIDs,
		Domain:   domain,
		Fields:   callFields,
		Limit:    callLimit,
		Context:  ctx,
		ValsList: vals,
		Extra:    extra,
	}, nil
}

func runCall(cmd *cobra.Command, args []string) error {
	params, err := callParams()
	if err != nil {
		return err
	}

	app, err := getApp()
	if err != nil {
		return err
	}

	res, err := app.Gateway.Call(cmd.Context(), args[0], args[1], params)
	if err != nil {
		return err
	}

	return printJSON(res)
}
