package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/odoocli/internal/core"
	"github.com/inovacc/odoocli/internal/model"
	"github.com/inovacc/odoocli/internal/state"
	"github.com/spf13/cobra"
)

var (
	partnersStore  bool
	partnersPolicy string
)

var partnersCmd = &cobra.Command{
	Use:     "partners",
	Aliases: []string{"clientes"},
	Short:   "List partners",
	Long: `List partners with their receivable and payable accounts.

With --store the first 100 partners are loaded through the list store
(name, email, phone, city), the same way the interactive tab keeps them.

Examples:
  odoocli partners
  odoocli partners --store --policy latest -o json`,
	Args: cobra.NoArgs,
	RunE: runPartners,
}

func init() {
	rootCmd.AddCommand(partnersCmd)

	partnersCmd.Flags().BoolVar(&partnersStore, "store", false, "Load through the partner list store")
	partnersCmd.Flags().StringVar(&partnersPolicy, "policy", "last", "List store ordering policy: last (last resolved wins) or latest (latest issued wins)")
}

func parsePolicy(s string) (state.Policy, error) {
	switch s {
	case "", "last":
		return state.LastResolvedWins, nil
	case "latest":
		return state.LatestIssuedWins, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want last or latest)", s)
	}
}

func runPartners(cmd *cobra.Command, _ []string) error {
	app, err := getApp()
	if err != nil {
		return err
	}

	var partners []model.Partner

	if partnersStore {
		policy, err := parsePolicy(partnersPolicy)
		if err != nil {
			return err
		}

		ps := core.NewPartnerStore(app.Gateway, state.WithPolicy(policy))
		if err := ps.Fetch(cmd.Context()); err != nil {
			return err
		}

		partners = ps.State().Items
	} else {
		partners, err = core.ListPartners(cmd.Context(), app.Gateway)
		if err != nil {
			return err
		}
	}

	if jsonOutput() {
		return printJSON(partners)
	}

	if len(partners) == 0 {
		printEmptyResult("partners", "")
		return nil
	}

	if partnersStore {
		w := newTable("ID", "NAME", "EMAIL", "PHONE", "CITY")
		for _, p := range partners {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				p.ID, truncateString(p.Name.String(), 40), orDash(p.Email.String()), orDash(p.Phone.String()), orDash(p.City.String()))
		}

		return flushTable(w)
	}

	w := newTable("ID", "NAME", "EMAIL", "PHONE", "LANG", "RECEIVABLE", "PAYABLE")
	for _, p := range partners {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncateString(p.DisplayName.String(), 40),
			orDash(p.Email.String()),
			orDash(p.Phone.String()),
			orDash(p.Lang.String()),
			orDash(p.PropertyAccountReceivableID.Name),
			orDash(p.PropertyAccountPayableID.Name),
		)
	}

	if err := flushTable(w); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "\n%d partner(s)\n", len(partners))

	return nil
}
