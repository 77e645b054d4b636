package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/advancify/lead-engine/internal/model"
	"github.com/advancify/lead-engine/internal/store"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List archived leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		decision, _ := cmd.Flags().GetString("decision")
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := st.ListLeads(ctx, store.LeadFilter{
			Email:    email,
			Decision: model.FitDecision(decision),
			Limit:    limit,
		})
		if err != nil {
			return eris.Wrap(err, "leads list")
		}

		if len(records) == 0 {
			fmt.Fprintln(os.Stderr, "No leads found.")
			return nil
		}

		formatLeadsList(os.Stdout, records)
		return nil
	},
}

func formatLeadsList(w io.Writer, records []model.LeadRecord) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tNAME\tEMAIL\tINDUSTRY\tDECISION\tCONF\tSUBJECT")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.CreatedAt.Format(time.DateTime),
			rec.Name,
			rec.Email,
			rec.Industry,
			rec.Decision,
			rec.ConfidenceScore,
			rec.EmailSubject,
		)
	}
	_ = tw.Flush()
}

func init() {
	leadsCmd.Flags().String("email", "", "filter by lead email")
	leadsCmd.Flags().String("decision", "", "filter by fit decision (good_fit, ok_fit, not_a_fit)")
	leadsCmd.Flags().Int("limit", 50, "maximum rows to return")
	rootCmd.AddCommand(leadsCmd)
}
