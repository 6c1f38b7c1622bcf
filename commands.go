package main

import (
	"fmt"
	"time"

	"pr_tracker/internal/app"
	"pr_tracker/internal/domain/record"
	"pr_tracker/internal/records"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// viewOptions are the filter and sort flags shared by commands that read the derived view
type viewOptions struct {
	sortKey   string
	direction string
	filter    string
}

func addViewFlags(cmd *cobra.Command, opts *viewOptions) {
	cmd.Flags().StringVar(&opts.sortKey, "sort", "", "Sort by date, distance or time")
	cmd.Flags().StringVar(&opts.direction, "dir", "", "Sort direction: asc or desc (default asc)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Only show records at this distance in km, or 'all'")
}

// apply configures the store's filter and sort from the flags
func (o viewOptions) apply(cmd *cobra.Command, store *records.Store) error {
	if cmd.Flags().Changed("filter") {
		filter := o.filter
		store.SetFilter(&filter)
	}

	if o.sortKey == "" {
		if o.direction != "" {
			return fmt.Errorf("--dir requires --sort")
		}
		return nil
	}

	key, ok := app.ParseSortKey(o.sortKey)
	if !ok {
		return fmt.Errorf("invalid sort key %q: expected date, distance or time", o.sortKey)
	}

	var direction *app.SortDirection
	if o.direction != "" {
		d, ok := app.ParseSortDirection(o.direction)
		if !ok {
			return fmt.Errorf("invalid sort direction %q: expected asc or desc", o.direction)
		}
		direction = &d
	}

	cfg := store.RequestSort(key, direction)
	log.Debug().
		Str("key", string(cfg.Key)).
		Str("direction", string(cfg.Direction)).
		Msg("Applied sort")
	return nil
}

func newListCmd(env *cliEnv) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List personal records",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := opts.apply(cmd, store); err != nil {
				return err
			}

			if store.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No personal records found.")
				return nil
			}

			view := store.View()
			if len(view) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records match the current filter.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(view))
			return nil
		},
	}

	addViewFlags(cmd, &opts)
	return cmd
}

func newAddCmd(env *cliEnv) *cobra.Command {
	var r app.PersonalRecord

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a personal record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := record.ValidateForEntry(r); err != nil {
				return err
			}

			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			added := store.Add(r)
			log.Info().
				Str("id", added.ID).
				Float64("distance", added.Distance).
				Str("time", added.Time).
				Msg("Added personal record")

			fmt.Fprintf(cmd.OutOrStdout(), "Record added: %s\n", added.ID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&r.Distance, "distance", 0, "Distance in km (required)")
	cmd.Flags().StringVar(&r.Time, "time", "", "Finish time as HH:MM:SS or MM:SS (required)")
	cmd.Flags().StringVar(&r.Date, "date", time.Now().Format("2006-01-02"), "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&r.Notes, "notes", "", "Notes (optional)")

	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newUpdateCmd(env *cliEnv) *cobra.Command {
	var id string
	var changes app.PersonalRecord

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of an existing personal record",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			current, found := findRecord(store.Records(), id)
			if !found {
				return fmt.Errorf("record %s not found", id)
			}

			flags := cmd.Flags()
			if flags.Changed("distance") {
				current.Distance = changes.Distance
			}
			if flags.Changed("time") {
				current.Time = changes.Time
			}
			if flags.Changed("date") {
				current.Date = changes.Date
			}
			if flags.Changed("notes") {
				current.Notes = changes.Notes
			}

			if err := record.ValidateForEntry(current); err != nil {
				return err
			}

			// the store may have changed since the lookup
			if !store.Update(current) {
				return fmt.Errorf("record %s not found", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Record updated: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record ID (required)")
	cmd.Flags().Float64Var(&changes.Distance, "distance", 0, "New distance in km")
	cmd.Flags().StringVar(&changes.Time, "time", "", "New finish time")
	cmd.Flags().StringVar(&changes.Date, "date", "", "New date as YYYY-MM-DD")
	cmd.Flags().StringVar(&changes.Notes, "notes", "", "New notes")

	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newDeleteCmd(env *cliEnv) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a personal record",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			if !store.Delete(id) {
				return fmt.Errorf("record %s not found", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Record deleted: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newBestCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "best",
		Short: "Show the fastest record at each distance",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			best := record.BestByDistance(store.Records())
			if len(best) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No personal records found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRecords(best))
			return nil
		},
	}
}

func newDistancesCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "distances",
		Short: "List the distances usable as --filter values",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := env.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Fprintln(cmd.OutOrStdout(), record.FilterAll)
			for _, d := range record.Distances(store.Records()) {
				fmt.Fprintln(cmd.OutOrStdout(), formatDistance(d))
			}
			return nil
		},
	}
}

func findRecord(all []app.PersonalRecord, id string) (app.PersonalRecord, bool) {
	for _, r := range all {
		if r.ID == id {
			return r, true
		}
	}
	return app.PersonalRecord{}, false
}
