package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/opencode-chat/internal"
	"github.com/spf13/cobra"
)

var modelsProvider string

var modelsCmd = &cobra.Command{
	Use:   "models [query]",
	Short: "List providers and models",
	Long: `Browse the server's provider catalog.

Without arguments the providers that offer models are listed. A query searches
active models across all providers by name. With --provider the active models
of one provider are listed, filtered by the query if given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := coordinator.Store()
		coordinator.LoadProviders(cmd.Context())
		if err := storeError(); err != nil {
			return err
		}

		selector := internal.NewModelSelector(store, nil)
		selector.Open()
		if modelsProvider != "" {
			p, ok := internal.FindProvider(store.Snapshot().Providers, modelsProvider)
			if !ok {
				return fmt.Errorf("provider not found: %s", modelsProvider)
			}
			selector.SelectProvider(p)
		}
		if len(args) == 1 {
			selector.SetQuery(args[0])
		}

		displayPicker(cmd.OutOrStdout(), selector, store.Snapshot())
		return nil
	},
}

// displayPicker prints whatever list the selector is showing
func displayPicker(out io.Writer, selector *internal.ModelSelector, st internal.State) {
	palette := st.Theme.Palette()
	fmt.Fprintln(out, palette.TitleStyle().Render(selector.Title()))
	fmt.Fprintln(out)

	marker := func(providerID, modelID string) string {
		if st.SelectedModel != nil && st.SelectedModel.ProviderID == providerID && st.SelectedModel.ID == modelID {
			return palette.AccentStyle().Render("●")
		}
		return " "
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	defer w.Flush()

	if selector.View() == internal.ViewModels {
		provider := st.SelectedProvider
		models := selector.Models()
		if len(models) == 0 {
			fmt.Fprintln(w, palette.SecondaryStyle().Render("No models found"))
			return
		}
		for _, m := range models {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", marker(provider.ID, m.ID), m.ShortName(),
				palette.SecondaryStyle().Render(m.Ref().String()), m.CostLabel())
		}
		return
	}

	results := selector.SearchResults()
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", marker(r.ProviderID, r.Model.ID), r.Model.ShortName(),
			palette.SecondaryStyle().Render(r.ProviderName), r.ProviderID+"/"+r.Model.ID)
	}

	providers := selector.Providers()
	if len(results) > 0 && len(providers) > 0 {
		fmt.Fprintln(w, "\t\t\t\t")
	}
	for _, p := range providers {
		fmt.Fprintf(w, " \t%s\t%s\t%s\t\n", p.Name, palette.SecondaryStyle().Render(selector.ProviderLabel(p)), p.ID)
	}

	if len(results) == 0 && len(providers) == 0 {
		fmt.Fprintln(w, palette.SecondaryStyle().Render("No matches"))
	}
}

// pickModel selects a model through a fresh picker. arg is provider/model, or
// with search a query that must name one active model. onClose runs once the
// pick is made.
func pickModel(store *internal.Store, arg string, search bool, onClose func()) error {
	arg = strings.TrimSpace(arg)
	selector := internal.NewModelSelector(store, onClose)
	selector.Open()

	ref, err := internal.ParseModelRef(arg)
	if err == nil {
		if p, ok := internal.FindProvider(store.Snapshot().Providers, ref.ProviderID); ok {
			selector.SelectProvider(p)
			for _, m := range selector.Models() {
				if m.ID == ref.ModelID {
					return selector.SelectModel(m)
				}
			}
			selector.Back()
		}
		err = fmt.Errorf("%w: %s", internal.ErrModelNotFound, ref)
	}
	if !search || arg == "" {
		return err
	}

	selector.SetQuery(arg)
	results := selector.SearchResults()
	switch len(results) {
	case 0:
		return fmt.Errorf("%w: no active model matches %q", internal.ErrModelNotFound, arg)
	case 1:
		return selector.SelectSearchResult(results[0])
	}

	names := make([]string, 0, len(results))
	for _, r := range results {
		if strings.EqualFold(r.Model.ID, arg) || strings.EqualFold(r.Model.Name, arg) {
			return selector.SelectSearchResult(r)
		}
		names = append(names, r.ProviderID+"/"+r.Model.ID)
	}
	return fmt.Errorf("%q matches %d models (%s)", arg, len(results), strings.Join(names, ", "))
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().StringVarP(&modelsProvider, "provider", "p", "", "List the models of one provider")
}
