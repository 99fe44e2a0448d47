package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/report"
	"superstore-dashboard/internal/services"
)

type reportOptions struct {
	region, state, city string
	start, end          string
	view, category      string
	theme               string
}

func reportCmd() *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print one dashboard view to the terminal",
		Example: `  dashboard report --view sales --region West
  dashboard report --view trends --start 2017-01-01 --end 2017-12-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			view, err := models.ParseView(opts.view)
			if err != nil {
				return err
			}
			spec, err := opts.filter()
			if err != nil {
				return err
			}

			table, err := services.LoadTable(cmd.Context(), cfg.Data.CSVFile)
			if err != nil {
				return err
			}

			payload := services.BuildView(table, spec, view, opts.category, models.ThemeByName(opts.theme))
			return report.Render(cmd.OutOrStdout(), payload)
		},
	}

	cmd.Flags().StringVar(&opts.region, "region", models.All, "region filter")
	cmd.Flags().StringVar(&opts.state, "state", models.All, "state filter")
	cmd.Flags().StringVar(&opts.city, "city", models.All, "city filter")
	cmd.Flags().StringVar(&opts.start, "start", "", "first order date, inclusive (default: earliest)")
	cmd.Flags().StringVar(&opts.end, "end", "", "last order date, inclusive (default: latest)")
	cmd.Flags().StringVar(&opts.view, "view", string(models.ViewOverview), "view to print")
	cmd.Flags().StringVar(&opts.category, "category", models.All, "category for the category view")
	cmd.Flags().StringVar(&opts.theme, "theme", models.DarkTheme.Name, "color theme (light, dark)")

	return cmd
}

func (o reportOptions) filter() (models.FilterSpec, error) {
	spec := models.FilterSpec{Region: o.region, State: o.state, City: o.city}

	var err error
	if spec.Start, err = optionalDate("start", o.start); err != nil {
		return spec, err
	}
	if spec.End, err = optionalDate("end", o.end); err != nil {
		return spec, err
	}
	return spec, nil
}

func optionalDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := services.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date: %w", name, err)
	}
	return t, nil
}
