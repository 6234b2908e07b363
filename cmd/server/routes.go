package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/yt-study-api/internal/container"
)

func newRoutesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			c, err := container.New(context.Background(), settings)
			if err != nil {
				return err
			}
			rows, err := collectRoutes(c.Router())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRoutes(rows))
			return nil
		},
	}
}

type routeRow struct {
	method string
	path   string
}

func collectRoutes(h http.Handler) ([]routeRow, error) {
	routes, ok := h.(chi.Routes)
	if !ok {
		return nil, fmt.Errorf("handler %T does not expose routes", h)
	}

	var rows []routeRow
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		rows = append(rows, routeRow{method: method, path: route})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].path == rows[j].path {
			return rows[i].method < rows[j].method
		}
		return rows[i].path < rows[j].path
	})
	return rows, nil
}

func renderRoutes(rows []routeRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Method", "Path"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.method, r.path})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
