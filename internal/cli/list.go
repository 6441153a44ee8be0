package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/coopview/internal/api"
	"github.com/rshade/coopview/internal/cli/pagination"
	"github.com/rshade/coopview/internal/config"
	"github.com/rshade/coopview/internal/engine"
	"github.com/rshade/coopview/internal/tui"
)

// listFlags holds the flags of the list command (also accepted by the root command).
type listFlags struct {
	page     int
	pageSize int
	sort     string
	output   string
	plain    bool
	noColor  bool
	color    bool
}

// addListFlags registers the list flags on cmd.
func addListFlags(cmd *cobra.Command, f *listFlags) {
	fl := cmd.Flags()
	fl.IntVar(&f.page, "page", pagination.DefaultPage, "page number to print (non-interactive output)")
	fl.IntVar(&f.pageSize, "page-size", 0, "rows per page (0 = use config, default 10)")
	fl.StringVar(&f.sort, "sort", "", "sort column and order, e.g. name, state:desc, coopSystem.name:asc")
	fl.StringVar(&f.output, "output", "", "output format: table, json, ndjson, yaml (default from config)")
	fl.BoolVar(&f.plain, "plain", false, "disable the interactive table and styling")
	fl.BoolVar(&f.noColor, "no-color", false, "disable colors (same as NO_COLOR)")
	fl.BoolVar(&f.color, "color", false, "force styled output even when stdout is not a terminal")
}

// NewListCmd creates the list command, which shows the cooperatives table.
func NewListCmd(ver string) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show cooperatives as a sortable, paginated table",
		Long: `Fetches all cooperatives from the API and shows them ten per page.

In a terminal the table is interactive:
  1-4         sort by Name, CNPJ, State or Cooperative System (asc, desc, original order)
  ←/→ s       move the column focus and sort by the focused column
  n/p         next and previous page
  home/end    first and last page
  r           retry after a failed load
  q           quit

When stdout is not a terminal, or --output/--plain is given, a single page is printed.`,
		Example: `  # Interactive table
  coopview list

  # Third page as plain text, sorted by name
  coopview list --page 3 --sort name --plain

  # Everything as newline-delimited JSON
  coopview list --page-size 1000 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, ver, f)
		},
	}

	addListFlags(cmd, &f)
	return cmd
}

// listRequest is the resolved form of the list flags.
type listRequest struct {
	params   pagination.Params
	format   engine.OutputFormat
	explicit bool
	mode     tui.OutputMode
}

// resolveListRequest merges flags with the loaded config and validates the result.
func resolveListRequest(cmd *cobra.Command, cfg *config.Config, f listFlags) (listRequest, error) {
	params := pagination.NewParams()
	params.Page = f.page
	params.PageSize = cfg.Output.PageSize
	if f.pageSize != 0 {
		params.PageSize = f.pageSize
	}

	if f.sort != "" {
		sortCfg, err := pagination.ParseSort(f.sort)
		if err != nil {
			return listRequest{}, err
		}
		params.Sort = sortCfg
	}
	if err := params.Validate(); err != nil {
		return listRequest{}, err
	}

	format := engine.OutputFormat(cfg.Output.DefaultFormat)
	explicit := cmd.Flags().Changed("output")
	if explicit {
		format = engine.OutputFormat(f.output)
	}
	if !format.IsValid() {
		return listRequest{}, fmt.Errorf("%w: %s", engine.ErrUnsupportedFormat, format)
	}

	return listRequest{
		params:   *params,
		format:   format,
		explicit: explicit || format != engine.OutputTable,
		mode:     tui.DetectOutputMode(f.color, f.noColor, f.plain),
	}, nil
}

// newAPIClient builds the API client from the loaded config.
func newAPIClient(cfg *config.Config, ver string) (*api.Client, error) {
	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(timeout),
		api.WithAttempts(cfg.API.Retries),
		api.WithUserAgent("coopview/"+ver),
	)
}

// runList fetches the cooperatives and routes them to the interactive table,
// the styled summary or a plain renderer.
func runList(cmd *cobra.Command, ver string, f listFlags) error {
	ctx := cmd.Context()
	cfg := currentConfig()
	if cfg == nil {
		return ErrConfigNotLoaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	req, err := resolveListRequest(cmd, cfg, f)
	if err != nil {
		return err
	}

	client, err := newAPIClient(cfg, ver)
	if err != nil {
		return err
	}

	logger.Debug().Ctx(ctx).
		Str("endpoint", client.Endpoint()).
		Str("format", string(req.format)).
		Str("mode", req.mode.String()).
		Int("page", req.params.Page).
		Int("page_size", req.params.PageSize).
		Str("sort", req.params.Sort.String()).
		Msg("listing cooperatives")

	if !req.explicit && req.mode == tui.OutputModeInteractive {
		return runInteractiveList(ctx, client, req.params)
	}

	page, err := engine.ListCooperativas(ctx, client, req.params)
	if err != nil {
		return err
	}

	if !req.explicit && req.mode == tui.OutputModeStyled {
		return renderStyledList(cmd.OutOrStdout(), page, req.params.Sort)
	}
	return engine.RenderPage(cmd.OutOrStdout(), req.format, page, req.params.Sort)
}

func runInteractiveList(ctx context.Context, client *api.Client, params pagination.Params) error {
	ctx = quietContext(ctx, logToFile)
	model := tui.NewCoopTableModel(ctx, client.FetchCooperativas, params.PageSize).
		WithInitialSort(params.Sort)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// renderStyledList renders the boxed Lip Gloss page.
func renderStyledList(w io.Writer, page pagination.Page, sortCfg pagination.SortConfig) error {
	_, err := fmt.Fprint(w, tui.RenderStaticPage(page, sortCfg, tui.TerminalWidth()))
	return err
}
