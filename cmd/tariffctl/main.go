// Command tariffctl resolves tariff rates and compares USMCA savings from the
// command line, against the same database the API server uses.
//
// Usage:
//
//	tariffctl normalize 8542.31
//	tariffctl rates --hs 8542.31.00 --origin CN --dest US
//	tariffctl compare --component 85423100:CN:1000000 --dest US --dest MX
//	tariffctl compare --file bom.json --format json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
	"tradeflow/internal/hscode"
	"tradeflow/internal/logger"
	"tradeflow/internal/repository/postgres"
	"tradeflow/internal/service"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "tariffctl",
		Usage:   "USMCA tariff rate lookup and savings comparison",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "table",
				Usage: "Output format (table, json)",
			},
		},
		Commands: []*cli.Command{
			normalizeCommand(),
			ratesCommand(),
			compareCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Canonicalize HS codes to 8 digits",
		ArgsUsage: "CODE [CODE...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one code is required", 2)
			}
			out := make([]handler.NormalizeResponse, 0, c.NArg())
			for _, code := range c.Args().Slice() {
				n := hscode.Normalize(code)
				out = append(out, handler.NormalizeResponse{
					Input:      code,
					Normalized: n,
					Padded:     hscode.WasPadded(code),
					Chapter:    hscode.Chapter(n),
				})
			}
			if c.String("format") == "json" {
				return writeJSON(c.App.Writer, out)
			}
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tNORMALIZED\tPADDED\tCHAPTER")
			for _, r := range out {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", r.Input, orDash(r.Normalized), r.Padded, orDash(r.Chapter))
			}
			return tw.Flush()
		},
	}
}

func ratesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rates",
		Usage: "Look up MFN, USMCA and policy rates for one HS code",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hs", Usage: "HS code", Required: true},
			&cli.StringFlag{Name: "origin", Usage: "Origin country (ISO alpha-2)", Required: true},
			&cli.StringFlag{Name: "dest", Value: "US", Usage: "Destination country (US, MX)"},
		},
		Action: func(c *cli.Context) error {
			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			code := hscode.Normalize(c.String("hs"))
			if code == "" {
				return domain.NewValidationError("hs", "must contain at least one digit")
			}
			dest := domain.ParseCountry(c.String("dest"))
			if !domain.IsSupportedDestination(dest) {
				return domain.UnsupportedDestinationError(dest)
			}

			res, fresh, err := env.classifier.TariffRates(c.Context, service.TariffRateQuery{
				HSCode:      code,
				Origin:      domain.ParseCountry(c.String("origin")),
				Destination: dest,
			})
			if err != nil {
				return err
			}
			out := handler.NewRateLookupResponse(res, fresh)
			if c.String("format") == "json" {
				return writeJSON(c.App.Writer, out)
			}
			return writeRates(c.App.Writer, &out)
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare USMCA savings across destinations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "JSON request body (same shape as POST /tariffs/compare)"},
			&cli.StringSliceFlag{Name: "component", Aliases: []string{"c"}, Usage: "Component as HS:ORIGIN:VALUE (repeatable)"},
			&cli.StringSliceFlag{Name: "dest", Aliases: []string{"d"}, Usage: "Destination country (repeatable)"},
			&cli.StringFlag{Name: "manufacturing-location", Usage: "Ship-from country for operational factors"},
		},
		Action: func(c *cli.Context) error {
			req, err := compareRequest(c)
			if err != nil {
				return err
			}
			input, err := req.ToComparisonInput()
			if err != nil {
				return err
			}

			env, err := newEnv()
			if err != nil {
				return err
			}
			defer env.close()

			res, err := env.comparisons.Compare(c.Context, input)
			if err != nil {
				return err
			}
			out := handler.NewComparisonResponse(res)
			if c.String("format") == "json" {
				return writeJSON(c.App.Writer, out)
			}
			return writeComparison(c.App.Writer, &out)
		},
	}
}

// compareRequest builds a request from --file or from repeated flags.
func compareRequest(c *cli.Context) (*handler.CompareRequest, error) {
	req := &handler.CompareRequest{}
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read request file: %w", err)
		}
		if err := json.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("parse request file: %w", err)
		}
	}
	for _, arg := range c.StringSlice("component") {
		comp, err := parseComponent(arg)
		if err != nil {
			return nil, err
		}
		req.Components = append(req.Components, comp)
	}
	req.Destinations = append(req.Destinations, c.StringSlice("dest")...)
	if loc := c.String("manufacturing-location"); loc != "" {
		req.ManufacturingLocation = loc
	}
	return req, nil
}

// parseComponent reads HS:ORIGIN:VALUE.
func parseComponent(arg string) (handler.ComponentRequest, error) {
	parts := strings.Split(arg, ":")
	if len(parts) != 3 {
		return handler.ComponentRequest{}, fmt.Errorf("component %q: want HS:ORIGIN:VALUE", arg)
	}
	value, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
	if err != nil {
		return handler.ComponentRequest{}, fmt.Errorf("component %q: invalid value: %w", arg, err)
	}
	return handler.ComponentRequest{
		HSCode: strings.TrimSpace(parts[0]),
		Origin: strings.TrimSpace(parts[1]),
		Value:  &value,
	}, nil
}

// env holds the services a command needs.
type env struct {
	classifier  *service.DataClassifier
	comparisons service.ComparisonService
	close       func()
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// Keep stdout clean for command output.
	cfg.Log.Level = "warn"
	_, flush, err := logger.Install(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		flush()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	classifier := service.NewDataClassifier(
		service.ClassifierConfigFrom(cfg),
		service.NewRateService(postgres.NewTariffRateRepo(db)),
		postgres.NewTradeDataRepo(db),
		nil,
	)
	comparisons := service.NewComparisonService(
		service.NewSavingsService(classifier, cfg.Rates.Concurrency),
		nil,
		service.ComparisonConfig{
			MaterialityThreshold: decimal.NewFromFloat(cfg.Rates.MaterialityThreshold),
			ShippingMode:         cfg.Rates.DefaultShippingMode,
		},
	)

	return &env{
		classifier:  classifier,
		comparisons: comparisons,
		close: func() {
			classifier.Close()
			if err := db.Close(); err != nil {
				zap.L().Warn("closing database", zap.Error(err))
			}
			flush()
		},
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRates(w io.Writer, r *handler.RateLookupResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "HS code\t%s (matched %s, %s)\n", r.HSCode, orDash(r.MatchedCode), r.MatchLevel)
	fmt.Fprintf(tw, "Lane\t%s -> %s\n", r.Origin, r.Destination)
	fmt.Fprintf(tw, "MFN rate\t%s\n", percent(r.MFNRate))
	fmt.Fprintf(tw, "USMCA rate\t%s\n", percent(r.USMCARate))
	fmt.Fprintf(tw, "Policy rate\t%s\n", percent(r.PolicyRate))
	for _, d := range r.PolicyDetails {
		fmt.Fprintf(tw, "\t  %s\n", d)
	}
	fmt.Fprintf(tw, "Source\t%s (%s)\n", orDash(r.Source), r.Freshness.Source)
	return tw.Flush()
}

func writeComparison(w io.Writer, r *handler.ComparisonResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DEST\tMFN DUTIES\tUSMCA DUTIES\tSAVINGS\tSAVINGS %\tQUALITY\t")
	for _, d := range r.SortedDestinations() {
		res := r.Comparison[d]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			d, money(res.MFNTotalDuties), money(res.USMCATotalDuties), money(res.Savings),
			percent(res.SavingsPercentage), res.DataQuality)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", r.Recommendation)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	return nil
}

func money(n *json.Number) string {
	if n == nil {
		return "n/a"
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return n.String()
	}
	return "$" + d.StringFixed(2)
}

func percent(n *json.Number) string {
	if n == nil {
		return "n/a"
	}
	return n.String() + "%"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
