package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/ozzus/skip-hire/internal/config"
	"github.com/ozzus/skip-hire/internal/domain/catalog"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/ports"
	"github.com/ozzus/skip-hire/internal/domain/pricing"
	"github.com/ozzus/skip-hire/internal/infrastructures/fallback"
	wwwclient "github.com/ozzus/skip-hire/internal/infrastructures/wewantwaste/http/client"
	grpcapi "github.com/ozzus/skip-hire/internal/transport/grpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type options struct {
	criteria models.FilterCriteria
	asJSON   bool
	grpcAddr string
	verbose  bool
}

func main() {
	_ = godotenv.Load(".env")

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "skipctl: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("skipctl", flag.ContinueOnError)

	var opts options
	fs.StringVar(&opts.criteria.SearchText, "search", "", "match skip size, e.g. 6 or \"8 yard\"")
	fs.BoolVar(&opts.criteria.RoadAllowedOnly, "road", false, "only skips allowed on the road")
	fs.BoolVar(&opts.criteria.HeavyWasteOnly, "heavy", false, "only skips that take heavy waste")
	fs.Int64Var(&opts.criteria.MaxPrice, "max-price", models.DefaultMaxPrice, "maximum price including VAT")
	fs.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	fs.StringVar(&opts.grpcAddr, "grpc", "", "query a running skip-catalog at this address instead of the upstream")
	fs.BoolVar(&opts.verbose, "v", false, "log upstream failures to stderr")
	noColor := fs.Bool("no-color", false, "disable colour output")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.criteria.MaxPrice < 0 {
		fmt.Fprintln(fs.Output(), "max-price must not be negative")
		return options{}, fmt.Errorf("invalid max-price %d", opts.criteria.MaxPrice)
	}
	if *noColor {
		color.NoColor = true
	}
	return opts, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.grpcAddr != "" {
		return runRemote(ctx, opts, out)
	}

	upstreamCfg, err := config.LoadUpstreamFromEnv()
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if opts.verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
	}

	client := wwwclient.NewClient(upstreamCfg.BaseURL, upstreamCfg.Location(), upstreamCfg.Timeout)
	return runLocal(ctx, fallback.NewSource(log, client), opts, out)
}

func runLocal(ctx context.Context, source ports.SkipSource, opts options, out io.Writer) error {
	skips, err := source.FetchSkips(ctx)
	if err != nil {
		return err
	}

	listing := catalog.BuildListing(skips, opts.criteria)
	if opts.asJSON {
		return writeListingJSON(out, listing)
	}
	renderListing(out, listing)
	return nil
}

func runRemote(ctx context.Context, opts options, out io.Writer) error {
	conn, err := grpc.NewClient(opts.grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect %s: %w", opts.grpcAddr, err)
	}
	defer conn.Close()

	req, err := structpb.NewStruct(map[string]interface{}{
		"search":       opts.criteria.SearchText,
		"road_allowed": opts.criteria.RoadAllowedOnly,
		"heavy_waste":  opts.criteria.HeavyWasteOnly,
		"max_price":    opts.criteria.MaxPrice,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := grpcapi.NewCatalogClient(conn).ListSkips(ctx, req)
	if err != nil {
		return err
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

type skipRow struct {
	ID               int64          `json:"id"`
	Size             int            `json:"size"`
	HirePeriodDays   int            `json:"hire_period_days"`
	PriceBeforeVAT   string         `json:"price_before_vat"`
	VATAmount        int64          `json:"vat_amount"`
	FinalPrice       int64          `json:"final_price"`
	AllowedOnRoad    bool           `json:"allowed_on_road"`
	AllowsHeavyWaste bool           `json:"allows_heavy_waste"`
	Badges           catalog.Badges `json:"badges"`
}

func toRow(s models.Skip) skipRow {
	b := pricing.BreakdownOf(s)
	return skipRow{
		ID:               int64(s.ID),
		Size:             s.SizeYards,
		HirePeriodDays:   s.HirePeriodDays,
		PriceBeforeVAT:   s.PriceBeforeVAT.String(),
		VATAmount:        b.VATAmount,
		FinalPrice:       b.FinalPrice,
		AllowedOnRoad:    s.AllowedOnRoad,
		AllowsHeavyWaste: s.AllowsHeavyWaste,
		Badges:           catalog.BadgesOf(s),
	}
}

func writeListingJSON(out io.Writer, listing models.Listing) error {
	rows := make([]skipRow, 0, len(listing.Items))
	for _, s := range listing.Items {
		rows = append(rows, toRow(s))
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"skips": rows,
		"stats": listing.Stats,
	})
}

func renderListing(out io.Writer, listing models.Listing) {
	header := color.New(color.Bold)
	muted := color.New(color.FgHiBlack)
	price := color.New(color.FgGreen, color.Bold)
	popular := color.New(color.FgYellow)
	value := color.New(color.FgCyan)

	if len(listing.Items) == 0 {
		muted.Fprintln(out, "No skips match these filters.")
		return
	}

	header.Fprintf(out, "%-7s %-14s %-6s %-5s %-5s %9s %6s %7s  %s\n",
		"ID", "SKIP", "HIRE", "ROAD", "HEAVY", "EX VAT", "VAT", "TOTAL", "")
	for _, s := range listing.Items {
		row := toRow(s)
		fmt.Fprintf(out, "%-7d %-14s %-6s %-5s %-5s %9s %6s ",
			row.ID,
			catalog.Label(s),
			fmt.Sprintf("%dd", row.HirePeriodDays),
			yesNo(row.AllowedOnRoad),
			yesNo(row.AllowsHeavyWaste),
			"£"+row.PriceBeforeVAT,
			fmt.Sprintf("£%d", row.VATAmount),
		)
		price.Fprintf(out, "%7s", fmt.Sprintf("£%d", row.FinalPrice))
		if row.Badges.Popular {
			popular.Fprint(out, "  popular")
		}
		if row.Badges.BestValue {
			value.Fprint(out, "  best value")
		}
		fmt.Fprintln(out)
	}

	muted.Fprintf(out, "\n%d skips, %d-%d yards, from £%d inc. VAT\n",
		listing.Stats.Count, listing.Stats.MinSize, listing.Stats.MaxSize, listing.Stats.StartingFrom)
	if r := listing.Recommendations; r != nil {
		muted.Fprintf(out, "Most popular: %s  Best value: %s  Largest: %s\n",
			catalog.Label(r.MostPopular), catalog.Label(r.BestValue), catalog.Label(r.Largest))
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
